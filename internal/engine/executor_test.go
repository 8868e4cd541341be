package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macstrap/macstrap/internal/config"
	"github.com/macstrap/macstrap/internal/model"
	"github.com/macstrap/macstrap/internal/privilege"
	"github.com/macstrap/macstrap/internal/providers"
	"github.com/macstrap/macstrap/internal/report"
)

type fakeBackend struct {
	verifyErr  error
	refreshErr error
}

func (f *fakeBackend) Verify(context.Context, []byte) error { return f.verifyErr }
func (f *fakeBackend) Refresh(context.Context) error        { return f.refreshErr }

func activeSession(t *testing.T) *privilege.Session {
	t.Helper()
	session := privilege.NewSession(&fakeBackend{}, testLogger(t))
	require.NoError(t, session.Acquire(context.Background(), []byte("secret")))
	t.Cleanup(session.Close)
	return session
}

func newExecContext(t *testing.T, provs providers.Set) *ExecutionContext {
	t.Helper()
	return &ExecutionContext{
		Context:   context.Background(),
		Providers: provs,
		Report:    report.New(),
		Logger:    testLogger(t),
	}
}

func pendingFormula(name string) Action {
	return Action{
		ID:      fmt.Sprintf("%s:%s", model.KindFormula, name),
		Kind:    model.KindFormula,
		Target:  name,
		Status:  model.StatusPending,
		Package: &model.PackageSpec{Name: name, Kind: model.KindFormula},
	}
}

func pendingSetting(domain, key, value, typ string) Action {
	setting := config.Setting{Domain: domain, Key: key, Value: value, Type: typ}
	return Action{
		ID:      fmt.Sprintf("%s:%s", model.KindSetting, setting.SettingKey()),
		Kind:    model.KindSetting,
		Target:  setting.SettingKey(),
		Status:  model.StatusPending,
		Setting: &setting,
	}
}

func TestExecuteInstallsPendingActionsInOrder(t *testing.T) {
	t.Parallel()

	packages := &fakePackages{}
	execCtx := newExecContext(t, providers.Set{Packages: packages})
	plan := &Plan{Actions: []Action{pendingFormula("git"), pendingFormula("curl")}}

	results, err := Execute(execCtx, plan)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, []string{"git", "curl"}, packages.installs)
	for _, res := range results {
		assert.Equal(t, model.StatusSucceeded, res.Status, "action %s", res.ActionID)
	}
	assert.Zero(t, execCtx.Report.ExitCode())
}

func TestExecuteContinuesPastFailure(t *testing.T) {
	t.Parallel()

	packages := &fakePackages{installErr: map[string]error{"curl": fmt.Errorf("download failed")}}
	execCtx := newExecContext(t, providers.Set{Packages: packages})
	plan := &Plan{Actions: []Action{pendingFormula("git"), pendingFormula("curl"), pendingFormula("jq")}}

	results, err := Execute(execCtx, plan)
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, model.StatusSucceeded, results[0].Status)
	assert.Equal(t, model.StatusFailed, results[1].Status)
	assert.Equal(t, model.ReasonProviderError, results[1].Reason)
	assert.Equal(t, model.StatusSucceeded, results[2].Status)

	assert.Equal(t, []string{"git", "curl", "jq"}, packages.installs)
	assert.NotZero(t, execCtx.Report.ExitCode())

	summary := execCtx.Report.Summarize()
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
}

func TestExecuteRecordsSkipsWithoutProviderCalls(t *testing.T) {
	t.Parallel()

	packages := &fakePackages{}
	execCtx := newExecContext(t, providers.Set{Packages: packages})
	skipped := pendingFormula("git")
	skipped.Status = model.StatusSkipped
	skipped.Reason = model.ReasonAlreadySatisfied
	plan := &Plan{Actions: []Action{skipped}}

	results, err := Execute(execCtx, plan)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, model.StatusSkipped, results[0].Status)
	assert.Equal(t, model.ReasonAlreadySatisfied, results[0].Reason)
	assert.Empty(t, packages.installs)
	assert.Zero(t, execCtx.Report.ExitCode())
}

func TestExecutePrivilegedActionWithoutActiveSession(t *testing.T) {
	t.Parallel()

	packages := &fakePackages{}
	execCtx := newExecContext(t, providers.Set{Packages: packages})

	action := Action{
		ID:      "privileged_cask:docker",
		Kind:    model.KindPrivilegedCask,
		Target:  "docker",
		Status:  model.StatusPending,
		Package: &model.PackageSpec{Name: "docker", Kind: model.KindPrivilegedCask},
	}
	plan := &Plan{Actions: []Action{action, pendingFormula("git")}}

	results, err := Execute(execCtx, plan)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, model.StatusFailed, results[0].Status)
	assert.Equal(t, model.ReasonPrivilegeUnavailable, results[0].Reason)
	assert.Equal(t, model.StatusSucceeded, results[1].Status)

	// only the unprivileged formula reached the provider
	assert.Equal(t, []string{"git"}, packages.installs)
	assert.NotZero(t, execCtx.Report.ExitCode())
}

func TestExecutePrivilegedActionWithActiveSession(t *testing.T) {
	t.Parallel()

	packages := &fakePackages{}
	execCtx := newExecContext(t, providers.Set{Packages: packages})
	execCtx.Session = activeSession(t)

	action := Action{
		ID:      "privileged_cask:docker",
		Kind:    model.KindPrivilegedCask,
		Target:  "docker",
		Status:  model.StatusPending,
		Package: &model.PackageSpec{Name: "docker", Kind: model.KindPrivilegedCask},
	}
	plan := &Plan{Actions: []Action{action}}

	results, err := Execute(execCtx, plan)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, model.StatusSucceeded, results[0].Status)
	assert.Equal(t, []string{"docker"}, packages.installs)
}

func TestExecuteRestartsUIAfterSettings(t *testing.T) {
	t.Parallel()

	settings := &fakeSettings{}
	dock := &fakeDock{}
	execCtx := newExecContext(t, providers.Set{Settings: settings, Dock: dock})
	execCtx.Session = activeSession(t)

	dockAction := Action{
		ID:     "dock:add:Firefox",
		Kind:   model.KindDock,
		Target: "Firefox",
		Status: model.StatusPending,
		Dock:   &model.DockAction{Op: model.DockAdd, Target: "/Applications/Firefox.app"},
	}
	plan := &Plan{Actions: []Action{
		pendingSetting("com.apple.finder", "AppleShowAllFiles", "true", "bool"),
		pendingSetting("com.apple.dock", "autohide", "true", "bool"),
		dockAction,
	}}

	_, err := Execute(execCtx, plan)
	require.NoError(t, err)

	assert.Equal(t, 1, settings.restarts, "one restart after the settings block")
	require.Len(t, dock.applied, 1)
}

func TestExecuteRestartsUIWhenSettingsEndThePlan(t *testing.T) {
	t.Parallel()

	settings := &fakeSettings{}
	execCtx := newExecContext(t, providers.Set{Settings: settings})
	execCtx.Session = activeSession(t)

	plan := &Plan{Actions: []Action{
		pendingSetting("com.apple.finder", "AppleShowAllFiles", "true", "bool"),
	}}

	_, err := Execute(execCtx, plan)
	require.NoError(t, err)

	assert.Equal(t, 1, settings.restarts)
}

func TestExecuteNoRestartWithoutSucceededSetting(t *testing.T) {
	t.Parallel()

	settings := &fakeSettings{applyErr: fmt.Errorf("defaults write failed")}
	execCtx := newExecContext(t, providers.Set{Settings: settings})
	execCtx.Session = activeSession(t)

	plan := &Plan{Actions: []Action{
		pendingSetting("com.apple.finder", "AppleShowAllFiles", "true", "bool"),
	}}

	results, err := Execute(execCtx, plan)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, model.StatusFailed, results[0].Status)
	assert.Zero(t, settings.restarts)
}

func TestExecuteRestartFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	settings := &fakeSettings{restartErr: fmt.Errorf("killall: no such process")}
	execCtx := newExecContext(t, providers.Set{Settings: settings})
	execCtx.Session = activeSession(t)

	plan := &Plan{Actions: []Action{
		pendingSetting("com.apple.finder", "AppleShowAllFiles", "true", "bool"),
	}}

	_, err := Execute(execCtx, plan)
	require.NoError(t, err)

	assert.Zero(t, execCtx.Report.ExitCode())
}

func TestExecuteStopsOnContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	packages := &fakePackages{}
	execCtx := newExecContext(t, providers.Set{Packages: packages})
	execCtx.Context = ctx
	execCtx.EventSink = func(model.ActionResult) { cancel() }

	plan := &Plan{Actions: []Action{pendingFormula("git"), pendingFormula("curl")}}

	results, err := Execute(execCtx, plan)
	require.ErrorIs(t, err, context.Canceled)

	require.Len(t, results, 1)
	assert.Equal(t, model.StatusSucceeded, results[0].Status)
	assert.Equal(t, []string{"git"}, packages.installs)
}

func TestExecuteFeedsEventSink(t *testing.T) {
	t.Parallel()

	var seen []string
	execCtx := newExecContext(t, providers.Set{Packages: &fakePackages{}})
	execCtx.EventSink = func(res model.ActionResult) { seen = append(seen, res.ActionID) }

	plan := &Plan{Actions: []Action{pendingFormula("git"), pendingFormula("curl")}}

	_, err := Execute(execCtx, plan)
	require.NoError(t, err)
	assert.Equal(t, []string{"formula:git", "formula:curl"}, seen)
}

func TestExecuteNilInputs(t *testing.T) {
	t.Parallel()

	_, err := Execute(nil, &Plan{})
	require.Error(t, err)

	execCtx := newExecContext(t, providers.Set{})
	_, err = Execute(execCtx, nil)
	require.Error(t, err)
}
