package brew

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/macstrap/macstrap/internal/model"
	"github.com/macstrap/macstrap/internal/providers/execx"
	macstraperrors "github.com/macstrap/macstrap/pkg/errors"
)

type call struct {
	name string
	args []string
}

func fakeRunner(calls *[]call, res execx.Result, err error) execx.Runner {
	return func(ctx context.Context, name string, args ...string) (execx.Result, error) {
		*calls = append(*calls, call{name: name, args: args})
		return res, err
	}
}

func TestIsInstalledFormulaUsesBrewList(t *testing.T) {
	t.Parallel()

	var calls []call
	p := New("/opt/homebrew/bin/brew")
	p.query = fakeRunner(&calls, execx.Result{ExitCode: 0}, nil)

	installed, err := p.IsInstalled(context.Background(), model.PackageSpec{Name: "git", Kind: model.KindFormula})
	require.NoError(t, err)
	require.True(t, installed)

	require.Len(t, calls, 1)
	require.Equal(t, "/opt/homebrew/bin/brew", calls[0].name)
	require.Equal(t, []string{"list", "--versions", "git"}, calls[0].args)
}

func TestIsInstalledCaskAddsCaskFlag(t *testing.T) {
	t.Parallel()

	for _, kind := range []model.ActionKind{model.KindCask, model.KindPrivilegedCask} {
		var calls []call
		p := New("/usr/local/bin/brew")
		p.query = fakeRunner(&calls, execx.Result{ExitCode: 1}, nil)

		installed, err := p.IsInstalled(context.Background(), model.PackageSpec{Name: "iterm2", Kind: kind})
		require.NoError(t, err)
		require.False(t, installed)
		require.Equal(t, []string{"list", "--cask", "--versions", "iterm2"}, calls[0].args)
	}
}

func TestInstallReportsProviderErrorOnFailure(t *testing.T) {
	t.Parallel()

	var calls []call
	p := New("/usr/local/bin/brew")
	p.install = fakeRunner(&calls, execx.Result{ExitCode: 1, Stderr: "No available formula"}, nil)

	err := p.Install(context.Background(), model.PackageSpec{Name: "nope", Kind: model.KindFormula})
	require.Error(t, err)

	var providerErr *macstraperrors.ProviderError
	require.ErrorAs(t, err, &providerErr)
	require.Equal(t, "nope", providerErr.Target)
	require.Contains(t, err.Error(), "No available formula")
}

func TestInstallWrapsRunnerError(t *testing.T) {
	t.Parallel()

	var calls []call
	p := New("/usr/local/bin/brew")
	p.install = fakeRunner(&calls, execx.Result{}, errors.New("fork failed"))

	err := p.Install(context.Background(), model.PackageSpec{Name: "git", Kind: model.KindFormula})
	require.Error(t, err)

	var providerErr *macstraperrors.ProviderError
	require.ErrorAs(t, err, &providerErr)
}
