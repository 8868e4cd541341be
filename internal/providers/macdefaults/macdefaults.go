// Package macdefaults adapts the `defaults` preference mechanism to the
// settings provider contract.
package macdefaults

import (
	"context"
	"fmt"
	"strings"

	"github.com/macstrap/macstrap/internal/config"
	"github.com/macstrap/macstrap/internal/providers/execx"
	macstraperrors "github.com/macstrap/macstrap/pkg/errors"
)

const providerName = "defaults"

// uiProcesses are the UI-owning processes restarted so applied settings
// take visible effect.
var uiProcesses = []string{"Finder", "Dock", "SystemUIServer"}

// Provider shells out to the defaults binary resolved by the capability
// probe, and to killall for UI restarts.
type Provider struct {
	binPath string
	query   execx.Runner
	apply   execx.Runner
	restart execx.Runner
}

// New creates a provider bound to the given defaults binary path.
func New(binPath string) *Provider {
	return &Provider{
		binPath: binPath,
		query:   execx.Capture,
		apply:   execx.Capture,
		restart: execx.Capture,
	}
}

// CurrentValue reads the present value for the setting's key. A missing
// key is reported as absent, not as an error.
func (p *Provider) CurrentValue(ctx context.Context, setting config.Setting) (string, bool, error) {
	res, err := p.query(ctx, p.binPath, "read", setting.Domain, setting.Key)
	if err != nil {
		return "", false, macstraperrors.NewProviderError(providerName, setting.SettingKey(), err)
	}
	if res.ExitCode != 0 {
		// `defaults read` exits non-zero when the key does not exist.
		return "", false, nil
	}
	return strings.TrimSpace(res.Stdout), true, nil
}

// Apply writes the setting with its typed flag.
func (p *Provider) Apply(ctx context.Context, setting config.Setting) error {
	args := []string{"write", setting.Domain, setting.Key}
	switch setting.Type {
	case "bool":
		args = append(args, "-bool", setting.Value)
	case "int":
		args = append(args, "-int", setting.Value)
	case "float":
		args = append(args, "-float", setting.Value)
	default:
		args = append(args, "-string", setting.Value)
	}

	res, err := p.apply(ctx, p.binPath, args...)
	if err != nil {
		return macstraperrors.NewProviderError(providerName, setting.SettingKey(), err)
	}
	if res.ExitCode != 0 {
		return macstraperrors.NewProviderError(providerName, setting.SettingKey(),
			fmt.Errorf("defaults write failed: %s", execx.PrimaryOutput(res)))
	}
	return nil
}

// RestartUI signals the UI-owning processes to restart so settings take
// effect. Individual restart failures are aggregated; callers treat the
// result as non-fatal.
func (p *Provider) RestartUI(ctx context.Context) error {
	var failed []string
	for _, proc := range uiProcesses {
		res, err := p.restart(ctx, "killall", proc)
		if err != nil || res.ExitCode != 0 {
			failed = append(failed, proc)
		}
	}

	if len(failed) > 0 {
		return macstraperrors.NewProviderError(providerName, strings.Join(failed, ","),
			fmt.Errorf("restart signal failed"))
	}
	return nil
}
