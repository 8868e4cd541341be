// Package brew adapts the Homebrew CLI to the package provider contract.
package brew

import (
	"context"
	"fmt"

	"github.com/macstrap/macstrap/internal/model"
	"github.com/macstrap/macstrap/internal/providers/execx"
	macstraperrors "github.com/macstrap/macstrap/pkg/errors"
)

const providerName = "homebrew"

// Provider shells out to the brew binary resolved by the capability probe.
type Provider struct {
	binPath string
	query   execx.Runner
	install execx.Runner
}

// New creates a provider bound to the given brew binary path.
func New(binPath string) *Provider {
	return &Provider{
		binPath: binPath,
		query:   execx.Capture,
		install: execx.Stream,
	}
}

// IsInstalled checks whether the package is already present. A non-zero
// exit from `brew list` means not installed, not a failure.
func (p *Provider) IsInstalled(ctx context.Context, spec model.PackageSpec) (bool, error) {
	res, err := p.query(ctx, p.binPath, listArgs(spec)...)
	if err != nil {
		return false, macstraperrors.NewProviderError(providerName, spec.Name, err)
	}
	return res.ExitCode == 0, nil
}

// Install installs the package, streaming brew's output to the user.
func (p *Provider) Install(ctx context.Context, spec model.PackageSpec) error {
	res, err := p.install(ctx, p.binPath, installArgs(spec)...)
	if err != nil {
		return macstraperrors.NewProviderError(providerName, spec.Name, err)
	}
	if res.ExitCode != 0 {
		detail := execx.PrimaryOutput(res)
		if detail == "" {
			detail = fmt.Sprintf("exit status %d", res.ExitCode)
		}
		return macstraperrors.NewProviderError(providerName, spec.Name, fmt.Errorf("install failed: %s", detail))
	}
	return nil
}

func listArgs(spec model.PackageSpec) []string {
	if isCask(spec.Kind) {
		return []string{"list", "--cask", "--versions", spec.Name}
	}
	return []string{"list", "--versions", spec.Name}
}

func installArgs(spec model.PackageSpec) []string {
	if isCask(spec.Kind) {
		return []string{"install", "--cask", spec.Name}
	}
	return []string{"install", spec.Name}
}

func isCask(kind model.ActionKind) bool {
	return kind == model.KindCask || kind == model.KindPrivilegedCask
}
