// Package vscode adapts the editor CLI to the extension provider contract.
package vscode

import (
	"context"
	"fmt"
	"strings"

	"github.com/macstrap/macstrap/internal/providers/execx"
	macstraperrors "github.com/macstrap/macstrap/pkg/errors"
)

const providerName = "vscode"

// Provider shells out to the code binary resolved by the capability probe.
type Provider struct {
	binPath string
	query   execx.Runner
	install execx.Runner
}

// New creates a provider bound to the given code binary path.
func New(binPath string) *Provider {
	return &Provider{
		binPath: binPath,
		query:   execx.Capture,
		install: execx.Stream,
	}
}

// IsInstalled reports whether the extension is present. Extension IDs
// are compared case-insensitively, matching the editor's own behavior.
func (p *Provider) IsInstalled(ctx context.Context, id string) (bool, error) {
	res, err := p.query(ctx, p.binPath, "--list-extensions")
	if err != nil {
		return false, macstraperrors.NewProviderError(providerName, id, err)
	}
	if res.ExitCode != 0 {
		return false, macstraperrors.NewProviderError(providerName, id,
			fmt.Errorf("list extensions failed: %s", execx.PrimaryOutput(res)))
	}

	for _, line := range strings.Split(res.Stdout, "\n") {
		if strings.EqualFold(strings.TrimSpace(line), id) {
			return true, nil
		}
	}
	return false, nil
}

// Install installs the extension by ID.
func (p *Provider) Install(ctx context.Context, id string) error {
	res, err := p.install(ctx, p.binPath, "--install-extension", id)
	if err != nil {
		return macstraperrors.NewProviderError(providerName, id, err)
	}
	if res.ExitCode != 0 {
		detail := execx.PrimaryOutput(res)
		if detail == "" {
			detail = fmt.Sprintf("exit status %d", res.ExitCode)
		}
		return macstraperrors.NewProviderError(providerName, id, fmt.Errorf("install failed: %s", detail))
	}
	return nil
}
