// Package appstore adapts the mas CLI to the app-store provider contract.
package appstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/macstrap/macstrap/internal/providers/execx"
	macstraperrors "github.com/macstrap/macstrap/pkg/errors"
)

const providerName = "mas"

// Provider shells out to the mas binary resolved by the capability probe.
type Provider struct {
	binPath string
	query   execx.Runner
	install execx.Runner
}

// New creates a provider bound to the given mas binary path.
func New(binPath string) *Provider {
	return &Provider{
		binPath: binPath,
		query:   execx.Capture,
		install: execx.Stream,
	}
}

// IsInstalled reports whether the store app is present. `mas list`
// prints one "id name (version)" line per installed app.
func (p *Provider) IsInstalled(ctx context.Context, id string) (bool, error) {
	res, err := p.query(ctx, p.binPath, "list")
	if err != nil {
		return false, macstraperrors.NewProviderError(providerName, id, err)
	}
	if res.ExitCode != 0 {
		return false, macstraperrors.NewProviderError(providerName, id,
			fmt.Errorf("mas list failed: %s", execx.PrimaryOutput(res)))
	}

	for _, line := range strings.Split(res.Stdout, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == id {
			return true, nil
		}
	}
	return false, nil
}

// Install installs the store app by ID.
func (p *Provider) Install(ctx context.Context, id string) error {
	res, err := p.install(ctx, p.binPath, "install", id)
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
