// Package identity configures the version-control identity by editing
// the user's global git configuration directly, without shelling out.
package identity

import (
	"context"
	"os"
	"path/filepath"

	gitconfig "github.com/go-git/go-git/v5/config"

	macstraperrors "github.com/macstrap/macstrap/pkg/errors"
)

const providerName = "git-identity"

// Provider reads and writes the global git config. The load/save
// functions are fields so tests can substitute an in-memory config.
type Provider struct {
	load func() (*gitconfig.Config, error)
	save func(data []byte) error
}

// New creates a provider backed by the user's global git configuration.
func New() *Provider {
	return &Provider{
		load: func() (*gitconfig.Config, error) {
			return gitconfig.LoadConfig(gitconfig.GlobalScope)
		},
		save: saveGlobalConfig,
	}
}

// Current returns the configured global identity; empty strings when
// unset.
func (p *Provider) Current(ctx context.Context) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	cfg, err := p.load()
	if err != nil {
		return "", "", macstraperrors.NewProviderError(providerName, "", err)
	}
	return cfg.User.Name, cfg.User.Email, nil
}

// Set writes the identity into the global git config, preserving all
// other configuration the file carries.
func (p *Provider) Set(ctx context.Context, name, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg, err := p.load()
	if err != nil {
		return macstraperrors.NewProviderError(providerName, name, err)
	}

	cfg.User.Name = name
	cfg.User.Email = email

	data, err := cfg.Marshal()
	if err != nil {
		return macstraperrors.NewProviderError(providerName, name, err)
	}

	if err := p.save(data); err != nil {
		return macstraperrors.NewProviderError(providerName, name, err)
	}
	return nil
}

// saveGlobalConfig writes to the first existing global config file, or
// the last candidate path (conventionally ~/.gitconfig) when none exist.
func saveGlobalConfig(data []byte) error {
	paths, err := gitconfig.Paths(gitconfig.GlobalScope)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return os.ErrNotExist
	}

	target := paths[len(paths)-1]
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			target = path
			break
		}
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}
