// Package dock adapts the dockutil CLI to the dock provider contract.
package dock

import (
	"context"
	"fmt"
	"strings"

	"github.com/macstrap/macstrap/internal/model"
	"github.com/macstrap/macstrap/internal/providers/execx"
	macstraperrors "github.com/macstrap/macstrap/pkg/errors"
)

const providerName = "dockutil"

// Provider shells out to the dockutil binary resolved by the capability
// probe.
type Provider struct {
	binPath string
	query   execx.Runner
	apply   execx.Runner
}

// New creates a provider bound to the given dockutil binary path.
func New(binPath string) *Provider {
	return &Provider{
		binPath: binPath,
		query:   execx.Capture,
		apply:   execx.Capture,
	}
}

// CurrentEntries returns the labels of the current dock items.
// `dockutil --list` prints one tab-separated line per item with the
// label in the first field.
func (p *Provider) CurrentEntries(ctx context.Context) ([]string, error) {
	res, err := p.query(ctx, p.binPath, "--list")
	if err != nil {
		return nil, macstraperrors.NewProviderError(providerName, "", err)
	}
	if res.ExitCode != 0 {
		return nil, macstraperrors.NewProviderError(providerName, "",
			fmt.Errorf("dockutil --list failed: %s", execx.PrimaryOutput(res)))
	}

	var entries []string
	for _, line := range strings.Split(res.Stdout, "\n") {
		label, _, _ := strings.Cut(line, "\t")
		label = strings.TrimSpace(label)
		if label != "" {
			entries = append(entries, label)
		}
	}
	return entries, nil
}

// Apply performs a single dock change.
func (p *Provider) Apply(ctx context.Context, action model.DockAction) error {
	var args []string
	switch action.Op {
	case model.DockAdd:
		args = []string{"--add", action.Target}
	case model.DockRemove:
		args = []string{"--remove", action.Target}
	case model.DockReplace:
		args = []string{"--add", action.Target, "--replacing", action.Replace}
	default:
		return macstraperrors.NewProviderError(providerName, action.Target,
			fmt.Errorf("unknown dock operation %q", action.Op))
	}

	res, err := p.apply(ctx, p.binPath, args...)
	if err != nil {
		return macstraperrors.NewProviderError(providerName, action.Target, err)
	}
	if res.ExitCode != 0 {
		return macstraperrors.NewProviderError(providerName, action.Target,
			fmt.Errorf("dockutil failed: %s", execx.PrimaryOutput(res)))
	}
	return nil
}
