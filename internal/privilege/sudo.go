package privilege

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/macstrap/macstrap/internal/providers/execx"
)

// SudoBackend implements Backend on top of sudo's credential cache:
// Verify primes the cache with the supplied password, Refresh extends
// it non-interactively so long-running installs never re-prompt.
type SudoBackend struct {
	verify  func(ctx context.Context, credential []byte) error
	refresh func(ctx context.Context) error
}

// NewSudoBackend creates a backend driving the real sudo binary.
func NewSudoBackend() *SudoBackend {
	return &SudoBackend{
		verify:  sudoVerify,
		refresh: sudoRefresh,
	}
}

// Verify primes the sudo credential cache with the password.
func (b *SudoBackend) Verify(ctx context.Context, credential []byte) error {
	return b.verify(ctx, credential)
}

// Refresh extends the credential cache without prompting.
func (b *SudoBackend) Refresh(ctx context.Context) error {
	return b.refresh(ctx)
}

func sudoVerify(ctx context.Context, credential []byte) error {
	// -S reads the password from stdin, -p "" suppresses the prompt so
	// nothing leaks onto the terminal the TUI owns.
	cmd := exec.CommandContext(ctx, "sudo", "-S", "-p", "", "-v")
	cmd.Stdin = bytes.NewReader(append(credential, '\n'))

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := stderr.String(); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

func sudoRefresh(ctx context.Context) error {
	// -n never prompts; a lapsed cache fails fast instead of hanging.
	res, err := execx.Capture(ctx, "sudo", "-n", "-v")
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("sudo refresh failed: %s", execx.PrimaryOutput(res))
	}
	return nil
}
