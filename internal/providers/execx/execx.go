// Package execx wraps the shell-outs every provider adapter makes.
// Queries capture output quietly; installs stream the tool's output
// through to the user while still collecting it for error reporting.
package execx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Result captures stdout/stderr and the exit code of a command run.
// A non-zero exit code is data, not an error: several providers use it
// as the "not installed" signal.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner is the function signature providers use to shell out. Tests
// substitute fakes; production code uses Capture or Stream.
type Runner func(ctx context.Context, name string, args ...string) (Result, error)

// Capture runs the command collecting its output without echoing it.
func Capture(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	return finish(cmd.Run(), &stdoutBuf, &stderrBuf)
}

// Stream runs the command wiring its stdout/stderr through to the
// parent process while collecting the output for later inspection.
func Stream(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = os.Environ()

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(os.Stdout, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(os.Stderr, &stderrBuf)

	return finish(cmd.Run(), &stdoutBuf, &stderrBuf)
}

func finish(err error, stdoutBuf, stderrBuf *bytes.Buffer) (Result, error) {
	res := Result{
		Stdout: strings.TrimSpace(stdoutBuf.String()),
		Stderr: strings.TrimSpace(stderrBuf.String()),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}

	return res, nil
}

// PrimaryOutput returns stderr if present, otherwise stdout.
func PrimaryOutput(res Result) string {
	if res.Stderr != "" {
		return res.Stderr
	}
	return res.Stdout
}
