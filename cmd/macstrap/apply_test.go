package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func executeCommand(cmd *cobra.Command, args ...string) error {
	cmd.SetArgs(args)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd.Execute()
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestApplyCommandRequiresManifestFlag(t *testing.T) {
	root := newRootCmd()
	err := executeCommand(root, "apply")
	require.Error(t, err)
}

func TestApplyCommandValidatesManifestFile(t *testing.T) {
	root := newRootCmd()
	err := executeCommand(root, "apply", "--manifest", "/path/does/not/exist")
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not exist")
}

func TestApplyCommandInvokesRunner(t *testing.T) {
	original := applyCmdRunner
	t.Cleanup(func() { applyCmdRunner = original })

	var captured applyOptions
	applyCmdRunner = func(opts applyOptions) error {
		captured = opts
		return nil
	}

	path := writeManifest(t, "name: test\nformulae:\n  - git\n")

	root := newRootCmd()
	require.NoError(t, executeCommand(root, "apply", "--manifest", path, "--verbose"))
	require.Equal(t, path, captured.ManifestPath)
	require.True(t, captured.Verbose)
}

func TestValidateManifestPath(t *testing.T) {
	t.Parallel()

	t.Run("returns error when path is empty", func(t *testing.T) {
		t.Parallel()
		err := validateManifestPath("")
		require.Error(t, err)
		require.Contains(t, err.Error(), "required")
	})

	t.Run("returns error when path is whitespace", func(t *testing.T) {
		t.Parallel()
		err := validateManifestPath("   ")
		require.Error(t, err)
		require.Contains(t, err.Error(), "required")
	})

	t.Run("returns error when path is a directory", func(t *testing.T) {
		t.Parallel()
		err := validateManifestPath(t.TempDir())
		require.Error(t, err)
		require.Contains(t, err.Error(), "directory")
	})

	t.Run("accepts an existing file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "manifest.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name: test\n"), 0o644))
		require.NoError(t, validateManifestPath(path))
	})
}
