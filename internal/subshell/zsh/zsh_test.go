package zsh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyUserZshrcQuotesZdotdir(t *testing.T) {
	userDir := filepath.Join(t.TempDir(), "dir with spaces")
	require.NoError(t, os.MkdirAll(userDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, ".zshrc"), []byte("alias ll='ls -l'\n"), 0644))
	t.Setenv("ZDOTDIR", userDir)

	target := t.TempDir()
	require.NoError(t, copyUserZshrc(target))

	contents, err := os.ReadFile(filepath.Join(target, ".zshrc.bak"))
	require.NoError(t, err)
	assert.Contains(t, string(contents), `export ZDOTDIR="`+userDir+`"`)
	assert.Contains(t, string(contents), "alias ll='ls -l'")
}

func TestCopyUserZshrcNoUserFile(t *testing.T) {
	t.Setenv("ZDOTDIR", t.TempDir())

	target := t.TempDir()
	require.NoError(t, copyUserZshrc(target))

	_, err := os.Stat(filepath.Join(target, ".zshrc.bak"))
	assert.True(t, os.IsNotExist(err))
}
