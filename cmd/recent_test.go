package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func useFileBackend(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("EMOJIPANEL_CONFIG", "")
	t.Setenv("EMOJIPANEL_STORAGE_BACKEND", "file")
	t.Setenv("EMOJIPANEL_STORAGE_FILE_PATH", filepath.Join(t.TempDir(), "recent.json"))
}

func TestRecentAddListClear(t *testing.T) {
	useFileBackend(t)

	for _, item := range []string{"😀", "🎉", "😀"} {
		_, err := executeCommand(t, "recent", "add", item)
		require.NoError(t, err)
	}

	out, err := executeCommand(t, "recent", "list")
	require.NoError(t, err)
	assert.Equal(t, []string{"😀", "🎉"}, strings.Fields(out))

	_, err = executeCommand(t, "recent", "clear")
	require.NoError(t, err)

	out, err = executeCommand(t, "recent", "list")
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(out))
}

func TestRecentAddRequiresItem(t *testing.T) {
	useFileBackend(t)
	_, err := executeCommand(t, "recent", "add")
	assert.Error(t, err)
}

func TestRecentBadBackend(t *testing.T) {
	useFileBackend(t)
	t.Setenv("EMOJIPANEL_STORAGE_BACKEND", "floppy")
	_, err := executeCommand(t, "recent", "list")
	assert.ErrorContains(t, err, "floppy")
}
