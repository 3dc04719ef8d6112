package internal

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	scancmd "github.com/LegacyCodeHQ/deadfiles/cmd/scan"
	whycmd "github.com/LegacyCodeHQ/deadfiles/cmd/why"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// ScanSubcommand runs "deadfiles scan" with args and returns its trimmed stdout.
func ScanSubcommand(t *testing.T, args ...string) string {
	t.Helper()
	return execute(t, scancmd.NewCommand(), args)
}

// WhySubcommand runs "deadfiles why" with args and returns its trimmed stdout.
func WhySubcommand(t *testing.T, args ...string) string {
	t.Helper()
	return execute(t, whycmd.NewCommand(), args)
}

func execute(t *testing.T, cmd *cobra.Command, args []string) string {
	t.Helper()

	cmd.SetArgs(append([]string{}, args...))

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	require.NoError(t, err, "stderr: %s", strings.TrimSpace(stderr.String()))

	return strings.TrimRight(stdout.String(), "\n")
}

// Fixture returns the absolute path of a fixture project under testdata/integration/fixtures.
func Fixture(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(RepoRoot(t), "testdata", "integration", "fixtures", name)
}

func RepoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)

	repoRoot := wd
	for i := 0; i < 10; i++ {
		_, err = os.Stat(filepath.Join(repoRoot, "go.mod"))
		if err == nil {
			return repoRoot
		}

		parent := filepath.Dir(repoRoot)
		if parent == repoRoot {
			break
		}
		repoRoot = parent
	}

	require.NoError(t, err, "expected repo root with go.mod, got %s", repoRoot)
	return repoRoot
}
