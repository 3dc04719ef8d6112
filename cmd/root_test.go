package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	jsonformatter "github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters/json"
	"github.com/LegacyCodeHQ/deadfiles/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	configPath, verbose = "", false
	cmd := newRootCommand()
	cmd.SetArgs(append([]string{}, args...))
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRoot_RegistersSubcommands(t *testing.T) {
	cmd := newRootCommand()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"init", "scan", "why", "watch", "languages"})
}

func TestRoot_Version(t *testing.T) {
	stdout, _, err := executeRoot(t, "--version")

	require.NoError(t, err)
	assert.Contains(t, stdout, "deadfiles version dev")
	assert.Contains(t, stdout, "Build date: unknown")
	assert.Contains(t, stdout, "Commit: unknown")
}

func TestRoot_ScanReadsConfigFile(t *testing.T) {
	root := testhelpers.WriteTree(t, testhelpers.MixedTree())
	configFile := filepath.Join(t.TempDir(), "deadfiles.toml")
	config := "root = " + quote(root) + "\nentries = [\"main.js\"]\nformat = \"json\"\n"
	require.NoError(t, os.WriteFile(configFile, []byte(config), 0o644))

	stdout, _, err := executeRoot(t, "scan", "--config", configFile)
	require.NoError(t, err)

	var report jsonformatter.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, []string{"old.css"}, report.Unused)
}

func TestRoot_VerboseLogsToStderr(t *testing.T) {
	root := testhelpers.WriteTree(t, testhelpers.SimpleTree())

	_, stderr, err := executeRoot(t, "scan", "-v", "--root", root, "a.js")

	require.NoError(t, err)
	assert.Contains(t, stderr, "deadfiles")
	assert.Contains(t, stderr, "analysis complete")
}

func quote(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}
