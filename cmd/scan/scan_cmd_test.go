package scan

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	jsonformatter "github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters/json"
	"github.com/LegacyCodeHQ/deadfiles/depgraph"
	"github.com/LegacyCodeHQ/deadfiles/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeScan(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewCommand()
	cmd.SetArgs(append([]string{}, args...))
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestScan_TextReportListsUnusedFiles(t *testing.T) {
	root := testhelpers.WriteTree(t, testhelpers.SimpleTree())

	output, err := executeScan(t, "--root", root, "a.js")

	require.NoError(t, err)
	assert.Contains(t, output, "1 unused file")
	assert.Contains(t, output, "→ c.js")
	assert.Contains(t, output, filepath.Base(root)+" • 3 files • 1 unused")
}

func TestScan_JSONReportToFile(t *testing.T) {
	root := testhelpers.WriteTree(t, testhelpers.MixedTree())
	reportPath := filepath.Join(t.TempDir(), "report.json")

	output, err := executeScan(t, "-r", root, "-e", "main.js", "-f", "json", "-o", reportPath)

	require.NoError(t, err)
	assert.Empty(t, output)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	var report jsonformatter.Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, []string{"old.css"}, report.Unused)
	assert.Equal(t, 1, report.Summary.Cycles)
}

func TestScan_DOTReport(t *testing.T) {
	root := testhelpers.WriteTree(t, testhelpers.SimpleTree())

	output, err := executeScan(t, "--root", root, "a.js", "--format", "dot")

	require.NoError(t, err)
	assert.Contains(t, output, `"a.js" -> "b.js";`)
	assert.Contains(t, output, `label="`+filepath.Base(root)+` • 3 files • 1 unused"`)
}

func TestScan_ExcludedFilesAreNotReported(t *testing.T) {
	root := testhelpers.WriteTree(t, testhelpers.SimpleTree())

	output, err := executeScan(t, "--root", root, "a.js", "-x", "c.js")

	require.NoError(t, err)
	assert.Contains(t, output, "No unused files")
}

func TestScan_FailOnUnused(t *testing.T) {
	root := testhelpers.WriteTree(t, testhelpers.SimpleTree())

	_, err := executeScan(t, "--root", root, "a.js", "--fail-on-unused")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errUnusedFilesFound))
}

func TestScan_FailOnUnusedPassesWhenEverythingIsUsed(t *testing.T) {
	root := testhelpers.WriteTree(t, map[string]string{
		"a.js": "require('./b')\n",
		"b.js": "module.exports = 1\n",
	})

	_, err := executeScan(t, "--root", root, "a.js", "--fail-on-unused")

	assert.NoError(t, err)
}

func TestScan_AliasRewritesSpecifiers(t *testing.T) {
	root := testhelpers.WriteTree(t, map[string]string{
		"src/main.js":      "import '@/lib/util'\n",
		"src/lib/util.js":  "export const x = 1\n",
		"src/lib/other.js": "export const y = 2\n",
	})

	output, err := executeScan(t, "--root", root, "src/main.js", "-a", "@=src", "-f", "json")

	require.NoError(t, err)
	var report jsonformatter.Report
	require.NoError(t, json.Unmarshal([]byte(output), &report))
	assert.Equal(t, []string{"src/lib/util.js"}, report.Used)
	assert.Equal(t, []string{"src/lib/other.js"}, report.Unused)
}

func TestScan_MissingModuleFails(t *testing.T) {
	root := testhelpers.WriteTree(t, map[string]string{
		"a.js": "import './missing'\n",
	})

	_, err := executeScan(t, "--root", root, "a.js")

	require.Error(t, err)
	assert.True(t, errors.Is(err, depgraph.ErrModuleNotFound))
}

func TestScan_RequiresEntries(t *testing.T) {
	root := testhelpers.WriteTree(t, testhelpers.SimpleTree())

	_, err := executeScan(t, "--root", root)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entry modules given")
}

func TestScan_UnknownFormat(t *testing.T) {
	root := testhelpers.WriteTree(t, testhelpers.SimpleTree())

	_, err := executeScan(t, "--root", root, "a.js", "-f", "png")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format: png")
}

func TestRootLabelName(t *testing.T) {
	assert.Equal(t, "webapp", rootLabelName("/work/webapp/"))
	assert.Equal(t, "root", rootLabelName("/"))
}
