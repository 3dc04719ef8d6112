package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
root = "web"
entries = ["src/index.js", "src/admin.js"]
include = ["src/**/*"]
exclude = ["**/*.stories.js"]
vendor_dirs = ["node_modules", "bower_components"]
format = "json"
ignore_tests = true

[aliases]
"@" = "src"
"@components" = "src/components"
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"src/index.js", "src/admin.js"}, cfg.Entries)
	assert.Equal(t, []string{"src/**/*"}, cfg.Include)
	assert.Equal(t, []string{"**/*.stories.js"}, cfg.Exclude)
	assert.Equal(t, []string{"node_modules", "bower_components"}, cfg.VendorDirs)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.IgnoreTests)

	root, err := cfg.RootDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "web"), root)
}

func TestLoad_MissingDefaultFileIsEmpty(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Empty(t, cfg.Entries)
	assert.Empty(t, cfg.Aliases)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "custom.toml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("entries = [\"a.js\"]\nentry = \"b.js\"\n"), ".")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys: entry")
}

func TestParse_InvalidTOML(t *testing.T) {
	_, err := Parse([]byte("entries = ["), ".")

	require.Error(t, err)
}

func TestMerge(t *testing.T) {
	base, err := Parse([]byte(sampleConfig), "/project")
	require.NoError(t, err)

	merged := Merge(base, Config{
		Entries: []string{"src/other.js"},
		Exclude: []string{"legacy/**"},
		Format:  "dot",
		Aliases: map[string]string{"@": "app"},
	})

	assert.Equal(t, []string{"src/other.js"}, merged.Entries)
	assert.Equal(t, []string{"src/**/*"}, merged.Include)
	assert.Equal(t, []string{"**/*.stories.js", "legacy/**"}, merged.Exclude)
	assert.Equal(t, "dot", merged.Format)
	assert.Equal(t, "app", merged.Aliases["@"])
	assert.Equal(t, "src/components", merged.Aliases["@components"])
	assert.Equal(t, "src", base.Aliases["@"], "base must not be modified")
}

func TestMerge_RootOverrideResolvesFromWorkingDirectory(t *testing.T) {
	base, err := Parse([]byte(`root = "web"`), "/project")
	require.NoError(t, err)

	merged := Merge(base, Config{Root: "/elsewhere"})

	root, err := merged.RootDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/elsewhere"), root)
}

func TestOverrideHook_LongestAliasWins(t *testing.T) {
	cfg := &Config{
		Root: "/project",
		Aliases: map[string]string{
			"@":           "src",
			"@components": "src/ui/components",
			"~lib/":       "/shared/lib",
		},
	}

	hook, err := cfg.OverrideHook()
	require.NoError(t, err)
	require.NotNil(t, hook)

	assert.Equal(t, filepath.Join("/project", "src", "utils", "date"), hook("/project/src", "@/utils/date"))
	assert.Equal(t, filepath.Join("/project", "src", "ui", "components", "Button"), hook("/project/src", "@components/Button"))
	assert.Equal(t, filepath.Join("/project", "src", "ui", "components"), hook("/project/src", "@components"))
	assert.Equal(t, filepath.Join("/shared", "lib", "x"), hook("/project/src", "~lib/x"))
	assert.Empty(t, hook("/project/src", "./local"))
	assert.Empty(t, hook("/project/src", "@componentsextra/x"))
	assert.Empty(t, hook("/project/src", "react"))
}

func TestOverrideHook_NoAliases(t *testing.T) {
	hook, err := (&Config{}).OverrideHook()

	require.NoError(t, err)
	assert.Nil(t, hook)
}

func TestParseAlias(t *testing.T) {
	from, to, err := ParseAlias("@=src")
	require.NoError(t, err)
	assert.Equal(t, "@", from)
	assert.Equal(t, "src", to)

	_, _, err = ParseAlias("@src")
	assert.Error(t, err)

	_, _, err = ParseAlias("=src")
	assert.Error(t, err)
}

func TestEncode_RoundTrips(t *testing.T) {
	cfg := &Config{
		Entries:    []string{"src/index.js"},
		VendorDirs: []string{"node_modules"},
		Format:     "text",
		Aliases:    map[string]string{"@": "src"},
	}

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))

	assert.NotContains(t, buf.String(), "root")
	assert.NotContains(t, buf.String(), "ignore_tests")

	decoded, err := Parse(buf.Bytes(), ".")
	require.NoError(t, err)
	assert.Equal(t, cfg.Entries, decoded.Entries)
	assert.Equal(t, cfg.VendorDirs, decoded.VendorDirs)
	assert.Equal(t, cfg.Format, decoded.Format)
	assert.Equal(t, cfg.Aliases, decoded.Aliases)
}
