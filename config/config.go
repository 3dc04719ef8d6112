// Package config loads project settings from a .deadfiles.toml file.
package config

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// DefaultFileName is looked up in the working directory when no path is given.
const DefaultFileName = ".deadfiles.toml"

// Config holds project settings. Zero values mean "use the default".
type Config struct {
	Root        string            `toml:"root,omitempty"`
	Entries     []string          `toml:"entries,omitempty"`
	Include     []string          `toml:"include,omitempty"`
	Exclude     []string          `toml:"exclude,omitempty"`
	VendorDirs  []string          `toml:"vendor_dirs,omitempty"`
	Format      string            `toml:"format,omitempty"`
	IgnoreTests bool              `toml:"ignore_tests,omitempty"`
	Aliases     map[string]string `toml:"aliases,omitempty"`

	// baseDir anchors a relative root and relative alias targets.
	baseDir string
}

// Load reads the config file at path. An empty path reads DefaultFileName from the
// working directory and tolerates its absence.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &Config{baseDir: "."}, nil
		}
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}

	cfg, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML settings. baseDir anchors relative paths in the file.
func Parse(data []byte, baseDir string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, errors.Newf("unknown keys: %s", strings.Join(keys, ", "))
	}

	cfg.baseDir = baseDir
	return &cfg, nil
}

// Merge returns base with every non-zero field of override applied on top.
// Alias tables are merged key by key.
func Merge(base *Config, override Config) *Config {
	merged := Config{baseDir: "."}
	if base != nil {
		merged = *base
		merged.Aliases = copyAliases(base.Aliases)
	}

	if override.Root != "" {
		merged.Root = override.Root
		merged.baseDir = "."
	}
	if len(override.Entries) > 0 {
		merged.Entries = override.Entries
	}
	if len(override.Include) > 0 {
		merged.Include = override.Include
	}
	if len(override.Exclude) > 0 {
		merged.Exclude = append(append([]string(nil), merged.Exclude...), override.Exclude...)
	}
	if len(override.VendorDirs) > 0 {
		merged.VendorDirs = override.VendorDirs
	}
	if override.Format != "" {
		merged.Format = override.Format
	}
	if override.IgnoreTests {
		merged.IgnoreTests = true
	}
	for alias, target := range override.Aliases {
		if merged.Aliases == nil {
			merged.Aliases = make(map[string]string)
		}
		merged.Aliases[alias] = target
	}

	return &merged
}

// Encode writes c as TOML, leaving out empty settings.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// RootDir returns the absolute search root.
func (c *Config) RootDir() (string, error) {
	root := c.Root
	if root == "" {
		root = "."
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(c.base(), root)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve root %s", c.Root)
	}
	return abs, nil
}

// OverrideHook turns the alias table into a specifier rewrite. A specifier equal to
// an alias, or starting with the alias followed by "/", is rewritten to the alias
// target joined with the remainder. The longest alias wins. Relative targets are
// anchored at the search root. Returns nil when no aliases are configured.
func (c *Config) OverrideHook() (func(dir, specifier string) string, error) {
	if len(c.Aliases) == 0 {
		return nil, nil
	}

	root, err := c.RootDir()
	if err != nil {
		return nil, err
	}

	type alias struct {
		name   string
		target string
	}
	aliases := make([]alias, 0, len(c.Aliases))
	for name, target := range c.Aliases {
		name = strings.TrimSuffix(name, "/")
		if name == "" {
			return nil, errors.New("alias name must not be empty")
		}
		target = filepath.FromSlash(target)
		if !filepath.IsAbs(target) {
			target = filepath.Join(root, target)
		}
		aliases = append(aliases, alias{name: name, target: target})
	}
	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i].name) != len(aliases[j].name) {
			return len(aliases[i].name) > len(aliases[j].name)
		}
		return aliases[i].name < aliases[j].name
	})

	return func(_, specifier string) string {
		for _, a := range aliases {
			if specifier == a.name {
				return a.target
			}
			if rest, ok := strings.CutPrefix(specifier, a.name+"/"); ok {
				return filepath.Join(a.target, filepath.FromSlash(rest))
			}
		}
		return ""
	}, nil
}

// ParseAlias splits a "from=to" flag value.
func ParseAlias(value string) (string, string, error) {
	from, to, ok := strings.Cut(value, "=")
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if !ok || from == "" || to == "" {
		return "", "", errors.Newf("invalid alias %q, expected from=to", value)
	}
	return from, to, nil
}

func (c *Config) base() string {
	if c.baseDir == "" {
		return "."
	}
	return c.baseDir
}

func copyAliases(aliases map[string]string) map[string]string {
	if aliases == nil {
		return nil
	}
	copied := make(map[string]string, len(aliases))
	for k, v := range aliases {
		copied[k] = v
	}
	return copied
}
