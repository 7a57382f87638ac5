// Package config loads blockmerge's configuration from a cascade of sources, lowest precedence first:
//   - built-in defaults
//   - the user config file, ~/.config/blockmerge/config.yaml
//   - the nearest .blockmerge.yaml, searching upward from the working directory
//   - an explicit file passed with --config
//   - BLOCKMERGE_* environment variables (BLOCKMERGE_MARKER_SIZE, BLOCKMERGE_LABELS_OURS, ...)
//   - command-line flags that were set explicitly
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/blockmerge/blockmerge/internal/mergefile"
)

const (
	// EnvPrefix prefixes every environment variable that overrides a key.
	EnvPrefix = "BLOCKMERGE"

	// ProjectFileName is searched for upward from the working directory.
	ProjectFileName = ".blockmerge.yaml"
)

// UserFile is the user config file, relative to the home directory.
var UserFile = filepath.Join(".config", "blockmerge", "config.yaml")

// Labels are the names written after the conflict markers.
type Labels struct {
	Ours   string `mapstructure:"ours" yaml:"ours"`
	Base   string `mapstructure:"base" yaml:"base"`
	Theirs string `mapstructure:"theirs" yaml:"theirs"`
}

// Config is the effective configuration.
type Config struct {
	// Style is "diff" (ours and theirs) or "diff3" (ours, base and theirs).
	Style string `mapstructure:"style" yaml:"style" validate:"mergestyle"`

	// MarkerSize is the width of each conflict marker. Defaults to 7.
	MarkerSize int `mapstructure:"marker_size" yaml:"marker_size" validate:"min=1,max=64"`

	Labels Labels `mapstructure:"labels" yaml:"labels"`

	// Heuristics lists glob patterns of paths merged with the outline heuristics. A pattern without "/" is matched against the base name;
	// otherwise against the slash-separated path.
	Heuristics []string `mapstructure:"heuristics" yaml:"heuristics" validate:"globs"`

	// Jobs bounds how many files are processed concurrently.
	Jobs int `mapstructure:"jobs" yaml:"jobs" validate:"min=1,max=256"`

	// Files lists the config files that were read, lowest precedence first.
	Files []string `mapstructure:"-" yaml:"-"`

	globs []glob.Glob
}

// LoadOptions control where Load looks.
type LoadOptions struct {
	// ConfigFile is an explicit config file. It must exist.
	ConfigFile string

	// Dir starts the search for ProjectFileName. Empty means the working directory.
	Dir string

	// Flags, if non-nil, are consulted for the "style", "marker-size" and "jobs" flags. Only flags that were set override other sources.
	Flags *pflag.FlagSet
}

// flagKeys maps config keys to the flag names that override them.
var flagKeys = map[string]string{
	"style":       "style",
	"marker_size": "marker-size",
	"jobs":        "jobs",
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Style:      string(mergefile.StyleDiff),
		MarkerSize: mergefile.DefaultMarkerSize,
		Labels: Labels{
			Ours:   mergefile.DefaultOurLabel,
			Base:   mergefile.DefaultBaseLabel,
			Theirs: mergefile.DefaultTheirLabel,
		},
		Heuristics: []string{"*.md", "*.org"},
		Jobs:       4,
	}
	cfg.globs, _ = compileGlobs(cfg.Heuristics)
	return cfg
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("style", d.Style)
	v.SetDefault("marker_size", d.MarkerSize)
	v.SetDefault("labels.ours", d.Labels.Ours)
	v.SetDefault("labels.base", d.Labels.Base)
	v.SetDefault("labels.theirs", d.Labels.Theirs)
	v.SetDefault("heuristics", d.Heuristics)
	v.SetDefault("jobs", d.Jobs)
}

// Load reads, merges and validates the configuration.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	var files []string
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		if p := filepath.Join(home, UserFile); isNonEmptyFile(p) {
			files = append(files, p)
		}
	}
	if p := nearestFile(ProjectFileName, opts.Dir); p != "" {
		files = append(files, p)
	}
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, fmt.Errorf("load configuration: %w", err)
		}
		files = append(files, opts.ConfigFile)
	}

	for _, p := range files {
		v.SetConfigFile(p)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("load configuration %s: %w", p, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for key, name := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("load configuration: bind flag %q: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	cfg.Files = files

	if err := cfg.Validate(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) && opts.Flags != nil {
			verr.Flags = changedFlags(opts.Flags, verr.Keys)
		}
		return nil, err
	}
	return cfg, nil
}

// changedFlags returns the names of the flags in fs that were set on the command line and override one of keys.
func changedFlags(fs *pflag.FlagSet, keys []string) []string {
	var names []string
	for _, key := range keys {
		name, ok := flagKeys[key]
		if !ok {
			continue
		}
		if f := fs.Lookup(name); f != nil && f.Changed {
			names = append(names, name)
		}
	}
	return names
}

// Validate checks cfg and compiles its heuristic patterns.
func (c *Config) Validate() error {
	c.Style = strings.ToLower(strings.TrimSpace(c.Style))
	if err := validate(c); err != nil {
		return err
	}
	globs, err := compileGlobs(c.Heuristics)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	c.globs = globs
	return nil
}

// MergeOptions converts c into options for the merge functions.
func (c *Config) MergeOptions() mergefile.Options {
	return mergefile.Options{
		OurLabel:   c.Labels.Ours,
		BaseLabel:  c.Labels.Base,
		TheirLabel: c.Labels.Theirs,
		Style:      mergefile.Style(c.Style),
		MarkerSize: c.MarkerSize,
	}
}

// UsesHeuristics reports whether path matches one of the Heuristics patterns. Both the base name and the slash-separated path are tried, so
// "*.md" matches "pages/a.md" and "pages/*.md" matches only direct children of pages.
func (c *Config) UsesHeuristics(path string) bool {
	if c.globs == nil && len(c.Heuristics) > 0 {
		c.globs, _ = compileGlobs(c.Heuristics)
	}
	slashed := filepath.ToSlash(filepath.Clean(path))
	slashed = strings.TrimPrefix(slashed, "./")
	base := filepath.Base(path)
	for _, g := range c.globs {
		if g.Match(base) || g.Match(slashed) {
			return true
		}
	}
	return false
}

// YAML renders c the way a config file would spell it.
func (c *Config) YAML() ([]byte, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal configuration: %w", err)
	}
	return b, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("heuristics pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// nearestFile searches upward from start (or the working directory) for a non-empty file named name.
func nearestFile(name string, start string) string {
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		start = wd
	}
	if abs, err := filepath.Abs(start); err == nil {
		start = abs
	}
	if fi, err := os.Stat(start); err == nil && !fi.IsDir() {
		start = filepath.Dir(start)
	}

	for dir := start; ; {
		if p := filepath.Join(dir, name); isNonEmptyFile(p) {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func isNonEmptyFile(p string) bool {
	data, err := os.ReadFile(p)
	return err == nil && strings.TrimSpace(string(data)) != ""
}
