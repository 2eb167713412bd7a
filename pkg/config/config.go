// Package config loads treelayout settings from a TOML file.
//
// The file has three sections. [layout] and [render] hold the defaults for
// [pipeline.Options]; [server] configures the HTTP API:
//
//	[layout]
//	algorithm = "mindmap"
//	hgap = 24
//
//	[render]
//	formats = ["svg", "png"]
//	links = "straight"
//
//	[server]
//	addr = ":9090"
//	cache_entries = 4096
//	request_timeout = "30s"
//
// Every key is optional. Unknown keys are rejected so typos surface as
// INVALID_CONFIG instead of silently falling back to defaults. Server
// settings can also be set from the environment (TREELAYOUT_ADDR and
// friends), which wins over the file.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/pipeline"
)

// Server defaults.
const (
	DefaultAddr           = ":8080"
	DefaultMaxBodyBytes   = 1 << 20
	DefaultRequestTimeout = 30 * time.Second
)

// Config is the decoded configuration file.
type Config struct {
	Layout Layout `toml:"layout"`
	Render Render `toml:"render"`
	Server Server `toml:"server"`
}

// Layout mirrors the layout half of [pipeline.Options].
type Layout struct {
	Algorithm        string  `toml:"algorithm"`
	Direction        string  `toml:"direction"`
	Radial           bool    `toml:"radial"`
	FreeRoot         bool    `toml:"free_root"`
	Indent           float64 `toml:"indent"`
	InlineFirstChild bool    `toml:"inline_first_child"`
	Align            string  `toml:"align"`
	NodeSep          float64 `toml:"node_sep"`
	RankSep          float64 `toml:"rank_sep"`
	SubTreeSep       float64 `toml:"subtree_sep"`
	MindmapSep       float64 `toml:"mindmap_sep"`
	NodeWidth        float64 `toml:"node_width"`
	NodeHeight       float64 `toml:"node_height"`
	HGap             float64 `toml:"hgap"`
	VGap             float64 `toml:"vgap"`
}

// Render mirrors the render half of [pipeline.Options].
type Render struct {
	Formats  []string `toml:"formats"`
	Renderer string   `toml:"renderer"`
	Engine   string   `toml:"engine"`
	Links    string   `toml:"links"`
	Scale    float64  `toml:"scale"`
	Detailed bool     `toml:"detailed"`
}

// Server configures `treelayout serve`.
type Server struct {
	Addr           string        `toml:"addr"`
	CacheEntries   int           `toml:"cache_entries"`
	MaxBodyBytes   int64         `toml:"max_body_bytes"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	var c Config
	c.setDefaults()
	return c
}

// DefaultPath returns $XDG_CONFIG_HOME/treelayout/config.toml, or the
// platform equivalent. It returns "" when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "treelayout", "config.toml")
}

// Load reads the file at path. An empty path means [DefaultPath], and a
// missing default file is not an error. Environment overrides are applied
// last.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Config{}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if cfg, err = Decode(path); err != nil {
				return Config{}, err
			}
		} else if explicit {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
	}

	cfg.applyEnv()
	cfg.setDefaults()
	return cfg, nil
}

// Decode parses and validates a TOML file without applying defaults or
// environment overrides.
func Decode(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks the layout and render sections against the pipeline's
// own rules, and the server section for impossible values.
func (c Config) Validate() error {
	opts := c.Options()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if c.Server.CacheEntries < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.cache_entries must not be negative")
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must not be negative")
	}
	if c.Server.RequestTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.request_timeout must not be negative")
	}
	return nil
}

// Options merges the layout and render sections into pipeline options.
func (c Config) Options() pipeline.Options {
	l, r := c.Layout, c.Render
	return pipeline.Options{
		Algorithm:        l.Algorithm,
		Direction:        l.Direction,
		Radial:           l.Radial,
		FreeRoot:         l.FreeRoot,
		Indent:           l.Indent,
		InlineFirstChild: l.InlineFirstChild,
		Align:            l.Align,
		NodeSep:          l.NodeSep,
		RankSep:          l.RankSep,
		SubTreeSep:       l.SubTreeSep,
		MindmapSep:       l.MindmapSep,
		NodeWidth:        l.NodeWidth,
		NodeHeight:       l.NodeHeight,
		HGap:             l.HGap,
		VGap:             l.VGap,
		Formats:          append([]string(nil), r.Formats...),
		Renderer:         r.Renderer,
		Engine:           r.Engine,
		Links:            r.Links,
		Scale:            r.Scale,
		Detailed:         r.Detailed,
	}
}

func (c *Config) setDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.CacheEntries == 0 {
		c.Server.CacheEntries = 1024
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = DefaultRequestTimeout
	}
}

func (c *Config) applyEnv() {
	c.Server.Addr = envOr("TREELAYOUT_ADDR", c.Server.Addr)
	c.Server.CacheEntries = envInt("TREELAYOUT_CACHE_ENTRIES", c.Server.CacheEntries)
	c.Server.MaxBodyBytes = envInt64("TREELAYOUT_MAX_BODY_BYTES", c.Server.MaxBodyBytes)
	c.Server.RequestTimeout = envDuration("TREELAYOUT_REQUEST_TIMEOUT", c.Server.RequestTimeout)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
