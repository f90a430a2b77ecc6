// Package config loads verdant.toml, the per-project settings for the cache,
// the parse pipeline and tracing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"verdant/internal/trace"
)

// FileName is the name Find looks for.
const FileName = "verdant.toml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	// Path is the file the settings came from; empty for Default.
	Path  string      `toml:"-"`
	Cache CacheConfig `toml:"cache"`
	Parse ParseConfig `toml:"parse"`
	Trace TraceConfig `toml:"trace"`
}

type CacheConfig struct {
	Enabled bool `toml:"enabled"`
	// Size is the number of slots in the node cache, rounded up to a power
	// of two.
	Size int `toml:"size"`
}

type ParseConfig struct {
	Jobs                  int  `toml:"jobs"` // 0 means GOMAXPROCS
	DiskCache             bool `toml:"disk_cache"`
	VisitStructuredTrivia bool `toml:"visit_structured_trivia"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Mode   string `toml:"mode"`
}

// Default returns the settings used when no verdant.toml exists.
func Default() Config {
	return Config{
		Cache: CacheConfig{Enabled: true, Size: 1 << 16},
		Trace: TraceConfig{Level: "off", Mode: "stream"},
	}
}

// Load reads path over Default; keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalid, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and the trace strings.
func (c Config) Validate() error {
	if c.Cache.Size < 0 {
		return fmt.Errorf("%w: [cache].size must not be negative", ErrInvalid)
	}
	if c.Parse.Jobs < 0 {
		return fmt.Errorf("%w: [parse].jobs must not be negative", ErrInvalid)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("%w: [trace].level: %w", ErrInvalid, err)
	}
	if c.Trace.Mode != "" {
		if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
			return fmt.Errorf("%w: [trace].mode: %w", ErrInvalid, err)
		}
	}
	return nil
}

// Find walks up from startDir to locate verdant.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the verdant.toml above startDir, or Default when there is
// none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// TraceSettings converts the [trace] section for trace.New. An empty output
// means stderr.
func (c Config) TraceSettings() (trace.Config, error) {
	level, err := trace.ParseLevel(c.Trace.Level)
	if err != nil {
		return trace.Config{}, err
	}
	mode := trace.ModeStream
	if c.Trace.Mode != "" {
		if mode, err = trace.ParseMode(c.Trace.Mode); err != nil {
			return trace.Config{}, err
		}
	}
	return trace.Config{Level: level, Mode: mode, OutputPath: c.Trace.Output}, nil
}
