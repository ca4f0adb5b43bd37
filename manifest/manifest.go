// Package manifest handles bridge.toml attachment configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chazu/jbridge/bridge"
)

// Manifest represents a bridge.toml attachment configuration.
type Manifest struct {
	Runtime RuntimeConfig `toml:"runtime"`
	Preload Preload       `toml:"preload"`
	Trace   TraceConfig   `toml:"trace"`

	// Dir is the directory containing the bridge.toml file (set at load time).
	Dir string `toml:"-"`
}

// RuntimeConfig configures how the bridge attaches to the runtime.
type RuntimeConfig struct {
	InstallLoader bool   `toml:"install-loader"`
	LoaderClass   string `toml:"loader-class"`
}

// Preload lists classes resolved eagerly at attach time, warming the
// class cache before the first call.
type Preload struct {
	Classes []string `toml:"classes"`
}

// TraceConfig configures call tracing.
type TraceConfig struct {
	Enabled bool   `toml:"enabled"`
	Output  string `toml:"output"`
}

// Load parses a bridge.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "bridge.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if m.Runtime.LoaderClass == "" {
		m.Runtime.LoaderClass = "java.lang.ClassLoader"
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find a bridge.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "bridge.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// TraceOutputPath returns the absolute path of the trace output file.
func (m *Manifest) TraceOutputPath() string {
	out := m.Trace.Output
	if out == "" {
		out = "bridge-trace.cbor"
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(m.Dir, out)
}

// Apply configures an attached bridge from the manifest: it resolves the
// preload classes, warming the cache, and reports any that could not be
// found. Class-loader installation is left to the caller, which owns the
// loader object.
func (m *Manifest) Apply(b *bridge.Bridge) error {
	var missing []string
	for _, name := range m.Preload.Classes {
		if !b.IsClassAvailable(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("preload classes not found: %v", missing)
	}
	return nil
}
