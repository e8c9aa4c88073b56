// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Version is the manifest format version written by Build.
const Version = 1

type (
	// Manifest is the serialized cache document.
	Manifest struct {
		Version          int       `toml:"version"`
		Generated        time.Time `toml:"generated"`
		ServiceProviders []string  `toml:"service_providers"`
	}

	// ProviderSource computes the live list of service provider classes.
	ProviderSource interface {
		ServiceProviderClasses() []string
	}

	// Cache reads and writes the manifest file at a fixed path. The file is
	// read at most once; Build and Clear keep the in-memory copy in step.
	Cache struct {
		path   string
		now    func() time.Time
		loaded bool
		cached *Manifest
	}
)

// New creates a Cache for path. A nil now uses time.Now.
func New(path string, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{path: path, now: now}
}

// Path returns the manifest file location.
func (c *Cache) Path() string {
	return c.path
}

// Build clears the cache, recomputes the provider list from src and writes it.
func (c *Cache) Build(src ProviderSource) (*Manifest, error) {
	if err := c.Clear(); err != nil {
		return nil, err
	}

	m := &Manifest{
		Version:          Version,
		Generated:        c.now().UTC().Truncate(time.Second),
		ServiceProviders: src.ServiceProviderClasses(),
	}
	if m.ServiceProviders == nil {
		m.ServiceProviders = []string{}
	}

	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	c.loaded, c.cached = true, m
	return m, nil
}

// Clear removes the manifest file and forgets the in-memory copy. A missing
// file is not an error.
func (c *Cache) Clear() error {
	c.loaded, c.cached = false, nil
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove manifest: %w", err)
	}
	return nil
}

// Load returns the manifest, reading the file on first use. It returns
// (nil, nil) when no manifest exists.
func (c *Cache) Load() (*Manifest, error) {
	if c.loaded {
		return c.cached, nil
	}

	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		c.loaded = true
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", c.path, err)
	}
	if m.Version != Version {
		return nil, fmt.Errorf("manifest %s has version %d, expected %d", c.path, m.Version, Version)
	}

	c.loaded, c.cached = true, &m
	return &m, nil
}

// ServiceProviders returns the cached provider classes when a manifest is
// present and the live list from src otherwise. A manifest that cannot be
// read is treated as absent.
func ServiceProviders(c *Cache, src ProviderSource) []string {
	if c != nil {
		if m, err := c.Load(); err == nil && m != nil {
			return slices.Clone(m.ServiceProviders)
		}
	}
	return src.ServiceProviderClasses()
}
