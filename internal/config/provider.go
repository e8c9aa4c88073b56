// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// BaseDir is the project root that relative paths resolve against.
	// Empty means the current working directory.
	BaseDir string
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	return loadWithOptions(ctx, opts)
}

// ResolvePath returns the config file path the options point at.
func (o LoadOptions) ResolvePath() string {
	if o.ConfigFilePath != "" {
		return o.ConfigFilePath
	}
	return joinBase(o.BaseDir, DefaultConfigFile)
}
