// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions names explicit inputs for a config load. Zero values
// mean the default lookup under the user config directory.
type LoadOptions struct {
	// ConfigFilePath forces loading this exact file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the directory the file is searched in.
	ConfigDirPath string
}

// Provider resolves the hoards configuration.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider returns the TOML file-backed provider.
func NewProvider() Provider {
	return &fileProvider{}
}

func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
