package config

import (
	"time"

	"github.com/s0up4200/calameo/calameo"
)

// Config represents the complete configuration structure
type Config struct {
	Calameo CalameoConfig `mapstructure:"calameo"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CalameoConfig holds the API credentials and endpoint settings
type CalameoConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	Secret    string        `mapstructure:"secret"`
	APIURL    string        `mapstructure:"api_url"`
	UploadURL string        `mapstructure:"upload_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	PageSize  int           `mapstructure:"page_size"`
}

// Credentials returns the key/secret pair for the client
func (c CalameoConfig) Credentials() calameo.Credentials {
	return calameo.Credentials{APIKey: c.APIKey, Secret: c.Secret}
}

// Settings returns the section as a flat settings map, the shape used by
// XML config files and by config export
func (c CalameoConfig) Settings() Settings {
	return Settings{
		"apikey":     c.APIKey,
		"secret":     c.Secret,
		"api_url":    c.APIURL,
		"upload_url": c.UploadURL,
		"timeout":    c.Timeout.String(),
		"page_size":  c.PageSize,
	}
}

// FilterConfig contains named filter expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// OutputConfig controls how commands print results
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
