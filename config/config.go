package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/s0up4200/calameo/calameo"
)

// EnvPrefix prefixes environment overrides, e.g. CALAMEO_CALAMEO_SECRET
const EnvPrefix = "CALAMEO"

// Load loads the configuration from file
func Load(configPath string) (*Config, error) {
	return LoadFs(afero.NewOsFs(), configPath)
}

// LoadFs loads the configuration from fs. Without an explicit path a missing
// config file is not an error: credentials may come from the environment.
func LoadFs(fs afero.Fs, configPath string) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)

	setDefaults(v)
	bindEnv(v)

	switch {
	case strings.EqualFold(filepath.Ext(configPath), ".xml"):
		// viper has no XML codec; the file is resolved as a settings source
		settings, err := FromFile(configPath).Resolve(fs)
		if err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		if err := v.MergeConfigMap(map[string]any{"calameo": settings.section()}); err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	case configPath != "":
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	default:
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".calameo"))
		}
		v.AddConfigPath("/etc/calameo/")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Calameo defaults
	v.SetDefault("calameo.api_url", calameo.DefaultAPIURL)
	v.SetDefault("calameo.upload_url", calameo.DefaultUploadURL)
	v.SetDefault("calameo.timeout", "30s")
	v.SetDefault("calameo.page_size", calameo.MaxPageSize)

	// Output defaults
	v.SetDefault("output.format", "table")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults are only seen by Unmarshal once bound
	_ = v.BindEnv("calameo.api_key")
	_ = v.BindEnv("calameo.secret")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	var result *multierror.Error

	if err := cfg.Calameo.Credentials().Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	if cfg.Calameo.PageSize < 1 || cfg.Calameo.PageSize > calameo.MaxPageSize {
		result = multierror.Append(result, fmt.Errorf("calameo.page_size must be between 1 and %d", calameo.MaxPageSize))
	}

	if cfg.Calameo.Timeout < 0 {
		result = multierror.Append(result, fmt.Errorf("calameo.timeout must not be negative"))
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		result = multierror.Append(result, fmt.Errorf("invalid logging level: %s", cfg.Logging.Level))
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		result = multierror.Append(result, fmt.Errorf("invalid logging format: %s", cfg.Logging.Format))
	}

	if cfg.Output.Format != "table" && cfg.Output.Format != "json" {
		result = multierror.Append(result, fmt.Errorf("invalid output format: %s", cfg.Output.Format))
	}

	return result.ErrorOrNil()
}
