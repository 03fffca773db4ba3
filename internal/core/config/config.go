package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Redis holds the geocode cache connection.
	Redis RedisConfig `mapstructure:",squash"`

	// Envia holds the rate and geocode API endpoints.
	Envia EnviaConfig `mapstructure:",squash"`

	// Geocodes holds the geocode cache retention policy.
	Geocodes GeocodeConfig `mapstructure:",squash"`

	// Proxy holds the optional outbound proxy used for carrier calls.
	Proxy ProxyConfig `mapstructure:",squash"`
}

// RedisConfig holds the Redis connection string.
type RedisConfig struct {
	// URL has the form redis://[:password@]host[:port][/database].
	URL string `mapstructure:"REDIS_URL" required:"true"`
}

// EnviaConfig holds the carrier rate API settings.
type EnviaConfig struct {
	// APIURL is the production rate API base URL.
	APIURL string `mapstructure:"ENVIA_API_URL" default:"https://api.envia.com"`
	// SandboxAPIURL is used for merchants that enabled sandbox mode.
	SandboxAPIURL string `mapstructure:"ENVIA_SANDBOX_API_URL" default:"https://api-test.envia.com"`
	// GeocodesURL is the postal code lookup base URL.
	GeocodesURL string `mapstructure:"GEOCODES_URL" default:"https://geocodes.envia.com"`
	// CarrierTimeoutSeconds bounds each rate call.
	CarrierTimeoutSeconds int `mapstructure:"CARRIER_TIMEOUT_SECONDS" default:"20"`
	// GeocodeTimeoutSeconds bounds each postal code lookup.
	GeocodeTimeoutSeconds int `mapstructure:"GEOCODE_TIMEOUT_SECONDS" default:"5"`
}

// GeocodeConfig holds the cache sweep settings.
type GeocodeConfig struct {
	// RetentionDays is the age after which cached entries are swept.
	RetentionDays int `mapstructure:"GEOCODE_RETENTION_DAYS" default:"7"`
	// SweepLimit caps deletions per sweep.
	SweepLimit int `mapstructure:"GEOCODE_SWEEP_LIMIT" default:"2000"`
}

// ProxyConfig holds the outbound proxy credentials.
type ProxyConfig struct {
	Enabled  bool   `mapstructure:"PROXY_ENABLED"`
	Hostname string `mapstructure:"PROXY_HOSTNAME"`
	Port     int    `mapstructure:"PROXY_PORT"`
	Username string `mapstructure:"PROXY_USERNAME"`
	Password string `mapstructure:"PROXY_PASSWORD"`
}

// CarrierTimeout returns the rate call timeout as a duration.
func (c EnviaConfig) CarrierTimeout() time.Duration {
	return time.Duration(c.CarrierTimeoutSeconds) * time.Second
}

// GeocodeTimeout returns the postal code lookup timeout as a duration.
func (c EnviaConfig) GeocodeTimeout() time.Duration {
	return time.Duration(c.GeocodeTimeoutSeconds) * time.Second
}

// Retention returns the sweep retention window.
func (c GeocodeConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	bindTags(v, &config)

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindTags walks the struct binding env keys and registering defaults in Viper.
func bindTags(v *viper.Viper, config interface{}) {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			bindTags(v, val.Field(i).Addr().Interface())
			continue
		}

		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}

		_ = v.BindEnv(key)

		if def := field.Tag.Get("default"); def != "" {
			v.SetDefault(key, def)
		}
	}
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && val.Field(i).IsZero() {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}
