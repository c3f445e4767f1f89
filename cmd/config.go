package cmd

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// Config holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type Config struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// HTTPPort is the port where the API server will listen.
	HTTPPort int `mapstructure:"HTTP_PORT" default:"8080"`

	// Database holds the Postgres connection details.
	Database DatabaseConfig `mapstructure:",squash"`

	// Redis holds the quote cache connection. Optional; an empty URL
	// disables rate caching.
	Redis RedisConfig `mapstructure:",squash"`

	// Jobs holds the background job schedules.
	Jobs JobsConfig `mapstructure:",squash"`
}

// DatabaseConfig holds database connection details.
type DatabaseConfig struct {
	// Host is the database server hostname.
	Host string `mapstructure:"DB_HOST" default:"localhost"`
	// Port is the database connection port.
	Port int `mapstructure:"DB_PORT" default:"5432"`
	// User is the database role the service connects as.
	User string `mapstructure:"DB_USER" required:"true"`
	// Password authenticates the database role.
	Password string `mapstructure:"DB_PASSWORD" required:"true"`
	// Name is the database to connect to.
	Name string `mapstructure:"DB_NAME" required:"true"`
	// SSLMode controls transport security towards Postgres.
	SSLMode string `mapstructure:"DB_SSLMODE" default:"disable"`
}

// DSN renders the GORM Postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// RedisConfig holds the rate cache connection details.
type RedisConfig struct {
	// URL is a redis:// connection string. Empty disables the cache.
	URL string `mapstructure:"REDIS_URL"`
}

// JobsConfig holds the cron schedules for the background jobs.
// Expressions use the six-field form with a seconds column.
type JobsConfig struct {
	// TrackingSyncSchedule drives the tracking sweep.
	TrackingSyncSchedule string `mapstructure:"TRACKING_SYNC_SCHEDULE" default:"0 */5 * * * *"`
	// CredentialCheckSchedule drives the credential verification sweep.
	CredentialCheckSchedule string `mapstructure:"CREDENTIAL_CHECK_SCHEDULE" default:"0 0 * * * *"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*Config, error) {
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

	var config Config

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
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

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
