package config

import (
	"fmt"
	"reflect"
	"strings"

	"bucket-sync/core/database"
	"bucket-sync/core/logger"
	"bucket-sync/core/server"
	"bucket-sync/core/storage"
	"bucket-sync/feature/sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, R2, MinIO).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the optional history database.
	Database database.Config `mapstructure:"database"`
	// Sync holds defaults for sync passes.
	Sync sync.Config `mapstructure:"sync"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// 2. Register every key with its default so AutomaticEnv can see it
	bindValues(v, Config{}, "")

	// 3. Map environment variables to nested keys (e.g. STORAGE_ACCESS_KEY -> storage.access_key)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings that cannot work.
func (c *Config) Validate() error {
	if c.Storage.Driver != "" && !c.Storage.IsValidDriver() {
		return fmt.Errorf("storage.driver must be %q or %q, got %q", storage.DriverMinio, storage.DriverS3, c.Storage.Driver)
	}
	if c.Database.Enabled {
		switch c.Database.Driver {
		case database.DriverSQLite, database.DriverMySQL:
		default:
			return fmt.Errorf("database.driver must be %q or %q, got %q", database.DriverSQLite, database.DriverMySQL, c.Database.Driver)
		}
	}
	if c.Sync.Workers < 0 {
		return fmt.Errorf("sync.workers must not be negative, got %d", c.Sync.Workers)
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
