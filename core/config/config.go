package config

import (
	"reflect"
	"strings"

	"patron-import/core/database"
	"patron-import/core/identity"
	"patron-import/core/logger"
	"patron-import/core/storage"
	"patron-import/feature/importer"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Server holds configuration for the HTTP service mode.
type Server struct {
	// Port is the port where the import service will listen.
	Port string `mapstructure:"port" default:"8081"`
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Service holds configuration for the remote identity service.
	Service identity.Config `mapstructure:"service"`
	// Import holds configuration for the reconciliation pipeline.
	Import importer.Config `mapstructure:"import"`
	// Storage holds configuration for the object storage input source.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the optional run journal.
	Database database.Config `mapstructure:"database"`
	// Server holds configuration for the HTTP service mode.
	Server Server `mapstructure:"server"`
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

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVICE_TENANT -> service.tenant)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
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

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
