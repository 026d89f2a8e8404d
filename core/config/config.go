package config

import (
	"reflect"
	"strings"

	"geotree/core/database"
	"geotree/core/logger"
	"geotree/core/server"
	"geotree/core/storage"
	"geotree/core/taxonomy"
	"geotree/feature/country"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations owned by the packages that use them.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage used for snapshots.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the taxonomy database.
	Database database.Config `mapstructure:"database"`
	// Taxonomy holds the vocabulary and language settings.
	Taxonomy taxonomy.Config `mapstructure:"taxonomy"`
	// Source holds the remote country dataset settings.
	Source country.SourceConfig `mapstructure:"source"`
	// Snapshot controls archiving of fetched documents.
	Snapshot country.SnapshotConfig `mapstructure:"snapshot"`
}

// LoadConfig loads configuration from environment variables and an optional .env file in path.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// A missing .env is normal in production.
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// SOURCE_TIMEOUT_SECONDS -> source.timeout_seconds
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers every mapstructure key with its
// `default` tag value, so AutomaticEnv can resolve it.
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

		// Always set, even if empty, to register the key for AutomaticEnv.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
