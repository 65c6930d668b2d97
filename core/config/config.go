package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"city-comparison/core/database"
	"city-comparison/core/join"
	"city-comparison/core/loader"
	"city-comparison/core/logger"
	"city-comparison/core/sink"
	"city-comparison/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full configuration of a city-comparison run. Each section is
// owned by the package it configures.
type Config struct {
	Log      logger.Config   `mapstructure:"log"`
	Join     join.Config     `mapstructure:"join"`
	Sources  loader.Config   `mapstructure:"sources"`
	Output   sink.Config     `mapstructure:"output"`
	Storage  storage.Config  `mapstructure:"storage"`
	Database database.Config `mapstructure:"database"`
}

// LoadConfig reads dir/.env (when present) into the environment, then builds
// the configuration from environment variables over the `default` tags.
// A key such as join.strict_matching is read from JOIN_STRICT_MATCHING.
func LoadConfig(dir string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	registerDefaults(v, reflect.TypeOf(Config{}), "")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return &cfg, nil
}

// registerDefaults walks the mapstructure tags of t and sets every leaf key's
// default. Keys without a default are still registered, since AutomaticEnv
// only resolves keys viper knows about during Unmarshal.
func registerDefaults(v *viper.Viper, t reflect.Type, prefix string) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for i := range t.NumField() {
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
			registerDefaults(v, field.Type, key)
			continue
		}
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
