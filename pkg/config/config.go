package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Vector   VectorConfig   `mapstructure:"vector"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Production bool   `mapstructure:"production"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// VectorConfig configures the document vector store.
type VectorConfig struct {
	Path                 string `mapstructure:"path"`
	Collection           string `mapstructure:"collection"`
	EmbeddingDimensions  int    `mapstructure:"embedding_dimensions"`
	DefaultSearchResults int    `mapstructure:"default_search_results"`
	MaxSearchResults     int    `mapstructure:"max_search_results"`
	MaxTextLength        int    `mapstructure:"max_text_length"`
}

var GlobalConfig Config

func Init() error {
	return load("config")
}

// InitTest loads the test configuration used by the _test packages.
func InitTest() error {
	return load("config.test")
}

func load(name string) error {
	// Resolve the config directory relative to the project root so tests
	// running from package directories still find it.
	_, b, _, _ := runtime.Caller(0)
	basepath := filepath.Dir(filepath.Dir(filepath.Dir(b)))

	viper.SetConfigName(name)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(filepath.Join(basepath, "config"))

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := viper.Unmarshal(&GlobalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}
