package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       App       `mapstructure:"app"`
	Data      Data      `mapstructure:"data"`
	Dashboard Dashboard `mapstructure:"dashboard"`
	Server    Server    `mapstructure:"server"`
}

// App holds general application configuration
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// Data holds input file configuration
type Data struct {
	Path    string `mapstructure:"path"`    // Path to the analyzed article CSV
	Catalog string `mapstructure:"catalog"` // Optional YAML topic catalog override
}

// Dashboard holds presentation configuration shared by the TUI,
// the web dashboard, and the report command.
type Dashboard struct {
	PreviewLimit   int `mapstructure:"preview_limit"`   // Max rows in the article preview table
	WordCloudLimit int `mapstructure:"wordcloud_limit"` // Max words in the word cloud
}

// Server holds HTTP server configuration
type Server struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORS         CORS          `mapstructure:"cors"`
}

// CORS holds cross-origin configuration for the JSON API
type CORS struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}

	// Configure viper
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".pubscope")
		viper.SetConfigType("yaml")
	}

	setDefaults()

	// Enable automatic environment variable reading
	viper.SetEnvPrefix("PUBSCOPE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the cached configuration. Used by tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	// Data defaults
	viper.SetDefault("data.path", "data/analyzed_antibiotic_resistance_data.csv")
	viper.SetDefault("data.catalog", "")

	// Dashboard defaults
	viper.SetDefault("dashboard.preview_limit", 100)
	viper.SetDefault("dashboard.wordcloud_limit", 60)

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.cors.enabled", false)
	viper.SetDefault("server.cors.allowed_origins", []string{"*"})
}

// validateConfig checks that loaded values are usable
func validateConfig(config *Config) error {
	if config.Data.Path == "" {
		return fmt.Errorf("data.path must not be empty")
	}
	if config.Dashboard.PreviewLimit <= 0 {
		return fmt.Errorf("dashboard.preview_limit must be positive, got %d", config.Dashboard.PreviewLimit)
	}
	if config.Dashboard.WordCloudLimit <= 0 {
		return fmt.Errorf("dashboard.wordcloud_limit must be positive, got %d", config.Dashboard.WordCloudLimit)
	}
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", config.Server.Port)
	}
	return nil
}
