package config

import (
	"fmt"

	"github.com/baotran/docqa-be/types"
	"github.com/spf13/viper"
)

type Config struct {
	Port         string               `mapstructure:"port"`
	AIProvider   string               `mapstructure:"ai_provider"` // "openai" or "gemini"
	AIEndpoint   string               `mapstructure:"ai_endpoint"`
	Model        string               `mapstructure:"model"`
	OpenAIAPIKey string               `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKey []string             `mapstructure:"gemini_api_keys"`
	UploadDir    string               `mapstructure:"upload_dir"`
	Chunking     types.ChunkingConfig `mapstructure:"chunking"`
	Postgres     PostgresConfig       `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"POSTGRES_PASSWORD"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds a lib/pq connection string. The password parameter is omitted
// when empty so local trust-auth setups keep working.
func (c PostgresConfig) DSN() string {
	if c.Password == "" {
		return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Database, c.SSLMode)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("postgres.POSTGRES_PASSWORD", "POSTGRES_PASSWORD")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.Port == "" {
		config.Port = "4000"
	}
	if config.Postgres.SSLMode == "" {
		config.Postgres.SSLMode = "disable"
	}

	return &config, nil
}
