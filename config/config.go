package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	ServerName  string         `mapstructure:"server_name" yaml:"server_name"`
	Environment string         `mapstructure:"environment" yaml:"environment"`
	Port        int            `mapstructure:"port" yaml:"port"`
	Gemini      GeminiConfig   `mapstructure:"gemini" yaml:"gemini"`
	Storage     StorageConfig  `mapstructure:"storage" yaml:"storage"`
	Postgres    PostgresConfig `mapstructure:"postgres" yaml:"postgres"`
	Redis       RedisConfig    `mapstructure:"redis" yaml:"redis"`
}

type GeminiConfig struct {
	APIKey      string `mapstructure:"api_key" yaml:"api_key"`
	ChatModel   string `mapstructure:"chat_model" yaml:"chat_model"`
	VisionModel string `mapstructure:"vision_model" yaml:"vision_model"`
	ImageModel  string `mapstructure:"image_model" yaml:"image_model"`
}

type StorageConfig struct {
	// Driver selects the message store: memory (default), postgres, redis.
	Driver    string `mapstructure:"driver" yaml:"driver"`
	UploadDir string `mapstructure:"upload_dir" yaml:"upload_dir"`
}

type PostgresConfig struct {
	Address  string        `mapstructure:"address" yaml:"address"`
	Port     int           `mapstructure:"port" yaml:"port"`
	User     string        `mapstructure:"user" yaml:"user"`
	Password string        `mapstructure:"password" yaml:"password"`
	DBName   string        `mapstructure:"db_name" yaml:"db_name"`
	MaxIdle  int           `mapstructure:"max_idle" yaml:"max_idle"`
	MaxOpen  int           `mapstructure:"max_open" yaml:"max_open"`
	MaxLife  time.Duration `mapstructure:"max_life" yaml:"max_life"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address" yaml:"address"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Password string `mapstructure:"password" yaml:"password"`
	Database int    `mapstructure:"database" yaml:"database"`
}

func LoadConfig() (*AppConfig, error) {
	var config AppConfig

	viper.SetConfigFile("config/config.yml")
	viper.SetConfigType("yaml")

	viper.SetDefault("server_name", "gemini-chat")
	viper.SetDefault("environment", "development")
	viper.SetDefault("port", 8080)
	viper.SetDefault("gemini.chat_model", "gemini-2.0-flash")
	viper.SetDefault("gemini.vision_model", "gemini-2.0-flash")
	viper.SetDefault("gemini.image_model", "gemini-2.0-flash-preview-image-generation")
	viper.SetDefault("storage.driver", "memory")
	viper.SetDefault("storage.upload_dir", "uploads")
	viper.SetDefault("postgres.address", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("redis.address", "localhost")
	viper.SetDefault("redis.port", 6379)

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")

	// A missing config file is fine; defaults plus env cover it.
	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return &config, err
	}
	if err := viper.Unmarshal(&config); err != nil {
		return &config, err
	}
	return &config, nil
}
