package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type Feed struct {
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type Cache struct {
	Path          string `mapstructure:"path"`
	FreshForHours int    `mapstructure:"fresh_for_hours"`
	MemoMaxItems  int64  `mapstructure:"memo_max_items"`
}

type Scheduler struct {
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	Feed       Feed       `mapstructure:"feed"`
	Cache      Cache      `mapstructure:"cache"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Logging    Logging    `mapstructure:"logging"`
}

// Init reads .env and config.yaml when present, then environment overrides.
func Init() (*AppConfig, error) {
	return load("config.yaml")
}

func load(configFile string) (*AppConfig, error) {
	var cfg AppConfig

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("feed.url", "https://www.bnr.ro/nbrfxrates.xml")
	v.SetDefault("feed.timeout_seconds", 10)
	v.SetDefault("cache.path", "rates_cache.json")
	v.SetDefault("cache.fresh_for_hours", 24)
	v.SetDefault("cache.memo_max_items", 16)
	v.SetDefault("scheduler.refresh_interval_sec", 3600)
	v.SetDefault("logging.level", "info")

	_ = v.BindEnv("http_server.port", "HTTP_PORT")

	// feed env vars
	_ = v.BindEnv("feed.url", "FEED_URL")
	_ = v.BindEnv("feed.timeout_seconds", "FEED_TIMEOUT_SECONDS")

	// cache env vars
	_ = v.BindEnv("cache.path", "CACHE_PATH")
	_ = v.BindEnv("cache.fresh_for_hours", "CACHE_FRESH_FOR_HOURS")
	_ = v.BindEnv("cache.memo_max_items", "CACHE_MEMO_MAX_ITEMS")

	_ = v.BindEnv("scheduler.refresh_interval_sec", "SCHEDULER_REFRESH_INTERVAL_SEC")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
