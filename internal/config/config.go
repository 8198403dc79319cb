package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Finnhub  FinnhubConfig  `yaml:"finnhub"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	Web      WebConfig      `yaml:"web"`
	Telegram TelegramConfig `yaml:"telegram"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type FinnhubConfig struct {
	Token          string `yaml:"token"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type RefreshConfig struct {
	Interval      string `yaml:"interval"`
	QuoteDelayMs  int    `yaml:"quote_delay_ms"`
	CandleDelayMs int    `yaml:"candle_delay_ms"`
	NewsDelayMs   int    `yaml:"news_delay_ms"`
}

type WebConfig struct {
	Port int `yaml:"port"`
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config with defaults applied and no file loaded.
// The dashboard can run without a config file: with no Finnhub token
// every quote request fails and the price cache degrades to simulation.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	if cfg.Finnhub.Token == "" {
		cfg.Finnhub.Token = os.Getenv("FINNHUB_TOKEN")
	}
	if cfg.Finnhub.BaseURL == "" {
		cfg.Finnhub.BaseURL = "https://finnhub.io/api/v1"
	}
	if cfg.Finnhub.TimeoutSeconds == 0 {
		cfg.Finnhub.TimeoutSeconds = 10
	}
	if cfg.Refresh.Interval == "" {
		cfg.Refresh.Interval = "30s"
	}
	if cfg.Refresh.QuoteDelayMs == 0 {
		cfg.Refresh.QuoteDelayMs = 250
	}
	if cfg.Refresh.CandleDelayMs == 0 {
		cfg.Refresh.CandleDelayMs = 1100
	}
	if cfg.Refresh.NewsDelayMs == 0 {
		cfg.Refresh.NewsDelayMs = 400
	}
	if cfg.Web.Port == 0 {
		cfg.Web.Port = 8080
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Refresh.Interval); err != nil {
		return fmt.Errorf("invalid refresh.interval %q: %w", c.Refresh.Interval, err)
	}
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == 0 {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}
	return nil
}

func (c *Config) RefreshInterval() time.Duration {
	d, _ := time.ParseDuration(c.Refresh.Interval)
	return d
}

func (c *Config) QuoteDelay() time.Duration {
	return time.Duration(c.Refresh.QuoteDelayMs) * time.Millisecond
}

func (c *Config) CandleDelay() time.Duration {
	return time.Duration(c.Refresh.CandleDelayMs) * time.Millisecond
}

func (c *Config) NewsDelay() time.Duration {
	return time.Duration(c.Refresh.NewsDelayMs) * time.Millisecond
}

func (c *Config) FinnhubTimeout() time.Duration {
	return time.Duration(c.Finnhub.TimeoutSeconds) * time.Second
}
