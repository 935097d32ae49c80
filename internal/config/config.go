// Package config loads the brewpost configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
)

// Config represents the merged brewpost configuration
type Config struct {
	Telegram TelegramConfig `json:"telegram"`
	OpenAI   OpenAIConfig   `json:"openai"`
	Storage  StorageConfig  `json:"storage"`
	Publish  PublishConfig  `json:"publish"`
	Post     PostConfig     `json:"post"`
	Logging  LoggingConfig  `json:"logging"`
}

type TelegramConfig struct {
	BotToken     string  `json:"botToken"`
	AllowedUsers []int64 `json:"allowedUsers"`
}

type OpenAIConfig struct {
	APIKey   string `json:"apiKey"`
	Model    string `json:"model"`    // Vision-capable chat model
	STTModel string `json:"sttModel"` // Whisper model for voice notes
}

type StorageConfig struct {
	Endpoint   string `json:"endpoint"`   // Storage API endpoint
	APIKey     string `json:"apiKey"`     // Service key for uploads
	Bucket     string `json:"bucket"`     // Public bucket for post images
	PublicHost string `json:"publicHost"` // Host used in public URLs: https://{bucket}.{publicHost}/{key}
}

type PublishConfig struct {
	Instagram InstagramConfig `json:"instagram"`
	Facebook  FacebookConfig  `json:"facebook"`
}

// InstagramConfig drives the two-step create-then-publish protocol.
type InstagramConfig struct {
	MediaURL    string `json:"mediaUrl"`   // Media container endpoint
	PublishURL  string `json:"publishUrl"` // Publish-by-creation-id endpoint
	AccessToken string `json:"accessToken"`
}

// FacebookConfig drives the single-step upload-with-caption protocol.
type FacebookConfig struct {
	URL         string `json:"url"`
	AccessToken string `json:"accessToken"`
}

type PostConfig struct {
	CityTag  string `json:"cityTag"`  // Local hashtag seed, e.g. "#Wroclaw"
	Language string `json:"language"` // Copy language for generated posts
}

type LoggingConfig struct {
	Level string `json:"level"` // "debug", "info", "warn", "error"
}

// Defaults returns the built-in configuration values.
func Defaults() *Config {
	return &Config{
		OpenAI: OpenAIConfig{
			Model:    "gpt-4.1",
			STTModel: "whisper-1",
		},
		Post: PostConfig{
			CityTag:  "#kawiarnia",
			Language: "pl",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".brewpost", "brewpost.json")
}

// Load reads configuration from path, merging the file over built-in
// defaults. Secrets absent from the file fall back to environment variables.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No file: run from defaults + environment
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := mergo.Merge(cfg, Defaults()); err != nil {
		return nil, fmt.Errorf("merge defaults: %w", err)
	}

	cfg.applyEnv()

	return cfg, nil
}

// applyEnv fills secrets from the environment when the file leaves them empty.
func (c *Config) applyEnv() {
	if c.Telegram.BotToken == "" {
		c.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_KEY")
	}
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Storage.APIKey == "" {
		c.Storage.APIKey = os.Getenv("STORAGE_API_KEY")
	}
}

// Validate checks the fields required to start the bot.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram bot token not configured")
	}
	if len(c.Telegram.AllowedUsers) == 0 {
		return fmt.Errorf("telegram allow-list is empty")
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai API key not configured")
	}
	if c.Storage.Bucket == "" || c.Storage.PublicHost == "" {
		return fmt.Errorf("storage bucket and publicHost are required")
	}
	return nil
}
