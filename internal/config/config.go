package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Settings is the flat merged configuration record the rest of the
// program consumes. Credentials are never logged.
type Settings struct {
	OpenAIAPIKey        string `toml:"OPENAI_API_KEY"`
	NotionAPIKey        string `toml:"NOTION_API_KEY"`
	NotionDatabaseID    string `toml:"NOTION_DATABASE_ID"`
	Model               string `toml:"LLM_MODEL"`
	MaxCompletionTokens int    `toml:"OPENAI_MAX_COMPLETION_TOKENS"`
	LogCalls            bool   `toml:"LOG_CALLS"`
}

// DefaultSettings returns the defaults applied before any file or
// environment value is merged in.
func DefaultSettings() Settings {
	return Settings{
		Model:               "gpt-5-mini",
		MaxCompletionTokens: 6000,
	}
}

// ConfigPath returns the default config file location,
// ~/.notionplan/config.toml.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".notionplan", "config.toml"), nil
}

// Load builds Settings by merging, in increasing precedence: defaults,
// the optional TOML config file, a .env file in the working directory,
// and process environment variables.
func Load(configFile string) (Settings, error) {
	cfg := DefaultSettings()

	if configFile == "" {
		if p, err := ConfigPath(); err == nil {
			configFile = p
		}
	}
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing %s: %w", configFile, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("reading %s: %w", configFile, err)
		}
	}

	// godotenv only sets variables not already present, so process env
	// keeps precedence over .env.
	_ = godotenv.Load()

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Settings) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIAPIKey = v
	}
	if v := os.Getenv("NOTION_API_KEY"); v != "" {
		cfg.NotionAPIKey = v
	}
	if v := os.Getenv("NOTION_DATABASE_ID"); v != "" {
		cfg.NotionDatabaseID = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("OPENAI_MAX_COMPLETION_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxCompletionTokens = n
		}
	}
	if v := os.Getenv("NOTIONPLAN_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
}

// Validate checks that every required credential is present and
// reports exactly which ones are missing.
func (s Settings) Validate() error {
	var missing []string
	if s.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if s.NotionAPIKey == "" {
		missing = append(missing, "NOTION_API_KEY")
	}
	if s.NotionDatabaseID == "" {
		missing = append(missing, "NOTION_DATABASE_ID")
	}
	if len(missing) > 0 {
		return &MissingConfigError{Missing: missing}
	}
	return nil
}

// MissingConfigError lists the required settings that are absent.
type MissingConfigError struct {
	Missing []string
}

func (e *MissingConfigError) Error() string {
	msg := "missing required configuration: "
	for i, k := range e.Missing {
		if i > 0 {
			msg += ", "
		}
		msg += k
	}
	return msg
}
