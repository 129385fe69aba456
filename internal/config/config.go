package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StoreConfig selects the résumé table back-end.
type StoreConfig struct {
	Type   string `yaml:"type"`
	DSN    string `yaml:"dsn,omitempty"`
	DSNEnv string `yaml:"dsn_env,omitempty"`
}

// S3Config locates an S3 or Cloudflare R2 bucket. Credentials come from the named env vars.
type S3Config struct {
	Bucket       string `yaml:"bucket"`
	Prefix       string `yaml:"prefix,omitempty"`
	Region       string `yaml:"region,omitempty"`
	Endpoint     string `yaml:"endpoint,omitempty"`
	AccountIDEnv string `yaml:"account_id_env,omitempty"`
	AccessKeyEnv string `yaml:"access_key_env,omitempty"`
	SecretKeyEnv string `yaml:"secret_key_env,omitempty"`
}

// FilesConfig selects where original résumé files are kept.
type FilesConfig struct {
	Type string    `yaml:"type"`
	Dir  string    `yaml:"dir,omitempty"`
	S3   *S3Config `yaml:"s3,omitempty"`
}

// RankerConfig selects and configures the relevance ranker.
type RankerConfig struct {
	Type string `yaml:"type"`
	TopK int    `yaml:"top_k"`
}

// SummarizerConfig selects and configures the summarizer.
type SummarizerConfig struct {
	Type         string `yaml:"type"`
	MaxSentences int    `yaml:"max_sentences"`
}

// AMQPConfig contains connection details for the match event broker.
type AMQPConfig struct {
	URLEnv   string `yaml:"url_env"`
	Exchange string `yaml:"exchange"`
}

// NotifierConfig selects where match events go.
type NotifierConfig struct {
	Type string      `yaml:"type"`
	AMQP *AMQPConfig `yaml:"amqp,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Store       StoreConfig      `yaml:"store"`
	Files       FilesConfig      `yaml:"files"`
	Ranker      RankerConfig     `yaml:"ranker"`
	Summarizer  SummarizerConfig `yaml:"summarizer"`
	Notifier    NotifierConfig   `yaml:"notifier"`
	DownloadDir string           `yaml:"download_dir"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/resumematch/config.yaml.
// If neither exists, it writes defaults to ~/.config/resumematch/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ResolveDSN returns the store DSN, preferring the configured environment variable.
func (c StoreConfig) ResolveDSN() string {
	if c.DSNEnv != "" {
		if v := os.Getenv(c.DSNEnv); v != "" {
			return v
		}
	}
	return c.DSN
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "resumematch", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Store:      StoreConfig{Type: "sqlite", DSN: filepath.Join("database", "resumes.db"), DSNEnv: "DB_URL"},
		Files:      FilesConfig{Type: "local", Dir: "resumes"},
		Ranker:     RankerConfig{Type: "tfidf", TopK: 3},
		Summarizer: SummarizerConfig{Type: "frequency", MaxSentences: 2},
		Notifier:   NotifierConfig{Type: "none"},
	}
	cfg.DownloadDir = "downloads"
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Store.Type == "" {
		cfg.Store.Type = def.Store.Type
	}
	if (cfg.Store.Type == "sqlite" || cfg.Store.Type == "sqlite3") && cfg.Store.DSN == "" {
		cfg.Store.DSN = def.Store.DSN
	}
	if cfg.Files.Type == "" {
		cfg.Files.Type = def.Files.Type
	}
	if cfg.Files.Type == "local" && cfg.Files.Dir == "" {
		cfg.Files.Dir = def.Files.Dir
	}
	if cfg.Files.Type == "s3" && cfg.Files.S3 != nil {
		if cfg.Files.S3.AccessKeyEnv == "" {
			cfg.Files.S3.AccessKeyEnv = "S3_ACCESS_KEY"
		}
		if cfg.Files.S3.SecretKeyEnv == "" {
			cfg.Files.S3.SecretKeyEnv = "S3_SECRET_KEY"
		}
	}
	if cfg.Ranker.TopK <= 0 {
		cfg.Ranker.TopK = def.Ranker.TopK
	}
	if cfg.Summarizer.MaxSentences <= 0 {
		cfg.Summarizer.MaxSentences = def.Summarizer.MaxSentences
	}
	if cfg.Notifier.Type == "amqp" && cfg.Notifier.AMQP != nil {
		if cfg.Notifier.AMQP.URLEnv == "" {
			cfg.Notifier.AMQP.URLEnv = "RABBITMQ_URL"
		}
		if cfg.Notifier.AMQP.Exchange == "" {
			cfg.Notifier.AMQP.Exchange = "match_updates"
		}
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = def.DownloadDir
	}
}
