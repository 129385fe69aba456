package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.Type != "sqlite" || cfg.Files.Type != "local" || cfg.Ranker.TopK != 3 || cfg.Notifier.Type != "none" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
store:
  type: postgres
  dsn_env: RESUMES_DB
files:
  type: s3
  s3:
    bucket: cvs
notifier:
  type: amqp
  amqp: {}
ranker:
  top_k: 5
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.DSN != "" {
		t.Fatalf("postgres must not get the sqlite default dsn, got %q", cfg.Store.DSN)
	}
	if cfg.Files.S3.AccessKeyEnv != "S3_ACCESS_KEY" || cfg.Files.S3.SecretKeyEnv != "S3_SECRET_KEY" {
		t.Fatalf("unexpected s3 defaults %+v", cfg.Files.S3)
	}
	if cfg.Notifier.AMQP.URLEnv != "RABBITMQ_URL" || cfg.Notifier.AMQP.Exchange != "match_updates" {
		t.Fatalf("unexpected amqp defaults %+v", cfg.Notifier.AMQP)
	}
	if cfg.Ranker.TopK != 5 || cfg.Summarizer.MaxSentences != 2 || cfg.DownloadDir != "downloads" {
		t.Fatalf("unexpected values %+v", cfg)
	}

	t.Setenv("RESUMES_DB", "postgres://localhost/resumes")
	if got := cfg.Store.ResolveDSN(); got != "postgres://localhost/resumes" {
		t.Fatalf("expected dsn from env, got %q", got)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Ranker.TopK = 7
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Ranker.TopK != 7 || loaded.Store.DSN != cfg.Store.DSN {
		t.Fatalf("unexpected round trip %+v", loaded)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("store: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
