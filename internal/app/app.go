// Package app assembles the résumé matcher from configuration.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"resumematch/internal/config"
	"resumematch/internal/database"
	"resumematch/internal/domain"
	"resumematch/internal/extract"
	"resumematch/internal/files"
	"resumematch/internal/notify"
	"resumematch/internal/ranking"
	"resumematch/internal/service"
	"resumematch/internal/store/memory"
	"resumematch/internal/store/sqlstore"
	"resumematch/internal/summarizer"
)

// App holds the assembled service and whatever must be released with it.
type App struct {
	Config  *config.AppConfig
	Service *service.MatchService
	closers []io.Closer
}

// Build wires every component named in cfg.
func Build(ctx context.Context, cfg *config.AppConfig) (*App, error) {
	a := &App{Config: cfg}

	var st domain.ResumeStore
	switch cfg.Store.Type {
	case "sqlite", "sqlite3", "postgres", "":
		driver := database.DriverSQLite
		switch cfg.Store.Type {
		case "sqlite3":
			driver = database.DriverSQLite3
		case "postgres":
			driver = database.DriverPostgres
		}
		dsn := cfg.Store.ResolveDSN()
		if dsn == "" {
			return nil, fmt.Errorf("store %s: dsn missing", cfg.Store.Type)
		}
		s, err := sqlstore.Open(ctx, driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		a.closers = append(a.closers, s)
		st = s
	case "memory":
		st = memory.NewStorage()
	default:
		return nil, fmt.Errorf("unknown store: %s", cfg.Store.Type)
	}

	var fs domain.FileStore
	switch cfg.Files.Type {
	case "local", "":
		s, err := files.NewAFSStore(cfg.Files.Dir)
		if err != nil {
			a.Close()
			return nil, err
		}
		fs = s
	case "s3":
		if cfg.Files.S3 == nil {
			a.Close()
			return nil, fmt.Errorf("s3 files config missing")
		}
		s3cfg := cfg.Files.S3
		s, err := files.NewS3Store(ctx, files.S3Config{
			Bucket:    s3cfg.Bucket,
			Prefix:    s3cfg.Prefix,
			Region:    s3cfg.Region,
			Endpoint:  s3cfg.Endpoint,
			AccountID: getenv(s3cfg.AccountIDEnv),
			AccessKey: getenv(s3cfg.AccessKeyEnv),
			SecretKey: getenv(s3cfg.SecretKeyEnv),
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("s3 files init failed: %w", err)
		}
		fs = s
	default:
		a.Close()
		return nil, fmt.Errorf("unknown files store: %s", cfg.Files.Type)
	}

	var rk domain.Ranker
	switch cfg.Ranker.Type {
	case "tfidf", "":
		rk = ranking.NewTFIDFRanker()
	default:
		a.Close()
		return nil, fmt.Errorf("unknown ranker: %s", cfg.Ranker.Type)
	}

	var sum domain.Summarizer
	switch cfg.Summarizer.Type {
	case "frequency", "":
		sum = summarizer.NewFrequencySummarizer()
	case "none":
	default:
		a.Close()
		return nil, fmt.Errorf("unknown summarizer: %s", cfg.Summarizer.Type)
	}

	var nt domain.Notifier
	switch cfg.Notifier.Type {
	case "none", "":
		nt = notify.Noop{}
	case "amqp":
		if cfg.Notifier.AMQP == nil {
			a.Close()
			return nil, fmt.Errorf("amqp notifier config missing")
		}
		url := getenv(cfg.Notifier.AMQP.URLEnv)
		if url == "" {
			a.Close()
			return nil, fmt.Errorf("amqp notifier: %s is not set", cfg.Notifier.AMQP.URLEnv)
		}
		p, err := notify.NewAMQPPublisher(url, cfg.Notifier.AMQP.Exchange)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, p)
		nt = p
	default:
		a.Close()
		return nil, fmt.Errorf("unknown notifier: %s", cfg.Notifier.Type)
	}

	a.Service = service.NewMatchService(st, fs, extract.New(), rk, sum, nt, service.Options{
		Limit:               cfg.Ranker.TopK,
		SummaryMaxSentences: cfg.Summarizer.MaxSentences,
	})
	return a, nil
}

// Close releases the store and notifier connections.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			log.Printf("close: %v", err)
			if first == nil {
				first = err
			}
		}
	}
	a.closers = nil
	return first
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
