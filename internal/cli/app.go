package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/interviewer/backend/internal/content"
	"github.com/interviewer/backend/internal/domain/interview"
	"github.com/interviewer/backend/internal/infrastructure/config"
	"github.com/interviewer/backend/internal/logger"
	"github.com/interviewer/backend/internal/metrics"
	"github.com/interviewer/backend/internal/migration"
	"github.com/interviewer/backend/internal/service"
	"github.com/interviewer/backend/internal/store"
)

// App holds the wired dependencies shared by every command.
type App struct {
	Config *config.Config
	Logger *logger.Logger

	Metrics    *metrics.Metrics
	Source     content.Source
	KV         store.KV
	Document   *store.DocumentStore
	Relational *store.SQLiteStore
	Flag       *store.MigrationFlag
	Store      *store.Adapter
	Migration  *migration.Engine
	Interviews *service.InterviewService
}

// NewApp builds the dependency graph from cfg. Nothing is migrated or
// initialized here; the adapter serves from the document store until a
// migration has run.
func NewApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	kv, err := openKV(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
		kv.Close()
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	relational, err := store.OpenSQLite(cfg.SQLitePath, log)
	if err != nil {
		kv.Close()
		return nil, err
	}

	m := metrics.New()
	src := content.NewDirSource(cfg.ContentDir, cfg.ContentFiles, cfg.ContentWorkers, log)
	document := store.NewDocumentStore(kv, src, log)
	flag := store.NewMigrationFlag(kv)
	adapter := store.NewAdapter(flag, document, relational, src, m, log)

	return &App{
		Config:     cfg,
		Logger:     log,
		Metrics:    m,
		Source:     src,
		KV:         kv,
		Document:   document,
		Relational: relational,
		Flag:       flag,
		Store:      adapter,
		Migration:  migration.NewEngine(src, document, relational, flag, m, log),
		Interviews: service.NewInterviewService(adapter, interview.DefaultRandom(), m, log),
	}, nil
}

func openKV(ctx context.Context, cfg *config.Config) (store.KV, error) {
	switch cfg.KVBackend {
	case config.KVMemory:
		return store.NewMemoryKV(), nil
	case config.KVRedis:
		return store.NewRedisKV(ctx, store.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	default:
		return store.NewFileKV(filepath.Join(cfg.DataDir, "kv"))
	}
}

func (a *App) Close() error {
	return errors.Join(a.Relational.Close(), a.KV.Close())
}
