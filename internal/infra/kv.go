// Package infra opens the configured storage backend and datasets.
package infra

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/config"
	"github.com/aliskhannn/quizzible/internal/domain/entities"
	"github.com/aliskhannn/quizzible/internal/infra/postgres"
	"github.com/aliskhannn/quizzible/internal/infra/sqlite"
	"github.com/aliskhannn/quizzible/internal/repository"
)

// OpenKV opens the backend named by cfg.Storage.Driver. The returned func
// releases it.
func OpenKV(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.KVStore, func(), error) {
	switch cfg.Storage.Driver {
	case "postgres":
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}

		kv, err := postgres.NewKVStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}

		logger.Info("using postgres storage")
		return kv, pool.Close, nil

	default:
		kv, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}

		logger.Info("using sqlite storage", zap.String("path", cfg.Storage.SQLitePath))
		return kv, func() {
			if err := kv.Close(); err != nil {
				logger.Warn("failed to close sqlite", zap.Error(err))
			}
		}, nil
	}
}

// LoadData reads the bundled datasets. A dataset that fails to load is logged
// and left empty.
func LoadData(cfg *config.Config, logger *zap.Logger) ([]entities.Question, []entities.Verse) {
	questions, err := repository.LoadQuestions(cfg.Data.QuestionsPath)
	if err != nil {
		logger.Error("failed to load questions", zap.String("path", cfg.Data.QuestionsPath), zap.Error(err))
		questions = nil
	}

	verses, err := repository.LoadVerses(cfg.Data.VersesPath)
	if err != nil {
		logger.Error("failed to load verses", zap.String("path", cfg.Data.VersesPath), zap.Error(err))
		verses = nil
	}

	logger.Info("datasets loaded",
		zap.Int("questions", len(questions)),
		zap.Int("verses", len(verses)),
	)

	return questions, verses
}
