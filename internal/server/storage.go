package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/sakif/itembox/internal/config"
	"github.com/sakif/itembox/internal/repository"
	"github.com/sakif/itembox/internal/repository/collection"
	"github.com/sakif/itembox/internal/repository/jsonfile"
	"github.com/sakif/itembox/internal/repository/redisdoc"
	"github.com/sakif/itembox/internal/repository/sqlite"
)

// store is an opened backend plus whatever must be closed with it.
type store struct {
	repo     repository.ItemRepository
	closers  []func() error
	describe string
}

func (s *store) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// openRepository builds the ItemRepository for cfg.Driver.
//
//	file   → collection over a JSON file
//	redis  → collection over one Redis key
//	sqlite → row store
func openRepository(cfg config.StorageConfig, logger *slog.Logger) (*store, error) {
	switch cfg.Driver {
	case config.DriverFile, "":
		f, err := jsonfile.New(cfg.Path)
		if err != nil {
			return nil, err
		}
		return &store{
			repo:     collection.New(f),
			describe: "file:" + f.Path(),
		}, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis: ping %s: %w", cfg.RedisAddr, err)
		}

		doc := redisdoc.New(client, cfg.RedisKey)
		return &store{
			repo:     collection.New(doc),
			closers:  []func() error{client.Close},
			describe: fmt.Sprintf("redis:%s/%d", cfg.RedisAddr, cfg.RedisDB),
		}, nil

	case config.DriverSQLite:
		if cfg.SQLitePath != ":memory:" {
			dir := filepath.Dir(cfg.SQLitePath)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("sqlite: creating directory %s: %w", dir, err)
			}
		}
		db, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Debug("sqlite migrations applied", slog.String("path", cfg.SQLitePath))
		return &store{
			repo:     db,
			closers:  []func() error{db.Close},
			describe: "sqlite:" + cfg.SQLitePath,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
