package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khanhvu/devconnect/internal/config"
	"github.com/khanhvu/devconnect/pkg/apperror"
	"github.com/khanhvu/devconnect/pkg/logger"
)

const pgUniqueViolation = "23505"

func NewPostgresPool(cfg config.Config, log logger.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("cannot create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database failed: %w", err)
	}

	log.Info("Connected to PostgreSQL.")
	return pool, nil
}

// mapStoreError folds low-level store failures into the error taxonomy:
// timeouts and dropped connections become Unavailable, everything else
// Internal. Not-found and conflict cases are handled at the call sites
// where the context is known.
func mapStoreError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || pgconn.Timeout(err) {
		return apperror.NewUnavailable(op, err)
	}
	return apperror.NewInternal(op, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
