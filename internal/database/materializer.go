package database

import (
	"context"
	"errors"
	"fmt"
	"os"

	"test-extractor/internal/domain"
	"test-extractor/internal/repository"

	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Materializer builds a fresh SQLite file from a script.
type Materializer struct {
	logger *zap.Logger
}

func NewMaterializer(logger *zap.Logger) *Materializer {
	return &Materializer{logger: logger}
}

var _ domain.Materializer = (*Materializer)(nil)

// Materialize deletes any database at dbPath and replays the whole script into a new one
// inside a single transaction. A constraint violation is reported as an integrity error;
// the file is then removed so no half-loaded database is left behind. The error reaches
// make_db, which logs it and exits with status 1 instead of reporting the run as finished.
func (m *Materializer) Materialize(ctx context.Context, scriptPath, dbPath string) error {
	m.logger.Info("Creating sqlite3 database binary file", zap.String("path", dbPath))

	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read script %s: %w", scriptPath, err)
	}

	if err := removeIfExists(dbPath); err != nil {
		return err
	}

	db, err := NewSQLiteDB(dbPath)
	if err != nil {
		return err
	}

	repo := repository.NewContentDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db, m.logger)
	err = txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return repo.ExecScript(txCtx, string(script))
	})
	if closeErr := db.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("failed to close database %s: %w", dbPath, closeErr)
	}
	if err == nil {
		return nil
	}

	if isConstraintViolation(err) {
		m.logger.Error("Error", zap.Error(err))
		if rmErr := removeIfExists(dbPath); rmErr != nil {
			m.logger.Warn("Failed to remove database after integrity violation", zap.Error(rmErr))
		}
		return domain.NewIntegrityViolationError(err)
	}
	return fmt.Errorf("failed to materialize %s: %w", dbPath, err)
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove existing database %s: %w", path, err)
	}
	return nil
}

// isConstraintViolation matches SQLITE_CONSTRAINT and all of its extended codes.
func isConstraintViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}
