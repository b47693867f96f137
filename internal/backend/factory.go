package backend

import (
	"context"
	"fmt"
	"log/slog"

	"gastos/internal/store/file"
	"gastos/internal/store/memory"
	"gastos/internal/store/sqlite"
)

// Factory creates stores based on configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// CreateBackend builds the store named by config.Type.
func (f *Factory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case MemoryBackend:
		return f.createMemoryBackend()
	case FileBackend:
		return f.createFileBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *Factory) createMemoryBackend() (*Result, error) {
	s := memory.New()
	f.logger.Info("initialized memory backend")
	return &Result{Store: s, Cleanup: s.Close}, nil
}

func (f *Factory) createFileBackend(config Config) (*Result, error) {
	s, err := file.New(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file backend: %w", err)
	}
	f.logger.Info("initialized file backend", "path", config.FilePath)
	return &Result{Store: s, Cleanup: s.Close}, nil
}

func (f *Factory) createSQLiteBackend(config Config) (*Result, error) {
	s, err := sqlite.New(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sqlite backend: %w", err)
	}
	f.logger.Info("initialized sqlite backend", "db_path", config.SQLiteDBPath)
	return &Result{Store: s, Cleanup: s.Close}, nil
}
