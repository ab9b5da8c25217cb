// Package wire provides dependency injection for the habits application.
// A Container owns the single habit store of a process and the services and
// adapters built on it.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/habits/internal/adapters/cli"
	"github.com/example/habits/internal/adapters/memory"
	"github.com/example/habits/internal/adapters/sqlite"
	"github.com/example/habits/internal/app"
	"github.com/example/habits/internal/config"
	"github.com/example/habits/internal/db"
	"github.com/example/habits/internal/ports/primary"
	"github.com/example/habits/internal/ports/secondary"
)

// Container holds the services for one session.
type Container struct {
	cfg    *config.Config
	logger *zap.Logger

	once         sync.Once
	initErr      error
	database     *sql.DB
	habitService primary.HabitService
}

// New creates a container. Services are built on first use.
func New(cfg *config.Config, logger *zap.Logger) *Container {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Container{cfg: cfg, logger: logger}
}

// HabitService returns the singleton HabitService instance.
func (c *Container) HabitService() (primary.HabitService, error) {
	c.once.Do(c.initServices)
	return c.habitService, c.initErr
}

// HabitAdapter returns a new HabitAdapter writing to the given output.
// Each call creates a new adapter (adapters are stateless translators).
func (c *Container) HabitAdapter(out io.Writer) (*cliadapter.HabitAdapter, error) {
	service, err := c.HabitService()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewHabitAdapter(service, out, c.cfg.UI.Color), nil
}

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Close releases the store. Habits do not outlive the container.
func (c *Container) Close() error {
	_ = c.logger.Sync()
	if c.database != nil {
		return c.database.Close()
	}
	return nil
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func (c *Container) initServices() {
	habitRepo, err := c.habitRepository()
	if err != nil {
		c.initErr = err
		return
	}

	c.habitService = app.NewHabitService(habitRepo, c.logger.Named("store"),
		app.WithNonPositiveFrequency(c.cfg.Habits.AllowNonPositiveFrequency),
	)

	c.logger.Debug("habit store ready", zap.String("backend", c.cfg.Store.Backend))
}

func (c *Container) habitRepository() (secondary.HabitRepository, error) {
	switch c.cfg.Store.Backend {
	case config.BackendMemory:
		return memory.NewHabitRepository(), nil
	case config.BackendSQLite:
		database, err := db.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.database = database
		return sqlite.NewHabitRepository(database), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", c.cfg.Store.Backend)
	}
}
