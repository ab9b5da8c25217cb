package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/habits/internal/config"
	"github.com/example/habits/internal/logging"
	"github.com/example/habits/internal/wire"
)

// Options holds the global flags shared by every command.
type Options struct {
	ConfigPath string
	Backend    string
	LogLevel   string
	LogFile    string
}

// AddGlobalFlags registers the persistent flags on the root command.
func AddGlobalFlags(root *cobra.Command, opts *Options) {
	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "Config file (default ~/.habits/config.yaml)")
	flags.StringVar(&opts.Backend, "backend", "", "Habit store backend: memory or sqlite")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
}

// session is the loaded config, logger and container for one command run.
type session struct {
	cfg       *config.Config
	logger    *zap.Logger
	container *wire.Container
}

func (s *session) Close() error {
	return s.container.Close()
}

// resolveConfig loads the config file and applies flag overrides.
// Flags win over env, env wins over the file.
func resolveConfig(opts *Options) (*config.Config, string, error) {
	path := opts.ConfigPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, "", err
		}
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if opts.Backend != "" {
		cfg.Store.Backend = opts.Backend
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.LogFile != "" {
		cfg.Log.File = opts.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return cfg, path, nil
}

// openSession builds everything a command needs. logFallback is the log
// output used when no log file is configured ("" disables logging).
func openSession(opts *Options, logFallback string) (*session, error) {
	cfg, path, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log, logFallback)
	if err != nil {
		return nil, err
	}
	logger.Debug("config loaded",
		zap.String("path", path),
		zap.String("backend", cfg.Store.Backend),
	)

	return &session{
		cfg:       cfg,
		logger:    logger,
		container: wire.New(cfg, logger),
	}, nil
}
