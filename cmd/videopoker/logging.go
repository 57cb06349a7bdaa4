package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/videopoker/internal/config"
)

// loadConfig reads the config file named by the global flags
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", g.Config, err)
	}
	return cfg, nil
}

// logLevel resolves the level from --debug and the config file
func (g *Globals) logLevel(cfg *config.Config) (log.Level, error) {
	if g.Debug {
		return log.DebugLevel, nil
	}
	return cfg.LogLevel()
}

// setupLogger configures a logger writing to stderr
func setupLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
}

// setupFileLogger configures a logger writing to path. The terminal game owns
// stdout, so its logs go to a file.
func setupFileLogger(path string, level log.Level) (*os.File, *log.Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "MAIN",
	})
	return f, logger, nil
}

// setupSignalHandler creates a context that is cancelled on interrupt signals
func setupSignalHandler(logger *log.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Received signal, shutting down", "signal", sig.String())
		cancel()
	}()

	return ctx
}

// noColorEnv honours NO_COLOR and CLICOLOR=0
func noColorEnv() bool {
	return termenv.EnvNoColor()
}
