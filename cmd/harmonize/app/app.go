// Package app provides the application context and dependency management
// for the harmonize CLI. It centralizes configuration, logging, and the
// harmonizer instance behind a single injectable type.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/erphub/harmonize"
)

// App represents the harmonize application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Harmonizer instance (lazy-initialized, singleton)
	mu         sync.RWMutex
	harmonizer harmonize.Harmonizer
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Harmonizer returns the harmonizer instance, creating it lazily.
// This is thread-safe and ensures only one instance is created.
func (a *App) Harmonizer() harmonize.Harmonizer {
	a.mu.RLock()
	if a.harmonizer != nil {
		h := a.harmonizer
		a.mu.RUnlock()
		return h
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.harmonizer == nil {
		a.harmonizer = harmonize.New(harmonize.WithLogger(a.logger))
	}
	return a.harmonizer
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithHarmonizer sets a custom harmonizer instance (useful for testing).
func WithHarmonizer(h harmonize.Harmonizer) Option {
	return func(a *App) error {
		a.harmonizer = h
		return nil
	}
}
