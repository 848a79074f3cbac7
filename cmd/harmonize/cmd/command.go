// Package cmd implements the harmonize CLI subcommands.
package cmd

import (
	"github.com/rs/zerolog"

	"github.com/erphub/harmonize"
)

// AppContext defines the interface the subcommands need from the app.
// This allows for better testability and decoupling from the full app.
type AppContext interface {
	Harmonizer() harmonize.Harmonizer
	Logger() *zerolog.Logger
	Version() string
	Commit() string
	Date() string
}
