// Package harmonize turns raw ERP master-data extracts into one unified,
// analysis-ready view. It ships two pipelines, local material and process
// order, which load per-entity CSV files, prepare and join them, derive
// identity keys and order timing flags, and emit a single CSV on a shared
// unified schema.
package harmonize

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/erphub/harmonize/pkg/logging"
	"github.com/erphub/harmonize/pkg/pipeline"
)

// Params configures one pipeline run. It aliases the pipeline package's
// parameter set so callers only import the root package.
type Params = pipeline.Params

// Harmonizer runs harmonization pipelines.
type Harmonizer interface {
	// LocalMaterial runs the local-material pipeline and returns the
	// path of the written output file.
	LocalMaterial(ctx context.Context, p Params) (string, error)

	// ProcessOrder runs the process-order pipeline and returns the
	// path of the written output file.
	ProcessOrder(ctx context.Context, p Params) (string, error)

	// UnionMany concatenates already-produced output files into one.
	UnionMany(ctx context.Context, files []string, outputDir, fileName string) (string, error)
}

// harmonizer is the internal implementation of the Harmonizer interface.
type harmonizer struct {
	logger *zerolog.Logger
}

// Option configures a Harmonizer.
type Option func(*harmonizer)

// WithLogger sets the logger attached to every run's context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(h *harmonizer) {
		h.logger = logger
	}
}

// New creates a Harmonizer with the given options.
func New(opts ...Option) Harmonizer {
	h := &harmonizer{logger: logging.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *harmonizer) LocalMaterial(ctx context.Context, p Params) (string, error) {
	return pipeline.LocalMaterial(logging.WithLogger(ctx, h.logger), p)
}

func (h *harmonizer) ProcessOrder(ctx context.Context, p Params) (string, error) {
	return pipeline.ProcessOrder(logging.WithLogger(ctx, h.logger), p)
}

func (h *harmonizer) UnionMany(ctx context.Context, files []string, outputDir, fileName string) (string, error) {
	return pipeline.UnionMany(logging.WithLogger(ctx, h.logger), files, outputDir, fileName)
}
