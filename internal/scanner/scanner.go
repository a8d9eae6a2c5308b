package scanner

import (
	"context"
	"time"

	"github.com/buemura/webscan/pkg/types"
)

// Scanner is the core interface every scan module implements.
type Scanner interface {
	Name() string
	Description() string
	Run(ctx context.Context, target types.Target, opts Options) (*types.ScanResult, error)
}

// Options holds scanner-wide execution parameters.
type Options struct {
	// TimeBudget is the wall-clock ceiling for one scanner invocation.
	// Probing stops as soon as the budget is exhausted; findings gathered
	// so far are still returned.
	TimeBudget time.Duration
	// RequestTimeout bounds each individual outbound request.
	RequestTimeout time.Duration
	// Concurrency bounds how many scanners the runner executes at once.
	// Scanners themselves probe sequentially.
	Concurrency int
	Verbose     bool
	ExtraArgs   map[string]interface{}
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		TimeBudget:     60 * time.Second,
		RequestTimeout: 5 * time.Second,
		Concurrency:    4,
	}
}
