package merge

import (
	"context"
	"fmt"
	"sync"

	"github.com/backmassage/resmerge/internal/config"
)

// Logger is the minimal logging interface needed by strategies. Defined
// here (rather than importing the logging package) so that merge remains
// dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// Env carries the per-invocation context a strategy runs in: the resolved
// absolute build directory, the dry-run flag, and the logger. The host is
// responsible for resolving and creating BuildDir before invoking Merge.
type Env struct {
	BuildDir string
	DryRun   bool
	Log      Logger
}

// TargetReport describes one merged target file.
type TargetReport struct {
	Path    string // Absolute target path.
	Sources int    // Sources actually appended (self-merge skips excluded).
	Deleted int    // Sources deleted after merging.
	Bytes   int64  // Content bytes appended, excluding separators/comments.
}

// Result aggregates the targets one strategy execution produced.
type Result struct {
	Targets []TargetReport
}

// TotalSources returns the number of sources merged across all targets.
func (r Result) TotalSources() int {
	n := 0
	for _, t := range r.Targets {
		n += t.Sources
	}
	return n
}

// TotalDeleted returns the number of sources deleted across all targets.
func (r Result) TotalDeleted() int {
	n := 0
	for _, t := range r.Targets {
		n += t.Deleted
	}
	return n
}

// TotalBytes returns the content bytes appended across all targets.
func (r Result) TotalBytes() int64 {
	var n int64
	for _, t := range r.Targets {
		n += t.Bytes
	}
	return n
}

// Strategy merges a set of origin resources. Implementations run
// sequentially; any returned error aborts the remaining strategies of the
// invocation. Effects already applied (written targets, deleted sources)
// are left in place.
type Strategy interface {
	Merge(ctx context.Context, env *Env) (Result, error)
}

// Factory builds a Strategy from its configuration.
type Factory func(sc config.StrategyConfig) (Strategy, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a strategy factory available under the given type name.
// External strategies register themselves here; the "regex" default is
// registered by this package.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry[name] = f
}

// New instantiates the strategy selected by sc.Type (default "regex").
func New(sc config.StrategyConfig) (Strategy, error) {
	name := sc.TypeOrDefault()

	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: unknown strategy type %q", ErrConfiguration, name)
	}
	return f(sc)
}
