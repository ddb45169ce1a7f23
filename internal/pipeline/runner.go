// Package pipeline sequences configured merge strategies and aggregates
// batch statistics for summary reporting.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/resmerge/internal/config"
	"github.com/backmassage/resmerge/internal/display"
	"github.com/backmassage/resmerge/internal/logging"
	"github.com/backmassage/resmerge/internal/merge"
)

// Run is the top-level batch entry point. It resolves the build directory,
// instantiates every configured strategy, and executes them strictly in
// order. The first strategy error aborts the remainder; effects already
// applied stay in place. The returned stats are valid even on error.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	var stats RunStats

	if cfg.Skip {
		log.Info("Skipping the execution.")
		return stats, nil
	}

	buildDir, err := resolveBuildDir(cfg.BuildDir)
	if err != nil {
		return stats, fmt.Errorf("cannot resolve build directory %s: %w", cfg.BuildDir, err)
	}

	strategies := make([]merge.Strategy, 0, len(cfg.Strategies))
	for i, sc := range cfg.Strategies {
		st, err := merge.New(sc)
		if err != nil {
			return stats, fmt.Errorf("strategy %d: %w", i+1, err)
		}
		strategies = append(strategies, st)
	}

	env := &merge.Env{
		BuildDir: buildDir,
		DryRun:   cfg.DryRun,
		Log:      log,
	}

	stats.Strategies = len(strategies)
	for i, st := range strategies {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		log.Info("[%d/%d] strategy '%s'", i+1, len(strategies), cfg.Strategies[i].TypeOrDefault())
		res, err := st.Merge(ctx, env)
		stats.absorb(res)
		if err != nil {
			stats.Failed++
			logSummary(cfg, log, &stats)
			return stats, fmt.Errorf("strategy %d: %w", i+1, err)
		}
		stats.Completed++
	}

	logSummary(cfg, log, &stats)
	return stats, nil
}

// resolveBuildDir creates the build directory if needed and returns its
// absolute, symlink-resolved path so strategy-relative directories compare
// safely.
func resolveBuildDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// logSummary prints aggregate counters and the per-target table.
func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("")
	if cfg.DryRun {
		log.Info("=== Dry-run Summary ===")
	} else {
		log.Info("=== Summary ===")
	}
	log.Info("Strategies: %d completed, %d failed", stats.Completed, stats.Failed)
	log.Info("Targets:    %d (%d sources merged, %d deleted, %s appended)",
		stats.Targets, stats.Sources, stats.Deleted, display.FormatBytes(stats.BytesWritten))

	if len(stats.Reports) > 0 {
		fmt.Println(display.SummaryTable(stats.Reports))
	}

	if stats.Failed > 0 {
		log.Error("Merge failed")
	} else if stats.Targets > 0 {
		log.Success("Merge complete")
	} else {
		log.Info("Nothing to merge")
	}
}
