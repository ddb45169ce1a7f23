package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/resmerge/internal/config"
	"github.com/backmassage/resmerge/internal/logging"
	"github.com/backmassage/resmerge/internal/merge"
	"github.com/backmassage/resmerge/internal/pipeline"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.BuildDir = dir
	cfg.ColorMode = config.ColorNever
	return cfg
}

func testLogger(t *testing.T, cfg *config.Config) *logging.Logger {
	t.Helper()
	log, err := logging.NewLogger(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })
	return log
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRun_SkipBypassesEverything(t *testing.T) {
	cfg := testConfig(t)
	cfg.Skip = true
	cfg.Strategies = []config.StrategyConfig{{FilesRegex: `([`}} // never instantiated

	stats, err := pipeline.Run(context.Background(), &cfg, testLogger(t, &cfg))
	require.NoError(t, err)
	assert.Zero(t, stats.Strategies)
	assert.Zero(t, stats.Targets)
}

func TestRun_MergesConfiguredStrategies(t *testing.T) {
	cfg := testConfig(t)
	classes := filepath.Join(cfg.BuildDir, "classes")
	writeFile(t, filepath.Join(classes, "a_message.properties"), "a=1\n")
	writeFile(t, filepath.Join(classes, "b_message.properties"), "b=1\n")
	writeFile(t, filepath.Join(classes, "app.conf"), "conf\n")

	cfg.Strategies = []config.StrategyConfig{
		{FilesRegex: `.*(message)(_.*)?(\.properties)`, MergeDir: "merged"},
		{FilesRegex: `.*\.conf`, MergeFile: "all.conf", MergeDir: "merged"},
	}

	stats, err := pipeline.Run(context.Background(), &cfg, testLogger(t, &cfg))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Completed)
	assert.Zero(t, stats.Failed)
	assert.Equal(t, 2, stats.Targets)
	assert.Equal(t, 3, stats.Sources)
	assert.Equal(t, 3, stats.Deleted)
	merged := filepath.Join(cfg.BuildDir, "merged")
	assert.FileExists(t, filepath.Join(merged, "message.properties"))
	assert.FileExists(t, filepath.Join(merged, "all.conf"))
}

func TestRun_FirstErrorAbortsRemainingStrategies(t *testing.T) {
	calls := 0
	merge.Register("pipeline-test-fail", func(config.StrategyConfig) (merge.Strategy, error) {
		return failingStrategy{calls: &calls}, nil
	})

	cfg := testConfig(t)
	cfg.Strategies = []config.StrategyConfig{
		{Type: "pipeline-test-fail", FilesRegex: "irrelevant"},
		{Type: "pipeline-test-fail", FilesRegex: "irrelevant"},
	}

	stats, err := pipeline.Run(context.Background(), &cfg, testLogger(t, &cfg))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strategy 1")
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, stats.Failed)
	assert.Zero(t, stats.Completed)
}

type failingStrategy struct{ calls *int }

func (f failingStrategy) Merge(context.Context, *merge.Env) (merge.Result, error) {
	*f.calls++
	return merge.Result{}, errors.New("boom")
}

func TestRun_UnknownStrategyType(t *testing.T) {
	cfg := testConfig(t)
	cfg.Strategies = []config.StrategyConfig{{Type: "absent", FilesRegex: "x"}}

	_, err := pipeline.Run(context.Background(), &cfg, testLogger(t, &cfg))
	require.ErrorIs(t, err, merge.ErrConfiguration)
}

func TestRun_CreatesBuildDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.BuildDir = filepath.Join(cfg.BuildDir, "nested", "target")
	cfg.Skip = false
	cfg.Strategies = []config.StrategyConfig{
		{FilesRegex: `.*(message)(\.properties)`, MergeDir: "merged"},
	}

	// The origin dir is still missing, so the strategy fails, but the
	// build dir itself must have been created first.
	_, err := pipeline.Run(context.Background(), &cfg, testLogger(t, &cfg))
	require.ErrorIs(t, err, merge.ErrDiscovery)
	assert.DirExists(t, cfg.BuildDir)
}
