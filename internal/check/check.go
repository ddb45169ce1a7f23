// Package check provides --check diagnostics: it verifies the build and
// origin directories, compiles every configured regex, and reports each
// strategy's effective target and output-directory policy without merging
// anything.
package check

import (
	"os"
	"regexp"

	"github.com/backmassage/resmerge/internal/config"
)

// Logger is the minimal logging interface needed by RunCheck. Defined here
// (rather than importing the logging package) so that check remains
// dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// RunCheck runs the --check flow. It reports configuration problems a merge
// run would fail on and returns false if any were found. Missing
// directories are warnings, not failures: a build step may legitimately run
// before they exist.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== Configuration Check ===")

	ok := true

	if checkDir(log, "build dir", cfg.BuildDir) {
		log.Success("build dir: %s", cfg.BuildDir)
	}

	if len(cfg.Strategies) == 0 {
		log.Error("no strategies configured (config 'strategies' or --regex)")
		return false
	}

	for i := range cfg.Strategies {
		if !checkStrategy(cfg, log, i) {
			ok = false
		}
	}
	return ok
}

// checkStrategy validates one strategy and logs its effective behavior.
func checkStrategy(cfg *config.Config, log Logger, i int) bool {
	sc := &cfg.Strategies[i]
	log.Info("strategy %d (%s):", i+1, sc.TypeOrDefault())

	if sc.FilesRegex == "" {
		log.Error("  files_regex cannot be empty")
		return false
	}
	re, err := regexp.Compile(sc.FilesRegex)
	if err != nil {
		log.Error("  invalid files_regex %q: %v", sc.FilesRegex, err)
		return false
	}
	if sc.MergeFile == "" && re.NumSubexp() == 0 {
		log.Error("  files_regex %q has no capturing group and no merge_file is set", sc.FilesRegex)
		return false
	}

	if sc.MergeFile != "" {
		log.Info("  target: static '%s'", sc.MergeFile)
	} else {
		log.Info("  target: derived from %d capturing group(s)", re.NumSubexp())
	}

	originDir := config.ResolveDir(cfg.BuildDir, sc.OriginDir, config.DefaultOriginDir)
	checkDir(log, "  origin dir", originDir)

	switch {
	case sc.MergeDir != "":
		log.Info("  output: %s", config.ResolveDir(cfg.BuildDir, sc.MergeDir, ""))
	case sc.UseCommonRootOrDefault():
		log.Info("  output: common root of each group")
	default:
		log.Info("  output: %s", config.ResolveDir(cfg.BuildDir, config.DefaultMergeDir, ""))
	}

	if n := len(sc.ExcludeFiles); n > 0 {
		log.Info("  excluding %d file(s)", n)
	}
	if !sc.DeleteMergedOrDefault() {
		log.Info("  keeping merged sources (delete disabled)")
	}
	return true
}

// checkDir warns when dir is absent or not a directory; returns true when
// it exists and is usable.
func checkDir(log Logger, label, dir string) bool {
	fi, err := os.Stat(dir)
	if err != nil {
		log.Warn("%s: %s does not exist yet", label, dir)
		return false
	}
	if !fi.IsDir() {
		log.Warn("%s: %s is not a directory", label, dir)
		return false
	}
	return true
}
