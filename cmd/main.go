// Command resmerge consolidates same-purpose resource fragments found
// under a build staging directory into single merged files, optionally
// deleting the consumed originals.
//
// It loads configuration (file, environment, flags), validates it, and
// either runs configuration diagnostics (--check) or the merge pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/resmerge/internal/check"
	"github.com/backmassage/resmerge/internal/config"
	"github.com/backmassage/resmerge/internal/display"
	"github.com/backmassage/resmerge/internal/logging"
	"github.com/backmassage/resmerge/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

// flags collects CLI values before they are folded into the Config.
// Negated flags (--no-delete, --no-retry, --no-common-root) clear defaults
// that hold unless the user passes the flag.
type flags struct {
	configPath string
	buildDir   string
	logFile    string
	colorMode  string

	regex      string
	origin     string
	mergeDir   string
	mergeFile  string
	comment    string
	excludes   []string
	newlines   int
	noDelete   bool
	noRetry    bool
	noCommon   bool

	skip    bool
	dryRun  bool
	check   bool
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "resmerge: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var fl flags

	cmd := &cobra.Command{
		Use:   "resmerge",
		Short: "Merge same-purpose resource fragments into single files",
		Long: `Resmerge consolidates resource fragments that accumulate in a build
staging directory (e.g. locale bundles split across modules) into single
merged files, preserving deterministic content order and optionally
deleting the originals.

Strategies come from the config file (.resmerge.yaml); passing --regex
appends a one-shot strategy built from the flags below.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, &fl)
		},
	}

	cmd.Flags().StringVar(&fl.configPath, "config", "", "Config file (default .resmerge.yaml in CWD or $HOME)")
	cmd.Flags().StringVarP(&fl.buildDir, "build-dir", "b", "", "Build output root (default 'target')")
	cmd.Flags().StringVarP(&fl.logFile, "log", "l", "", "Append logs to file")
	cmd.Flags().StringVar(&fl.colorMode, "color", "", "Color mode: auto | always | never")

	cmd.Flags().StringVarP(&fl.regex, "regex", "r", "", "Filename regex for a one-shot strategy")
	cmd.Flags().StringVar(&fl.origin, "origin", "", "Origin directory (default 'classes' under build dir)")
	cmd.Flags().StringVar(&fl.mergeDir, "merge-dir", "", "Output directory for merged files")
	cmd.Flags().StringVar(&fl.mergeFile, "merge-file", "", "Static target filename (bypasses capture groups)")
	cmd.Flags().StringVar(&fl.comment, "comment", "", "Comment format with one %s for the source filename")
	cmd.Flags().StringArrayVar(&fl.excludes, "exclude", nil, "Bare filename to skip (repeatable)")
	cmd.Flags().IntVar(&fl.newlines, "newlines", config.DefaultNewlines, "Newlines before each appended source")
	cmd.Flags().BoolVar(&fl.noDelete, "no-delete", false, "Keep merged sources on disk")
	cmd.Flags().BoolVar(&fl.noRetry, "no-retry", false, "Do not retry failed deletions")
	cmd.Flags().BoolVar(&fl.noCommon, "no-common-root", false, "Use the default merge dir instead of each group's common root")

	cmd.Flags().BoolVar(&fl.skip, "skip", false, "Skip the merge pipeline entirely")
	cmd.Flags().BoolVarP(&fl.dryRun, "dry-run", "d", false, "Preview only; do not write or delete")
	cmd.Flags().BoolVarP(&fl.check, "check", "c", false, "Run configuration diagnostics and exit")
	cmd.Flags().BoolVarP(&fl.verbose, "verbose", "v", false, "Verbose output")

	cmd.AddCommand(versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "resmerge v%s (commit: %s)\n", version, commit)
		},
	}
}

func run(cmd *cobra.Command, fl *flags) error {
	cfg, err := config.Load(fl.configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, fl, &cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return errors.New("configuration check failed")
		}
		return nil
	}

	log.Info("=== resmerge v%s (%s) ===", version, commit)
	log.Info("Build dir: %s", cfg.BuildDir)
	if cfg.DryRun {
		log.Warn("DRY RUN - no files will be written or deleted")
	}
	log.Info("")

	// Cancel on SIGINT/SIGTERM so the pipeline stops between groups
	// without leaving a partially appended target mid-source.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current target...")
		cancel()
	}()

	_, err = pipeline.Run(ctx, &cfg, log)
	return err
}

// strategyFlags are the flags that only shape the one-shot strategy
// synthesized by --regex; passing any of them without --regex is an error
// rather than a silent no-op.
var strategyFlags = []string{
	"origin", "merge-dir", "merge-file", "comment", "exclude",
	"newlines", "no-delete", "no-retry", "no-common-root",
}

// applyFlags folds changed CLI flags into cfg, overriding file and env
// values. A --regex flag synthesizes a one-shot strategy appended to the
// configured list.
func applyFlags(cmd *cobra.Command, fl *flags, cfg *config.Config) error {
	if cmd.Flags().Changed("build-dir") {
		cfg.BuildDir = config.NormalizeDirArg(fl.buildDir)
	}
	if cmd.Flags().Changed("log") {
		cfg.LogFile = fl.logFile
	}
	if cmd.Flags().Changed("color") {
		cfg.ColorMode = config.ColorMode(fl.colorMode)
	}
	if fl.skip {
		cfg.Skip = true
	}
	if fl.dryRun {
		cfg.DryRun = true
	}
	if fl.verbose {
		cfg.Verbose = true
	}
	cfg.CheckOnly = fl.check

	if fl.regex == "" {
		for _, name := range strategyFlags {
			if cmd.Flags().Changed(name) {
				return fmt.Errorf("--%s has no effect without --regex", name)
			}
		}
		return nil
	}
	sc := config.StrategyConfig{
		FilesRegex:   fl.regex,
		ExcludeFiles: fl.excludes,
		OriginDir:    fl.origin,
		MergeDir:     fl.mergeDir,
		MergeFile:    fl.mergeFile,
	}
	if cmd.Flags().Changed("newlines") {
		n := fl.newlines
		sc.Newlines = &n
	}
	if cmd.Flags().Changed("comment") {
		sc.CommentFormat = fl.comment
	}
	if fl.noDelete {
		f := false
		sc.DeleteMerged = &f
	}
	if fl.noRetry {
		f := false
		sc.RetryDelete = &f
	}
	if fl.noCommon {
		f := false
		sc.UseCommonRoot = &f
	}
	cfg.Strategies = append(cfg.Strategies, sc)
	return nil
}
