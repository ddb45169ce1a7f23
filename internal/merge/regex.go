package merge

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/backmassage/resmerge/internal/config"
)

func init() {
	Register(config.DefaultType, func(sc config.StrategyConfig) (Strategy, error) {
		return NewRegexStrategy(sc)
	})
}

// RegexStrategy is the default Strategy. It matches bare filenames against
// a case-sensitive regex (whole-name match), derives each file's target
// filename from the ordered concatenation of the capture groups unless a
// static merge file is configured, and merges each resulting group into one
// appended output file.
//
// The regex must not contain nested capturing groups; use ExcludeFiles to
// sidestep files that would otherwise force nesting.
type RegexStrategy struct {
	pattern    *regexp.Regexp // Anchored form of rawPattern.
	rawPattern string         // As configured, for error messages.
	exclude    map[string]struct{}

	originDir     string
	mergeDir      string
	mergeFile     string
	newlines      int
	commentFormat string
	deleteMerged  bool
	retryDelete   bool
	useCommonRoot bool

	// compare orders a group's members before writing; by bare filename by
	// default. The scanner's lexicographic listing breaks ties, so output
	// order is deterministic across runs.
	compare func(a, b SourceFile) int

	del *deleter
}

// NewRegexStrategy builds a RegexStrategy from its configuration. The
// configured regex is wrapped as ^(?:...)$ so matching covers the whole
// filename; the wrap is non-capturing, preserving group indices.
func NewRegexStrategy(sc config.StrategyConfig) (*RegexStrategy, error) {
	if sc.FilesRegex == "" {
		return nil, fmt.Errorf("%w: files_regex cannot be empty", ErrConfiguration)
	}
	re, err := regexp.Compile("^(?:" + sc.FilesRegex + ")$")
	if err != nil {
		return nil, fmt.Errorf("%w: files_regex %q: %v", ErrConfiguration, sc.FilesRegex, err)
	}

	exclude := make(map[string]struct{}, len(sc.ExcludeFiles))
	for _, name := range sc.ExcludeFiles {
		exclude[name] = struct{}{}
	}

	return &RegexStrategy{
		pattern:       re,
		rawPattern:    sc.FilesRegex,
		exclude:       exclude,
		originDir:     sc.OriginDir,
		mergeDir:      sc.MergeDir,
		mergeFile:     sc.MergeFile,
		newlines:      sc.NewlinesOrDefault(),
		commentFormat: sc.CommentFormat,
		deleteMerged:  sc.DeleteMergedOrDefault(),
		retryDelete:   sc.RetryDeleteOrDefault(),
		useCommonRoot: sc.UseCommonRootOrDefault(),
		compare:       compareByName,
		del:           newDeleter(),
	}, nil
}

// Merge runs the full pipeline for this strategy: scan the origin
// directory, resolve each file to a target filename, fold the matches into
// target groups, then write each group and delete its consumed sources.
func (s *RegexStrategy) Merge(ctx context.Context, env *Env) (Result, error) {
	originDir := config.ResolveDir(env.BuildDir, s.originDir, config.DefaultOriginDir)

	// Fixed output directory, resolved once. Empty means per-group: the
	// group's common root when enabled, else the default merge dir.
	fixedDir := ""
	if s.mergeDir != "" {
		fixedDir = config.ResolveDir(env.BuildDir, s.mergeDir, "")
	} else if !s.useCommonRoot {
		fixedDir = config.ResolveDir(env.BuildDir, config.DefaultMergeDir, "")
	}

	files, err := scan(originDir, s.exclude)
	if err != nil {
		return Result{}, err
	}

	groups := make(map[string]mergeGroup)
	for _, path := range files {
		target, ok, err := s.resolveTarget(path, env.Log)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			continue
		}
		sf, err := newSourceFile(path)
		if err != nil {
			return Result{}, err
		}
		g := newGroup(sf)
		if prev, exists := groups[target]; exists {
			g = prev.combine(g)
		}
		groups[target] = g
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	var res Result
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		rep, err := s.writeGroup(env, name, groups[name], fixedDir)
		if err != nil {
			return res, err
		}
		res.Targets = append(res.Targets, rep)
	}
	return res, nil
}
