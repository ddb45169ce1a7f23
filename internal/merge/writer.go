package merge

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// writeGroup merges one group into its target file. fixedDir, when
// non-empty, overrides the group's common root as the output directory.
// All appends go through a single handle held for the group's duration and
// closed on every exit path. Each successfully appended member is handed to
// the deleter before the next is processed.
func (s *RegexStrategy) writeGroup(env *Env, name string, g mergeGroup, fixedDir string) (TargetReport, error) {
	dir := fixedDir
	if dir == "" {
		dir = g.rootPath()
	}
	target := filepath.Join(dir, name)

	members := make([]SourceFile, len(g.files))
	copy(members, g.files)
	sort.SliceStable(members, func(i, j int) bool {
		return s.compare(members[i], members[j]) < 0
	})

	if env.DryRun {
		return s.planGroup(env, target, members)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return TargetReport{}, fmt.Errorf("%w: cannot create output directory %s: %v", ErrWrite, dir, err)
	}

	// Pre-existing length decides whether the very first append needs the
	// newline separator.
	var preexisting int64
	if fi, err := os.Stat(target); err == nil {
		preexisting = fi.Size()
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return TargetReport{}, fmt.Errorf("%w: %s: %v", ErrWrite, target, err)
	}
	closed := false
	defer func() {
		if !closed {
			_ = out.Close()
		}
	}()

	targetInfo, err := out.Stat()
	if err != nil {
		return TargetReport{}, fmt.Errorf("%w: %s: %v", ErrWrite, target, err)
	}

	rep := TargetReport{Path: target}
	for i, m := range members {
		mi, err := os.Stat(m.Path)
		if err != nil {
			return rep, fmt.Errorf("%w: %s: %v", ErrWrite, m.Path, err)
		}
		// Filesystem identity, not name equality: a source that IS the
		// target gets no separator, no comment, no append, no delete.
		if os.SameFile(targetInfo, mi) {
			env.Log.Debug("Skipping resource '%s' same as target '%s'", m.Path, target)
			continue
		}
		env.Log.Debug("Merging resource '%s' into target '%s'", m.Path, target)

		// No separator only on the first member of a target that started
		// empty; the index counts skipped members too.
		if s.newlines > 0 && (preexisting > 0 || i > 0) {
			for n := 0; n < s.newlines; n++ {
				if _, err := out.WriteString("\n"); err != nil {
					return rep, fmt.Errorf("%w: %s: %v", ErrWrite, target, err)
				}
			}
		}
		if s.commentFormat != "" {
			if _, err := fmt.Fprintf(out, s.commentFormat, m.Name()); err != nil {
				return rep, fmt.Errorf("%w: %s: %v", ErrWrite, target, err)
			}
		}

		n, err := appendFile(out, m.Path)
		if err != nil {
			return rep, fmt.Errorf("%w: merging %s into %s: %v", ErrWrite, m.Path, target, err)
		}
		rep.Bytes += n
		rep.Sources++

		if err := s.del.delete(m.Path, s.deleteMerged, s.retryDelete); err != nil {
			return rep, err
		}
		if s.deleteMerged {
			rep.Deleted++
		}
	}

	closed = true
	if err := out.Close(); err != nil {
		return rep, fmt.Errorf("%w: %s: %v", ErrWrite, target, err)
	}

	env.Log.Info("Merged %d resources into target '%s'", rep.Sources, target)
	return rep, nil
}

// planGroup is the dry-run counterpart of the write loop: it stats the
// members, applies the same self-merge skip and delete accounting, and
// reports the counts a real run would produce without touching anything.
func (s *RegexStrategy) planGroup(env *Env, target string, members []SourceFile) (TargetReport, error) {
	var targetInfo os.FileInfo
	if fi, err := os.Stat(target); err == nil {
		targetInfo = fi
	}

	rep := TargetReport{Path: target}
	for _, m := range members {
		mi, err := os.Stat(m.Path)
		if err != nil {
			return rep, fmt.Errorf("%w: %s: %v", ErrWrite, m.Path, err)
		}
		if targetInfo != nil && os.SameFile(targetInfo, mi) {
			env.Log.Debug("Would skip resource '%s' same as target '%s'", m.Path, target)
			continue
		}
		env.Log.Debug("Would merge resource '%s' into target '%s'", m.Path, target)
		rep.Sources++
		rep.Bytes += mi.Size()
		if s.deleteMerged {
			rep.Deleted++
		}
	}
	env.Log.Info("Would merge %d resources into target '%s'", rep.Sources, target)
	return rep, nil
}

// appendFile streams src's raw bytes into dst with no transformation.
func appendFile(dst io.Writer, src string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	return io.Copy(dst, in)
}
