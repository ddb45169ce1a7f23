package merge

import (
	"path/filepath"
	"strings"
)

// SourceFile is one scanned merge candidate: its absolute path and that
// path decomposed into components from root to filename. Immutable once
// built.
type SourceFile struct {
	Path  string
	comps []string
}

// newSourceFile absolutizes path and splits it into components. A leading
// separator splits into an empty first component, which Join reassembles
// correctly.
func newSourceFile(path string) (SourceFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return SourceFile{}, err
	}
	return SourceFile{
		Path:  abs,
		comps: strings.Split(abs, string(filepath.Separator)),
	}, nil
}

// Name returns the bare filename.
func (f SourceFile) Name() string { return filepath.Base(f.Path) }

// compareByName is the default member ordering within a group.
func compareByName(a, b SourceFile) int {
	return strings.Compare(a.Name(), b.Name())
}

// mergeGroup owns the members destined for one target filename and the
// longest path-component prefix shared by all of them. The common root is
// never longer than any member's directory component count, and every
// member's leading components equal it.
type mergeGroup struct {
	commonRoot []string
	files      []SourceFile
}

// newGroup seeds a singleton group: the common root is the member's
// component sequence minus the filename.
func newGroup(f SourceFile) mergeGroup {
	return mergeGroup{
		commonRoot: f.comps[:len(f.comps)-1],
		files:      []SourceFile{f},
	}
}

// combine unions two groups sharing a target filename. The resulting
// common root is the longest shared component prefix of the inputs' common
// roots; the member lists are concatenated. Associative and commutative on
// the resulting root and member set, though not on member order.
func (g mergeGroup) combine(o mergeGroup) mergeGroup {
	n := 0
	for n < len(g.commonRoot) && n < len(o.commonRoot) && g.commonRoot[n] == o.commonRoot[n] {
		n++
	}
	files := make([]SourceFile, 0, len(g.files)+len(o.files))
	files = append(files, g.files...)
	files = append(files, o.files...)
	return mergeGroup{commonRoot: g.commonRoot[:n:n], files: files}
}

// rootPath reassembles the common root into a directory path.
func (g mergeGroup) rootPath() string {
	return strings.Join(g.commonRoot, string(filepath.Separator))
}
