package merge

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
)

// scan walks originDir recursively and returns the files beneath it whose
// bare name is not in exclude, sorted lexicographically for deterministic
// processing order. Directory entries are never treated as files.
func scan(originDir string, exclude map[string]struct{}) ([]string, error) {
	var files []string
	err := filepath.WalkDir(originDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, skip := exclude[d.Name()]; skip {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrDiscovery, originDir, err)
	}
	sort.Strings(files)
	return files, nil
}
