package merge

import (
	"fmt"
	"path/filepath"
	"strings"
)

// resolveTarget derives the target filename for path. It returns ok=false
// (not an error) when the bare filename does not match the pattern. On a
// match, a configured static merge file wins; otherwise the target is the
// ordered concatenation of the capture groups' matched substrings, a group
// that did not participate contributing nothing. An empty concatenation is
// a configuration error since no target can be derived.
func (s *RegexStrategy) resolveTarget(path string, log Logger) (string, bool, error) {
	name := filepath.Base(path)
	m := s.pattern.FindStringSubmatch(name)
	if m == nil {
		log.Debug("Ignoring mismatched file '%s'", path)
		return "", false, nil
	}
	log.Debug("Resolving file '%s'", path)

	if s.mergeFile != "" {
		return s.mergeFile, true, nil
	}

	if s.pattern.NumSubexp() == 0 {
		return "", false, fmt.Errorf(
			"%w: files_regex requires a capturing group or setting merge_file", ErrConfiguration)
	}

	var b strings.Builder
	for _, group := range m[1:] {
		b.WriteString(group)
	}
	target := b.String()
	if target == "" {
		return "", false, fmt.Errorf(
			"%w: filename '%s' matched files_regex %q but every capturing group is empty; "+
				"edit the regex or exclude this file", ErrConfiguration, path, s.rawPattern)
	}
	return target, true, nil
}
