package merge

import "errors"

// Sentinel error kinds wrapped by the strategy stages. Callers and tests
// classify failures with errors.Is; the wrapped message carries the
// offending path or pattern.
var (
	// ErrConfiguration covers an empty or group-less regex and a
	// capture-group concatenation that yields an empty target filename.
	ErrConfiguration = errors.New("invalid merge configuration")

	// ErrDiscovery covers an origin directory that cannot be traversed.
	ErrDiscovery = errors.New("cannot list origin directory")

	// ErrWrite covers output directory creation, target open, and copy
	// failures.
	ErrWrite = errors.New("cannot write merge target")

	// ErrDelete covers a merged source that survives all delete attempts.
	ErrDelete = errors.New("cannot delete resource after merge")
)
