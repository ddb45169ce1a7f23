package merge

import (
	"fmt"
	"os"
	"runtime"
	"time"
)

// deleteBackoff is the escalating wait sequence between delete retries.
var deleteBackoff = [...]time.Duration{
	50 * time.Millisecond,
	250 * time.Millisecond,
	750 * time.Millisecond,
}

// deleter removes merged source files with bounded retry. The remove,
// exists, sleep, and releaseHandles hooks exist so tests can simulate
// contention; production deleters use the os defaults from [newDeleter].
type deleter struct {
	remove         func(string) error
	exists         func(string) bool
	sleep          func(time.Duration)
	releaseHandles func()
}

func newDeleter() *deleter {
	return &deleter{
		remove: os.Remove,
		exists: func(path string) bool {
			_, err := os.Lstat(path)
			return err == nil
		},
		sleep:          time.Sleep,
		releaseHandles: releaseFileHandles,
	}
}

// delete removes path after it has been merged. Success is: deletion
// disabled, the file already gone, or any attempt succeeding. With retry
// enabled, a failed first attempt triggers a best-effort handle release and
// up to three escalating waits; the waits block and an early wake counts as
// elapsed. A file that survives every attempt is fatal.
func (d *deleter) delete(path string, deletable, retryable bool) error {
	if !deletable {
		return nil
	}
	if d.remove(path) == nil || !d.exists(path) {
		return nil
	}

	if retryable {
		d.releaseHandles()
		for _, delay := range deleteBackoff {
			d.sleep(delay)
			if d.remove(path) == nil || !d.exists(path) {
				return nil
			}
		}
	}

	return fmt.Errorf("%w: %s", ErrDelete, path)
}

// releaseFileHandles asks the runtime to collect garbage so finalizers
// close any leaked file handles still locking the file. Only Windows pins
// deletions on open handles; elsewhere this is a no-op.
func releaseFileHandles() {
	if runtime.GOOS == "windows" {
		runtime.GC()
	}
}
