// Package scratch manages the request-scoped working directories on disk.
package scratch

import (
	"fmt"
	"os"
)

// Stage guarantees dir exists and is empty: whatever is there, files or
// subdirectories, is removed and the directory is recreated. A path
// that does not exist yet is fine. Callers share the scratch namespace
// process-wide, so two concurrent requests staging the same directory
// will trample each other; the caller accepts at most one in-flight
// request at a time.
func Stage(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clear scratch directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create scratch directory %s: %w", dir, err)
	}
	return nil
}
