// Package clean removes the snapshot cache directory.
package clean

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Run removes dir. The directory is first renamed so that a host starting
// right after sees no half-deleted cache; the rename target is then removed.
func Run(dir string, out io.Writer) error {
	start := time.Now()
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		fmt.Fprintf(out, "🧹 Nothing to clean at '%s'.\n", abs)
		return nil
	}

	tempPath := filepath.Join(filepath.Dir(abs), fmt.Sprintf("%s_deleting_%d", filepath.Base(abs), time.Now().UnixNano()))
	fmt.Fprintf(out, "🧹 Moving '%s' to trash...\n", abs)
	if err := os.Rename(abs, tempPath); err != nil {
		fmt.Fprintf(out, "⚠️ Rename failed (%v), deleting in place...\n", err)
		tempPath = abs
	}
	if err := os.RemoveAll(tempPath); err != nil {
		return fmt.Errorf("failed to remove '%s': %w", tempPath, err)
	}

	fmt.Fprintf(out, "🧹 Cache cleared in %v.\n", time.Since(start))
	return nil
}
