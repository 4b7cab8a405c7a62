package modelscan

import (
	"fmt"
	"io/fs"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
)

// sizeUnits are the display units, each 1024 times the previous.
//
//nolint:gochecknoglobals // Config constant
var sizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatSize renders bytes in the largest unit that keeps the magnitude below 1024,
// with two decimals (e.g. "512.00 MB"). Sizes beyond the TB range are always shown in PB.
func FormatSize(bytes int64) string {
	size := float64(bytes)

	last := len(sizeUnits) - 1
	for _, unit := range sizeUnits[:last] {
		if size < 1024 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}

		size /= 1024
	}

	return fmt.Sprintf("%.2f %s", size, sizeUnits[last])
}

// DirSize returns the total size of all regular files below path.
// Symbolic links are never followed or counted, and unreadable entries are skipped.
func DirSize(path string) int64 {
	total, _ := dirSize(&fastwalk.Config{Follow: false}, path)

	return total
}

// ComputeSize returns the formatted size of the subtree rooted at path.
func ComputeSize(path string) string {
	return FormatSize(DirSize(path))
}

// dirSize walks path with conf and returns the byte total and the number of
// entries that could not be read.
func dirSize(conf *fastwalk.Config, path string) (int64, int64) {
	var total, errs atomic.Int64

	//nolint:varnamelen // d is standard for DirEntry
	err := fastwalk.Walk(conf, path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			errs.Add(1)

			return nil // Skip unreadable entries
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			errs.Add(1)

			return nil //nolint:nilerr // Intentionally skip errors during walk
		}

		total.Add(info.Size())

		return nil
	})
	if err != nil {
		errs.Add(1)
	}

	return total.Load(), errs.Load()
}
