package modelscan

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// ModelRecord represents a single discovered model directory.
type ModelRecord struct {
	// Name is the directory basename.
	Name string `json:"name"`
	// Path is the absolute path of the directory holding the model files.
	Path string `json:"path"`
	// SourceType is the ecosystem inferred from Path.
	SourceType SourceType `json:"type"`
	// Size is the human-readable size of the directory subtree.
	Size string `json:"size"`
	// Bytes is the raw size Size was formatted from.
	Bytes int64 `json:"bytes"`
}

// Result holds the outcome of a scan.
type Result struct {
	// Records are the discovered model directories in scan order.
	Records []ModelRecord `json:"records"`
	// DirCount is the number of directories visited.
	DirCount int64 `json:"dir_count"`
	// ErrorCount is the number of entries that could not be read.
	ErrorCount int64 `json:"error_count"`
	// SkippedRoots lists candidate roots that did not exist.
	SkippedRoots []string `json:"skipped_roots"`
	// Elapsed is the total time taken for the scan.
	Elapsed time.Duration `json:"elapsed"`
}

// Options configures a scan and CLI behavior.
type Options struct {
	// Roots are the candidate directories, scanned in order.
	Roots []string
	// Workers is the number of fastwalk workers (0=fastwalk default).
	Workers int
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
	// DebugWriter receives debug output (nil=stderr).
	DebugWriter io.Writer
	// Output represents output format (table, json or paths).
	Output string
	// Version indicates whether to show version and exit.
	Version bool
	// Integration indicates whether to output integration script.
	Integration bool
}

// collector gathers hit directories from concurrent fastwalk callbacks using a mutex.
type collector struct {
	mu         sync.Mutex // Protect concurrent access
	hits       map[string]struct{}
	dirCount   int64
	hitCount   int64
	errorCount int64
}

// newCollector creates an empty collector.
func newCollector() *collector {
	return &collector{
		hits: make(map[string]struct{}),
	}
}

// addErrors increases the error counter by n. This operation is protected by a mutex
// since fastwalk calls the callback from multiple goroutines concurrently.
func (c *collector) addErrors(n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorCount += n
}

// addDir counts a visited directory.
func (c *collector) addDir() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirCount++
}

// addHit records dir as containing a model file. Repeated calls for the same
// directory are counted once.
func (c *collector) addHit(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.hits[dir]; ok {
		return
	}

	c.hits[dir] = struct{}{}
	c.hitCount++
}

// counts returns the visited directory and hit totals so far.
func (c *collector) counts() (dirs, hits int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dirCount, c.hitCount
}

// errors returns the number of skipped entries so far.
func (c *collector) errors() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.errorCount
}

// drain returns the hits collected since the last drain in pre-order and
// resets the hit set, so that each root can be emitted before the next one is walked.
func (c *collector) drain() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	dirs := make([]string, 0, len(c.hits))
	for dir := range c.hits {
		dirs = append(dirs, dir)
	}

	clear(c.hits)

	slices.SortFunc(dirs, comparePreOrder)

	return dirs
}

// comparePreOrder orders paths component by component, so a directory sorts
// before its children and siblings sort by name.
func comparePreOrder(a, b string) int {
	sep := string(filepath.Separator)

	return slices.Compare(strings.Split(a, sep), strings.Split(b, sep))
}
