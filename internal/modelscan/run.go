package modelscan

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/dustin/go-humanize"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// ModelExtensions are the file suffixes that mark a directory as holding a model.
//
//nolint:gochecknoglobals // Config constant
var ModelExtensions = []string{".bin", ".pt", ".pth", ".safetensors", ".gguf"}

// DefaultRoots returns the candidate model directories below home, in scan order.
func DefaultRoots(home string) []string {
	return []string{
		filepath.Join(home, ".cache", "huggingface", "hub"),
		filepath.Join(home, ".cache", "torch", "transformers"),
		filepath.Join(home, ".cache", "torch", "hub"),
		filepath.Join(home, "models"),
		filepath.Join(home, "Downloads", "models"),
	}
}

// CandidateRoots returns DefaultRoots for the current user's home directory.
func CandidateRoots() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}

	return DefaultRoots(home), nil
}

// logger provides conditional debug output. Writes are serialized since
// fastwalk callbacks log from multiple goroutines.
type logger struct {
	enabled bool
	mu      *sync.Mutex
	w       io.Writer
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if !l.enabled {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.w, format, args...)
}

// isModelFile reports whether name ends in one of the recognized model extensions.
func isModelFile(name string) bool {
	for _, ext := range ModelExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}

	return false
}

// isDirLink reports whether the symlink at path resolves to a directory.
// Broken links are treated as files.
func isDirLink(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

// startProgressReporter invokes hook(dirs, hits) on each tick until the returned
// stop function is called. stop reports the final counts once and returns only
// after the reporter goroutine has exited, so no hook call outlives it.
//
//nolint:varnamelen // c is idiomatic for collector
func startProgressReporter(c *collector, hook func(int64, int64), interval time.Duration) (stop func()) {
	if hook == nil {
		return func() {}
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)
	quit := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.counts())
			case <-quit:
				hook(c.counts())

				return
			}
		}
	}()

	var once sync.Once

	return func() {
		once.Do(func() { close(quit) })
		<-done
	}
}

// Run scans opt.Roots in order and returns one record per model directory.
//
// A directory is a hit when it directly contains a non-directory entry whose
// name ends in one of ModelExtensions. Descent continues below hits, so nested
// hit directories are reported separately. Roots that do not exist are skipped,
// and unreadable entries are counted and skipped.
//
// Records of one root are emitted in lexical pre-order before the next root
// is walked. The scan can be cancelled via ctx. Progress updates are sent
// to progressHook if provided; the last update carries the final counts and
// is delivered before Run returns.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Result, error) {
	debugWriter := opt.DebugWriter
	if debugWriter == nil {
		debugWriter = os.Stderr
	}

	log := logger{enabled: opt.Debug, mu: &sync.Mutex{}, w: debugWriter}

	roots := slices.Clone(opt.Roots)

	collector := newCollector()

	stop := startProgressReporter(collector, progressHook, opt.ProgressInterval)
	defer stop()

	conf := &fastwalk.Config{
		Follow:     false, // Don't follow symlinks
		NumWorkers: opt.Workers,
	}

	result := &Result{
		Records:      make([]ModelRecord, 0),
		SkippedRoots: make([]string, 0),
	}

	start := time.Now()

	for _, root := range roots {
		root = filepath.Clean(root)

		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			log.printf("[debug]: skipping root (missing or not a directory): %s\n", root)

			result.SkippedRoots = append(result.SkippedRoots, root)

			continue
		}

		log.printf("[debug]: scanning root: %s\n", root)

		//nolint:varnamelen // d is standard for DirEntry
		walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.printf("[debug]: error accessing path %s: %v\n", path, err)
				collector.addErrors(1)

				return nil // Skip unreadable entries
			}

			select {
			case <-ctx.Done():
				return context.Canceled
			default:
			}

			if d.IsDir() {
				collector.addDir()

				return nil
			}

			if !isModelFile(d.Name()) {
				return nil
			}

			if d.Type()&fs.ModeSymlink != 0 && isDirLink(path) {
				return nil
			}

			collector.addHit(filepath.Dir(path))

			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("scanning %q: %w", root, walkErr)
		}

		for _, dir := range collector.drain() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			bytes, errs := dirSize(conf, dir)
			collector.addErrors(errs)

			record := ModelRecord{
				Name:       filepath.Base(dir),
				Path:       dir,
				SourceType: Classify(dir),
				Size:       FormatSize(bytes),
				Bytes:      bytes,
			}

			log.printf("[debug]: found model: %s (%s, %s)\n",
				dir, record.SourceType, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive

			result.Records = append(result.Records, record)
		}
	}

	result.DirCount, _ = collector.counts()
	result.ErrorCount = collector.errors()
	result.Elapsed = time.Since(start)

	return result, nil
}
