package modelscan

import (
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

func symlink(t *testing.T, target, link string) {
	t.Helper()

	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0.00 B"},
		{100, "100.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{2048, "2.00 KB"},
		{512 * 1024 * 1024, "512.00 MB"},
		{3 << 30, "3.00 GB"},
		{1 << 40, "1.00 TB"},
		{1 << 50, "1.00 PB"},
		{1 << 62, "4096.00 PB"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.bytes); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFormatSizeRoundTrip(t *testing.T) {
	for _, n := range []int64{1, 999, 4097, 123456789, 98765432109, 5 << 41, 7 << 51} {
		got := FormatSize(n)

		magnitude, unit, ok := strings.Cut(got, " ")
		if !ok {
			t.Fatalf("FormatSize(%d) = %q, missing unit", n, got)
		}

		value, err := strconv.ParseFloat(magnitude, 64)
		if err != nil {
			t.Fatalf("FormatSize(%d) = %q: %v", n, got, err)
		}

		idx := slices.Index(sizeUnits, unit)
		if idx < 0 {
			t.Fatalf("FormatSize(%d) = %q, unknown unit", n, got)
		}

		scale := math.Pow(1024, float64(idx))
		if diff := math.Abs(value*scale - float64(n)); diff > 0.005*scale {
			t.Errorf("FormatSize(%d) = %q, off by %.0f bytes", n, got, diff)
		}

		if idx < len(sizeUnits)-1 && value >= 1024 {
			t.Errorf("FormatSize(%d) = %q, magnitude not below 1024", n, got)
		}
	}
}

func TestDirSizeCountsRegularFiles(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "a.bin"), 100)
	writeFile(t, filepath.Join(tmp, "sub", "b.txt"), 200)
	writeFile(t, filepath.Join(tmp, "sub", "deeper", "c"), 300)

	if got := DirSize(tmp); got != 600 {
		t.Errorf("DirSize = %d, want 600", got)
	}

	if got := ComputeSize(tmp); got != "600.00 B" {
		t.Errorf("ComputeSize = %q, want %q", got, "600.00 B")
	}
}

func TestDirSizeSkipsSymlinks(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, ".cache", "huggingface", "hub", "models--x")
	elsewhere := filepath.Join(tmp, "elsewhere", "target.bin")

	writeFile(t, filepath.Join(dir, "weights.bin"), 2048)
	writeFile(t, elsewhere, 2048)
	symlink(t, elsewhere, filepath.Join(dir, "alias.bin"))
	symlink(t, filepath.Dir(elsewhere), filepath.Join(dir, "linked-dir"))

	if got := ComputeSize(dir); got != "2.00 KB" {
		t.Errorf("ComputeSize = %q, want %q", got, "2.00 KB")
	}
}

func TestDirSizeMissingPath(t *testing.T) {
	if got := ComputeSize(filepath.Join(t.TempDir(), "missing")); got != "0.00 B" {
		t.Errorf("ComputeSize = %q, want %q", got, "0.00 B")
	}
}
