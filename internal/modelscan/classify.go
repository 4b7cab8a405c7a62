package modelscan

import "strings"

// SourceType is the coarse ecosystem a model directory appears to belong to.
type SourceType string

const (
	// HuggingFace marks directories inside a Hugging Face hub cache.
	HuggingFace SourceType = "HuggingFace"
	// Transformers marks directories inside the legacy Transformers cache.
	Transformers SourceType = "Transformers"
	// PyTorch marks directories inside a PyTorch cache.
	PyTorch SourceType = "PyTorch"
	// Unknown is used when no marker matches.
	Unknown SourceType = "Unknown"
)

// sourceMarkers is evaluated in order; the first marker found in a path wins.
//
//nolint:gochecknoglobals // Lookup table
var sourceMarkers = []struct {
	marker string
	source SourceType
}{
	{marker: "huggingface", source: HuggingFace},
	{marker: "transformers", source: Transformers},
	{marker: "torch", source: PyTorch},
}

// Classify infers the source type of a model directory from its path alone.
func Classify(path string) SourceType {
	for _, m := range sourceMarkers {
		if strings.Contains(path, m.marker) {
			return m.source
		}
	}

	return Unknown
}
