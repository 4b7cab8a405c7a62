package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/idelchi/modelscan/internal/modelscan"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 1
	// SeparatorWidth is the width of the line printed between records.
	SeparatorWidth = 80
	// NoModelsMessage is printed when a scan finds nothing.
	NoModelsMessage = "No model files found."
)

// PrintJSON outputs the scan result in JSON format.
func PrintJSON(result *modelscan.Result, writer io.Writer) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintPaths outputs one model directory per line.
func PrintPaths(records []modelscan.ModelRecord, writer io.Writer) error {
	for _, r := range records {
		if _, err := fmt.Fprintln(writer, r.Path); err != nil {
			return err
		}
	}

	return nil
}

// PrintReport outputs the records as a human-readable report.
//
//nolint:forbidigo // This function prints output to the console.
func PrintReport(records []modelscan.ModelRecord, writer io.Writer) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(writer, NoModelsMessage)

		return err
	}

	separator := strings.Repeat("-", SeparatorWidth)

	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "Found the following models:")
	fmt.Fprintln(w, separator)

	for _, r := range records {
		fmt.Fprintf(w, "Name:\t%s\n", r.Name)
		fmt.Fprintf(w, "Path:\t%s\n", r.Path)
		fmt.Fprintf(w, "Type:\t%s\n", r.SourceType)
		fmt.Fprintf(w, "Size:\t%s\n", r.Size)
		fmt.Fprintln(w, separator)
	}

	return w.Flush()
}
