package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format selects the output representation of a command result.
type Format string

const (
	// FormatTable renders the compact column set, for terminal viewing.
	FormatTable Format = "table"
	// FormatWide renders every column.
	FormatWide Format = "wide"
	// FormatJSON renders indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders YAML.
	FormatYAML Format = "yaml"
)

// Formats returns the accepted format names.
func Formats() []string {
	return []string{string(FormatTable), string(FormatWide), string(FormatJSON), string(FormatYAML)}
}

// IsUnknown reports whether f is not one of the accepted formats.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatTable, FormatWide, FormatJSON, FormatYAML:
		return false
	}
	return true
}

// Tabular is implemented by resource collections that can render themselves
// as a table. The wide flag requests the full column set.
type Tabular interface {
	Header(wide bool) []string
	Rows(wide bool) [][]string
}

// Writer serializes values to an output in a fixed format.
type Writer struct {
	format Format
	out    io.Writer
	closer io.Closer
}

// NewWriter creates a writer over out. Unknown formats fall back to JSON.
func NewWriter(format Format, out io.Writer) *Writer {
	if format.IsUnknown() {
		format = FormatJSON
	}
	return &Writer{format: format, out: out}
}

// NewStdoutWriter creates a writer over standard output.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout creates a writer over the file at path, or over
// standard output when path is empty or "-".
func NewFileWriterOrStdout(format Format, path string) (*Writer, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "-" {
		return NewStdoutWriter(format), nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not create output file %q: %w", path, err)
	}
	w := NewWriter(format, f)
	w.closer = f
	return w, nil
}

// Serialize writes v to the output in the writer's format. Table and wide
// formats require v to implement Tabular.
func (w *Writer) Serialize(v any) error {
	switch w.format {
	case FormatJSON:
		raw, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("could not serialize to json: %w", err)
		}
		_, err = fmt.Fprintln(w.out, string(raw))
		return err
	case FormatYAML:
		raw, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("could not serialize to yaml: %w", err)
		}
		_, err = w.out.Write(raw)
		return err
	case FormatTable, FormatWide:
		tab, ok := v.(Tabular)
		if !ok {
			return fmt.Errorf("format %q is not supported for %T", w.format, v)
		}
		return w.writeTable(tab, w.format == FormatWide)
	}
	return fmt.Errorf("unknown output format: %q", w.format)
}

func (w *Writer) writeTable(tab Tabular, wide bool) error {
	tw := tabwriter.NewWriter(w.out, 0, 4, 2, ' ', 0)

	header := tab.Header(wide)
	for i, h := range header {
		header[i] = strings.ToUpper(h)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range tab.Rows(wide) {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// Close releases the underlying file when the writer targets one. It is safe
// to call multiple times and on stdout writers.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	c := w.closer
	w.closer = nil
	return c.Close()
}

// OrNone renders optional string values for table cells.
func OrNone(s string) string {
	if s == "" {
		return "<none>"
	}
	return s
}
