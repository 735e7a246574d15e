package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/buildversion/internal/domain/buildversion"
)

// Format represents the output format type.
type Format string

const (
	// FormatCPP emits static const char declarations for a C++ include.
	FormatCPP Format = "cpp"
	// FormatGo emits a gofmt-ed Go file with a const block.
	FormatGo Format = "go"
	// FormatPlain emits name=value lines.
	FormatPlain Format = "plain"
	// FormatYAML emits a YAML mapping in record order.
	FormatYAML Format = "yaml"
	// FormatJSON emits a JSON object.
	FormatJSON Format = "json"
)

// DefaultPackage is the package clause used by FormatGo when none is set.
const DefaultPackage = "version"

// generatedHeader marks Go output as generated for linters and reviewers.
const generatedHeader = "// Code generated by buildversion-gen. DO NOT EDIT.\n\n"

var (
	// ErrUnknownFormat is returned for formats outside Formats.
	ErrUnknownFormat = errors.New("unsupported format")
	// errInvalidName is returned when a record cannot be declared in source.
	errInvalidName = errors.New("record name is not a valid identifier")
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatCPP, FormatGo, FormatPlain, FormatYAML, FormatJSON}
}

// ParseFormat converts a user supplied name into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f.IsUnknown() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}

	return f, nil
}

// IsUnknown reports whether f is not one of Formats.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatCPP, FormatGo, FormatPlain, FormatYAML, FormatJSON:
		return false
	default:
		return true
	}
}

// Option configures a Writer.
type Option func(*Writer)

// WithPackage sets the package clause for FormatGo.
func WithPackage(name string) Option {
	return func(w *Writer) {
		w.pkg = name
	}
}

// Writer handles rendering of build header records to an output.
type Writer struct {
	format Format
	output io.Writer
	pkg    string
}

// NewWriter creates a new Writer with the specified format and output destination.
// If output is nil, os.Stdout will be used.
func NewWriter(format Format, output io.Writer, options ...Option) *Writer {
	if output == nil {
		output = os.Stdout
	}

	w := &Writer{
		format: format,
		output: output,
		pkg:    DefaultPackage,
	}

	for _, opt := range options {
		opt(w)
	}

	return w
}

// Render writes records in the configured format.
func (w *Writer) Render(records []buildversion.Record) error {
	switch w.format {
	case FormatCPP:
		return w.renderCPP(records)
	case FormatGo:
		return w.renderGo(records)
	case FormatPlain:
		return w.renderPlain(records)
	case FormatYAML:
		return w.renderYAML(records)
	case FormatJSON:
		return w.renderJSON(records)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, w.format)
	}
}

func (w *Writer) renderCPP(records []buildversion.Record) error {
	var b strings.Builder

	for _, r := range records {
		if !token.IsIdentifier(r.Name) {
			return fmt.Errorf("%w: %q", errInvalidName, r.Name)
		}

		fmt.Fprintf(&b, "static const char %s[] = %s;\n", r.Name, strconv.Quote(r.Value))
	}

	_, err := io.WriteString(w.output, b.String())

	return err
}

func (w *Writer) renderGo(records []buildversion.Record) error {
	if !token.IsIdentifier(w.pkg) {
		return fmt.Errorf("%w: package %q", errInvalidName, w.pkg)
	}

	var b bytes.Buffer

	b.WriteString(generatedHeader)
	fmt.Fprintf(&b, "package %s\n\nconst (\n", w.pkg)

	for _, r := range records {
		if !token.IsIdentifier(r.Name) {
			return fmt.Errorf("%w: %q", errInvalidName, r.Name)
		}

		fmt.Fprintf(&b, "%s = %s\n", r.Name, strconv.Quote(r.Value))
	}

	b.WriteString(")\n")

	src, err := format.Source(b.Bytes())
	if err != nil {
		return fmt.Errorf("format go source: %w", err)
	}

	_, err = w.output.Write(src)

	return err
}

func (w *Writer) renderPlain(records []buildversion.Record) error {
	var b strings.Builder

	for _, r := range records {
		b.WriteString(r.Name)
		b.WriteByte('=')
		b.WriteString(r.Value)
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w.output, b.String())

	return err
}

func (w *Writer) renderYAML(records []buildversion.Record) error {
	// A node keeps record order; a map would be sorted by key.
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, r := range records {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: r.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: r.Value, Style: yaml.DoubleQuotedStyle},
		)
	}

	encoder := yaml.NewEncoder(w.output)
	encoder.SetIndent(2)

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to serialize to YAML: %w", err)
	}

	return encoder.Close()
}

func (w *Writer) renderJSON(records []buildversion.Record) error {
	doc := make(map[string]string, len(records))
	for _, r := range records {
		doc[r.Name] = r.Value
	}

	encoder := json.NewEncoder(w.output)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to serialize to JSON: %w", err)
	}

	return nil
}
