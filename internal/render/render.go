// Package render serializes an assembled OpenAPI document and writes it
// to disk without ever leaving a partial artifact behind.
package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/invopop/yaml"
)

// Format selects the on-disk representation.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath derives the output format from a file extension,
// defaulting to YAML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Marshal renders the document in the requested format. YAML output goes
// through the document's JSON form so field ordering follows the
// OpenAPI object model rather than Go struct layout.
func Marshal(doc *openapi3.T, format Format) ([]byte, error) {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	switch format {
	case FormatJSON:
		var buf any
		if err := json.Unmarshal(raw, &buf); err != nil {
			return nil, fmt.Errorf("reparse document: %w", err)
		}
		out, err := json.MarshalIndent(buf, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("indent document: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.JSONToYAML(raw)
		if err != nil {
			return nil, fmt.Errorf("convert to yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// WriteFile renders the document and writes it atomically: the bytes go
// to a temp file in the target directory first and are renamed into
// place, so a failing run never persists a half-written spec.
func WriteFile(doc *openapi3.T, path string, format Format) error {
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("finalize output: %w", err)
	}
	return nil
}
