package file

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/axtree/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding of a saved document.
type Format string

// Supported formats.
const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from the file extension. XML is the default.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatXML
	}
}

// Saver implements ports.DocumentSaver using the local filesystem.
type Saver struct {
	// BaseDir resolves relative names. Empty means the working directory.
	BaseDir string
}

// NewSaver creates a new Saver resolving relative names against baseDir.
func NewSaver(baseDir string) *Saver {
	return &Saver{BaseDir: baseDir}
}

func (s *Saver) resolve(name string) string {
	if s.BaseDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.BaseDir, name)
}

// Encode serializes the document in the given format.
func Encode(doc *domain.Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		data, err := xml.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		out := append([]byte(xml.Header), data...)
		return append(out, '\n'), nil
	}
}

// Decode parses a document in the given format.
func Decode(data []byte, format Format) (*domain.Document, error) {
	var doc domain.Document
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = xml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save writes the document to name atomically, picking the encoding from
// the extension. It writes to a temporary file first, syncs, and then
// renames it to the destination.
func (s *Saver) Save(ctx context.Context, doc *domain.Document, name string) error {
	if name == "" {
		return errors.New("output file name cannot be empty")
	}
	if doc == nil {
		return errors.New("document cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	destPath := s.resolve(name)
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure output directory: %w", err)
	}

	data, err := Encode(doc, FormatOf(name))
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	// Same directory keeps the rename on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "tmp-"+filepath.Base(destPath)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Windows refuses to rename over an existing file.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads a document saved by Save.
func (s *Saver) Load(ctx context.Context, name string) (*domain.Document, error) {
	if name == "" {
		return nil, errors.New("file name cannot be empty")
	}
	data, err := os.ReadFile(s.resolve(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read document file: %w", err)
	}
	doc, err := Decode(data, FormatOf(name))
	if err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", name, err)
	}
	return doc, nil
}
