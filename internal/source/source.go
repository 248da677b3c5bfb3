// Package source reads LadderCore IR documents from JSON, YAML or CUE files.
//
// Documents are returned in decoded form (map[string]any and friends) and
// are not validated; pass them to the compiler for that. JSON numbers are
// kept as json.Number so integer spelling survives.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

// Error codes shared with the CLI (E0xx range).
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeReadFailed  = "E004" // File could not be read
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeParseFailed = "E006" // Content is not valid JSON/YAML/CUE
	ErrCodeUnsupported = "E008" // Unknown file extension
)

// LoadError reports a document that could not be read or decoded.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Format is a document encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", &LoadError{
			Code:    ErrCodeUnsupported,
			Message: fmt.Sprintf("unsupported IR file %s: expected .json, .yaml, .yml or .cue", path),
		}
	}
}

// Load reads and decodes the IR document at path.
func Load(path string) (any, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("IR file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}

	return Decode(data, format, path)
}

// Decode decodes one document. name is used in diagnostics only.
func Decode(data []byte, format Format, name string) (any, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data, name)
	case FormatYAML:
		return decodeYAML(data, name)
	case FormatCUE:
		return decodeCUE(data, name)
	default:
		return nil, &LoadError{Code: ErrCodeUnsupported, Message: fmt.Sprintf("unsupported format %q", format)}
	}
}

func decodeJSON(data []byte, name string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, parseError(name, "JSON", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("%s: unexpected data after JSON document", name)}
	}
	return v, nil
}

func decodeYAML(data []byte, name string) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, parseError(name, "YAML", err)
	}
	return normalizeYAML(v), nil
}

// normalizeYAML rewrites mappings with non-string keys as map[string]any.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, elem := range val {
			val[k] = normalizeYAML(elem)
		}
		return val
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, elem := range val {
			m[fmt.Sprint(k)] = normalizeYAML(elem)
		}
		return m
	case []any:
		for i, elem := range val {
			val[i] = normalizeYAML(elem)
		}
		return val
	default:
		return v
	}
}

func decodeCUE(data []byte, name string) (any, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(name))
	if err := value.Err(); err != nil {
		return nil, cueError(ErrCodeParseFailed, "building CUE value", err)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(ErrCodeParseFailed, "IR must be concrete", err)
	}

	data, err := value.MarshalJSON()
	if err != nil {
		return nil, cueError(ErrCodeParseFailed, "exporting CUE value", err)
	}
	return decodeJSON(data, name)
}

func parseError(name, format string, err error) *LoadError {
	return &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("%s: invalid %s: %v", name, format, err)}
}

// cueError converts a CUE error, keeping the first source position.
func cueError(code, context string, err error) *LoadError {
	loadErr := &LoadError{Code: code, Message: fmt.Sprintf("%s: %v", context, err)}
	if positions := cueerrors.Positions(err); len(positions) > 0 {
		loadErr.Pos = positions[0]
	}
	return loadErr
}

// Find returns every IR file under dir with a supported extension, in walk order.
func Find(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if _, ferr := FormatFor(path); ferr == nil {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
