package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperrors "github.com/matzehuels/aepplanner/pkg/errors"
)

// Format is a project file encoding.
type Format string

// Supported project file formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported project file: %s (use .json, .toml or .yaml)", path)
}

// Read decodes a project in the given format.
func Read(r io.Reader, f Format) (State, error) {
	var st State
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&st)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&st)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&st)
		if err == io.EOF {
			err = nil
		}
	default:
		return State{}, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported project format: %q", f)
	}
	if err != nil {
		return State{}, apperrors.Wrap(apperrors.ErrCodeInvalidProject, err, "decode %s project", f)
	}
	return Load(st), nil
}

// Write encodes a project in the given format.
func Write(st State, w io.Writer, f Format) error {
	st = Load(st)
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(st); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(st); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(st); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported project format: %q", f)
	}
	return nil
}

// Marshal encodes a project to bytes.
func Marshal(st State, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(st, &buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadFile reads a project file, choosing the format by extension.
func ReadFile(path string) (State, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return State{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "project file not found: %s", path)
		}
		return State{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return Read(file, f)
}

// WriteFile writes a project file, choosing the format by extension.
// The file is created with 0644 permissions.
func WriteFile(st State, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(st, file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
