// File: lixenwraith/params/io.go
package params

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// fileParameter is the on-disk record written by WriteParameters.
type fileParameter struct {
	Name         string     `toml:"name" yaml:"name" json:"name"`
	Value        string     `toml:"value" yaml:"value" json:"value"`
	Type         string     `toml:"type,omitempty" yaml:"type,omitempty" json:"type,omitempty"`
	Version      int64      `toml:"version,omitempty" yaml:"version,omitempty" json:"version,omitempty"`
	ARN          string     `toml:"arn,omitempty" yaml:"arn,omitempty" json:"arn,omitempty"`
	LastModified *time.Time `toml:"last_modified,omitempty" yaml:"last_modified,omitempty" json:"last_modified,omitempty"`
}

type tomlDocument struct {
	Parameters []fileParameter `toml:"parameter"`
}

type listDocument struct {
	Parameters []fileParameter `yaml:"parameters" json:"parameters"`
}

// MarshalParameters encodes params as a list document in format.
// Parameters are written in name order.
func MarshalParameters(params []Parameter, format Format) ([]byte, error) {
	sorted := make([]Parameter, len(params))
	copy(sorted, params)
	SortParameters(sorted)

	records := make([]fileParameter, len(sorted))
	for i, p := range sorted {
		records[i] = fileParameter{Name: p.Name, Value: p.Value, Type: p.Type, Version: p.Version, ARN: p.ARN}
		if !p.LastModified.IsZero() {
			t := p.LastModified.UTC()
			records[i].LastModified = &t
		}
	}

	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(tomlDocument{Parameters: records}); err != nil {
			return nil, fmt.Errorf("failed to marshal parameters to TOML: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		data, err := yaml.Marshal(listDocument{Parameters: records})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal parameters to YAML: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(listDocument{Parameters: records}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal parameters to JSON: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, ErrUnknownFormat
	}
}

// WriteParameters atomically writes params to path. The format is taken
// from the file extension.
func WriteParameters(path string, params []Parameter) error {
	format := detectFileFormat(path)
	if format == FormatAuto {
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	data, err := MarshalParameters(params, format)
	if err != nil {
		return err
	}
	return atomicWriteFile(path, data)
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	// Parameter files may hold decrypted secrets
	if err := os.Chmod(tempPath, 0600); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
