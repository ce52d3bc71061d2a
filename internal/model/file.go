package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gostatics/internal/structure"
)

// Extension is the default file extension of saved beams.
const Extension = ".bm"

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Marshal encodes r as YAML when path has a .yaml or .yml extension, and as
// indented JSON otherwise.
func Marshal(path string, r *Record) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(r)
	}
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Unmarshal decodes data in the format implied by path. Unknown fields are
// rejected.
func Unmarshal(path string, data []byte) (*Record, error) {
	var r Record
	if isYAML(path) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&r); err != nil {
			return nil, err
		}
		return &r, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Save writes b to path.
func Save(path string, b *structure.Beam) error {
	data, err := Marshal(path, FromBeam(b))
	if err != nil {
		return fmt.Errorf("failed to encode beam: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// LoadRecord reads the record stored at path without building it.
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	r, err := Unmarshal(path, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return r, nil
}

// Load reads and rebuilds the beam stored at path.
func Load(path string) (*structure.Beam, error) {
	r, err := LoadRecord(path)
	if err != nil {
		return nil, err
	}
	b, err := r.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return b, nil
}
