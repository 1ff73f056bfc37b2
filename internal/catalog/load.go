package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Decode reads a YAML catalog definition. Unknown keys are rejected so typos
// in the data file fail loudly instead of silently dropping a field.
func Decode(r io.Reader) (Data, error) {
	var data Data
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return Data{}, nil
		}
		return Data{}, fmt.Errorf("parse catalog: %w", err)
	}
	return data, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(b []byte) (Data, error) {
	return Decode(bytes.NewReader(b))
}

// LoadFile reads and decodes the catalog file at path.
func LoadFile(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
