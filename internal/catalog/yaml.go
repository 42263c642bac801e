package catalog

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML unit-table file. Unknown fields are rejected.
func ParseYAML(data []byte, path string) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Path: path, Message: "table file is empty"}
		}
		return nil, &LoadError{Path: path, Message: err.Error()}
	}
	if _, err := f.Definitions(); err != nil {
		return nil, &LoadError{Path: path, Message: err.Error()}
	}
	return &f, nil
}
