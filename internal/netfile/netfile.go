// Package netfile reads network definitions from YAML files. JSON documents
// are accepted too, since YAML is a superset of JSON.
package netfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Harshitk-cp/bayes/internal/bayesnet"
	"github.com/Harshitk-cp/bayes/internal/domain"
	"gopkg.in/yaml.v3"
)

var ErrEmptyFile = errors.New("network file is empty")

// Parse decodes a single network definition. Unknown fields are rejected.
func Parse(r io.Reader) (*domain.NetworkDefinition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var def domain.NetworkDefinition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("decode network: %w", err)
	}
	return &def, nil
}

// Load reads and validates the network stored at path.
func Load(path string) (*bayesnet.Net, *domain.NetworkDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open network file: %w", err)
	}
	defer f.Close()

	def, err := Parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	net, err := bayesnet.FromDefinition(def)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return net, def, nil
}

// Write encodes def as YAML.
func Write(w io.Writer, def *domain.NetworkDefinition) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(def); err != nil {
		return fmt.Errorf("encode network: %w", err)
	}
	return enc.Close()
}
