package project

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/network"
)

// ReadJSON decodes a JSON project from r.
//
// The decoded network is validated: duplicate node ids, links to unknown
// nodes, duplicate links and negative or NaN values are rejected with a
// coded input error. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*network.Network, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode project")
	}
	return doc.Network()
}

// ReadYAML decodes a YAML project from r. It validates like [ReadJSON].
func ReadYAML(r io.Reader) (*network.Network, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode project")
	}
	return doc.Network()
}

// Read decodes a project in the given format.
func Read(r io.Reader, format Format) (*network.Network, error) {
	if format == FormatYAML {
		return ReadYAML(r)
	}
	return ReadJSON(r)
}

// Import reads the project file at path. The format follows the file
// extension.
func Import(path string) (*network.Network, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	net, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return net, nil
}
