package project

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/netplan/pkg/network"
)

// WriteJSON encodes net as indented JSON and writes it to w.
func WriteJSON(net *network.Network, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromNetwork(net)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes net as YAML and writes it to w.
func WriteYAML(net *network.Network, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromNetwork(net)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// Write encodes net in the given format.
func Write(net *network.Network, w io.Writer, format Format) error {
	if format == FormatYAML {
		return WriteYAML(net, w)
	}
	return WriteJSON(net, w)
}

// Export writes net to path, choosing the format from the extension.
func Export(net *network.Network, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(net, f, format)
}
