// Package traffic loads traffic demands for a planning run.
//
// Demands come either as an explicit list, in JSON or YAML:
//
//	[{"from_id": 0, "to_id": 3, "volume": 10}]
//
// or as a headerless traffic matrix in CSV form. Row i and column j of the
// matrix refer to the i-th and j-th node id in ascending order. The
// diagonal is skipped, only numeric cells greater than zero become demands,
// and rows or columns beyond the node count are ignored.
package traffic

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/network"
)

// Demand is the serialized form of a traffic demand.
type Demand struct {
	From   int     `json:"from_id" yaml:"from_id" bson:"from_id" validate:"gte=0"`
	To     int     `json:"to_id" yaml:"to_id" bson:"to_id" validate:"gte=0"`
	Volume float64 `json:"volume" yaml:"volume" bson:"volume" validate:"gte=0"`
}

// ToDemands converts serialized demands.
func ToDemands(in []Demand) []network.Demand {
	out := make([]network.Demand, len(in))
	for i, d := range in {
		out[i] = network.Demand{From: d.From, To: d.To, Volume: d.Volume}
	}
	return out
}

// FromDemands converts demands to their serialized form.
func FromDemands(in []network.Demand) []Demand {
	out := make([]Demand, len(in))
	for i, d := range in {
		out[i] = Demand{From: d.From, To: d.To, Volume: d.Volume}
	}
	return out
}

// ReadJSON decodes a JSON demand list.
func ReadJSON(r io.Reader) ([]network.Demand, error) {
	var in []Demand
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode demands")
	}
	return ToDemands(in), nil
}

// ReadYAML decodes a YAML demand list.
func ReadYAML(r io.Reader) ([]network.Demand, error) {
	var in []Demand
	if err := yaml.NewDecoder(r).Decode(&in); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode demands")
	}
	return ToDemands(in), nil
}

// WriteJSON encodes demands as an indented JSON list.
func WriteJSON(demands []network.Demand, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromDemands(demands)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadMatrix decodes a headerless CSV traffic matrix. Node ids are mapped
// to rows and columns in ascending order.
//
// Empty and non-numeric cells are skipped, as are values ≤ 0. Rows may have
// different lengths.
func ReadMatrix(r io.Reader, nodeIDs []int) ([]network.Demand, error) {
	ids := slices.Clone(nodeIDs)
	slices.Sort(ids)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var demands []network.Demand
	for row := 0; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read traffic matrix")
		}
		if row >= len(ids) {
			break
		}
		for col, cell := range record {
			if col >= len(ids) {
				break
			}
			if row == col {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil || !(v > 0) || math.IsInf(v, 0) {
				continue
			}
			demands = append(demands, network.Demand{From: ids[row], To: ids[col], Volume: v})
		}
	}
	return demands, nil
}

// Load reads demands from path. Files ending in .csv are traffic matrices
// over nodeIDs; .json, .yaml and .yml files are demand lists.
func Load(path string, nodeIDs []int) ([]network.Demand, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var demands []network.Demand
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		demands, err = ReadMatrix(f, nodeIDs)
	case ".json":
		demands, err = ReadJSON(f)
	case ".yaml", ".yml":
		demands, err = ReadYAML(f)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported demand file %q (want .csv, .json, .yaml or .yml)", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return demands, nil
}
