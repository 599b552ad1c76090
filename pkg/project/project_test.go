package project

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/network"
)

func planned() *network.Network {
	return &network.Network{
		Nodes: []network.Node{
			{ID: 0, Name: "Berlin", Position: network.Point{X: 120.25, Y: 80}, Cost: 500},
			{ID: 1, Name: "München", Position: network.Point{X: 300, Y: 410.5}, Cost: 0.1},
			{ID: 4, Name: "Hamburg \"Nord\"", Position: network.Point{X: -3, Y: 1e-7}, Cost: 0},
		},
		Edges: []network.Edge{
			{From: 0, To: 1, Capacity: 16, Length: 354.9014, Cost: 650, Flow: 10.5, Delay: 2.0000000001},
			{From: 4, To: 1, Capacity: 8, Length: 1.0 / 3, Cost: 150, Flow: 8, Delay: network.Saturated},
			{From: 0, To: 4, Length: 140},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			want := planned()
			var buf bytes.Buffer
			if err := Write(want, &buf, format); err != nil {
				t.Fatalf("Write: %v", err)
			}
			got, err := Read(&buf, format)
			if err != nil {
				t.Fatalf("Read: %v\n%s", err, buf.String())
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
			}
		})
	}
}

func TestWriteJSONSaturated(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(planned(), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"delay": "inf"`) {
		t.Errorf("saturated delay not written as \"inf\":\n%s", out)
	}
	if !strings.Contains(out, `"from_id": 0`) || !strings.Contains(out, `"position": [`) {
		t.Errorf("unexpected field layout:\n%s", out)
	}
}

func TestReadJSONInfinitySpellings(t *testing.T) {
	for _, s := range []string{`"inf"`, `"Infinity"`, `"+Inf"`} {
		doc := `{"nodes":[{"id":0,"name":"a","position":[0,0],"cost":0},{"id":1,"name":"b","position":[1,0],"cost":0}],
			"edges":[{"from_id":0,"to_id":1,"capacity":2,"length":1,"cost":0,"flow":2,"delay":` + s + `}]}`
		net, err := ReadJSON(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if !network.IsSaturated(net.Edges[0].Delay) {
			t.Errorf("%s decoded as %v", s, net.Edges[0].Delay)
		}
	}
}

func TestReadValidates(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{
			name: "malformed",
			doc:  `{"nodes": [`,
			code: errors.ErrCodeInvalidFormat,
		},
		{
			name: "bad position",
			doc:  `{"nodes":[{"id":0,"name":"a","position":[1]}],"edges":[]}`,
			code: errors.ErrCodeInvalidFormat,
		},
		{
			name: "duplicate node",
			doc:  `{"nodes":[{"id":0,"name":"a","position":[0,0]},{"id":0,"name":"b","position":[1,1]}],"edges":[]}`,
			code: errors.ErrCodeDuplicateNode,
		},
		{
			name: "unknown node",
			doc:  `{"nodes":[{"id":0,"name":"a","position":[0,0]}],"edges":[{"from_id":0,"to_id":7}]}`,
			code: errors.ErrCodeUnknownNode,
		},
		{
			name: "duplicate edge",
			doc: `{"nodes":[{"id":0,"name":"a","position":[0,0]},{"id":1,"name":"b","position":[1,1]}],
				"edges":[{"from_id":0,"to_id":1},{"from_id":1,"to_id":0}]}`,
			code: errors.ErrCodeDuplicateEdge,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.doc))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"net.json", "net.yaml", "net.yml"} {
		path := filepath.Join(dir, name)
		if err := Export(planned(), path); err != nil {
			t.Fatalf("Export(%s): %v", name, err)
		}
		got, err := Import(path)
		if err != nil {
			t.Fatalf("Import(%s): %v", name, err)
		}
		if !reflect.DeepEqual(got, planned()) {
			t.Errorf("Import(%s) mismatch", name)
		}
	}

	if err := Export(planned(), filepath.Join(dir, "net.xlsx")); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Export(.xlsx) error = %v, want UNSUPPORTED", err)
	}
	if _, err := Import(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Import(missing) succeeded")
	}
}
