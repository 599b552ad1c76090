package traffic

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/network"
)

func TestReadMatrix(t *testing.T) {
	// ids are deliberately unsorted; rows map to 2, 5, 9.
	ids := []int{9, 2, 5}
	matrix := strings.Join([]string{
		"0, 10, 0",
		"3.5, 7, x, 99",
		", -1, 0, 4",
		"1, 1, 1",
	}, "\n")

	got, err := ReadMatrix(strings.NewReader(matrix), ids)
	if err != nil {
		t.Fatal(err)
	}
	want := []network.Demand{
		{From: 2, To: 5, Volume: 10},
		{From: 5, To: 2, Volume: 3.5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadMatrix() = %+v, want %+v", got, want)
	}
	if ids[0] != 9 {
		t.Error("ReadMatrix sorted the caller's slice")
	}
}

func TestReadMatrixSkipsDiagonal(t *testing.T) {
	got, err := ReadMatrix(strings.NewReader("5,1\n2,5\n"), []int{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	want := []network.Demand{{From: 0, To: 1, Volume: 1}, {From: 1, To: 0, Volume: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadMatrix() = %+v, want %+v", got, want)
	}
}

func TestReadMatrixMalformed(t *testing.T) {
	_, err := ReadMatrix(strings.NewReader("1,\"unterminated\n"), []int{0, 1})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestDemandLists(t *testing.T) {
	want := []network.Demand{{From: 0, To: 1, Volume: 2.5}, {From: 3, To: 0, Volume: 1}}

	var buf bytes.Buffer
	if err := WriteJSON(want, &buf); err != nil {
		t.Fatal(err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadJSON() = %+v, want %+v", got, want)
	}

	yml := "- {from_id: 0, to_id: 1, volume: 2.5}\n- from_id: 3\n  to_id: 0\n  volume: 1\n"
	got, err = ReadYAML(strings.NewReader(yml))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadYAML() = %+v, want %+v", got, want)
	}

	if _, err := ReadJSON(strings.NewReader("{")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadJSON(bad) error = %v, want INVALID_FORMAT", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "matrix.csv")
	if err := os.WriteFile(csvPath, []byte("0,4\n0,0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := Load(csvPath, []int{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Volume != 4 {
		t.Errorf("Load(csv) = %+v", got)
	}

	jsonPath := filepath.Join(dir, "demands.json")
	if err := os.WriteFile(jsonPath, []byte(`[{"from_id":1,"to_id":0,"volume":3}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err = Load(jsonPath, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].From != 1 {
		t.Errorf("Load(json) = %+v", got)
	}

	if _, err := Load(filepath.Join(dir, "m.xlsx"), nil); err == nil {
		t.Error("Load(missing .xlsx) succeeded")
	}
}
