package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/netplan/pkg/capacity"
	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/evaluate"
	"github.com/matzehuels/netplan/pkg/network"
	"github.com/matzehuels/netplan/pkg/project"
	"github.com/matzehuels/netplan/pkg/traffic"
)

func samplePlan(name string) *Plan {
	net := &network.Network{
		Nodes: []network.Node{
			{ID: 0, Name: "a", Position: network.Point{X: 0, Y: 0}, Cost: 5},
			{ID: 1, Name: "b", Position: network.Point{X: 0, Y: 100}, Cost: 5},
		},
		Edges: []network.Edge{
			{From: 0, To: 1, Capacity: 8, Length: 100, Cost: 150, Flow: 8, Delay: network.Saturated},
		},
	}
	report := evaluate.Report{
		TotalCost:      160,
		NodeCost:       10,
		SaturatedLinks: 1,
		ActiveLinks:    1,
		AvgUtilization: 1,
		Links: []evaluate.LinkReport{
			{From: 0, To: 1, FromName: "a", ToName: "b", Flow: 8, Capacity: 8, Utilization: 1,
				Delay: network.Saturated, Cost: 150, Level: capacity.LoadOverload},
		},
	}
	return NewPlan(name, project.FromNetwork(net),
		[]traffic.Demand{{From: 0, To: 1, Volume: 8}}, report,
		[]errors.Warning{errors.UnroutedDemand(1, 0, 2)})
}

// exercise runs the shared Store contract against a backend.
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	older := samplePlan("older")
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	newer := samplePlan("newer")

	require.NoError(t, s.Put(ctx, older))
	require.NoError(t, s.Put(ctx, newer))

	got, err := s.Get(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, newer.Name, got.Name)
	assert.True(t, newer.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, newer.Project, got.Project)
	assert.Equal(t, newer.Demands, got.Demands)
	assert.Equal(t, newer.Warnings, got.Warnings)
	require.Len(t, got.Report.Links, 1)
	assert.True(t, got.Report.Links[0].Saturated())
	assert.Equal(t, capacity.LoadOverload, got.Report.Links[0].Level)

	list, err := s.List(ctx)
	require.NoError(t, err)
	var ids []string
	for _, sum := range list {
		if sum.ID == older.ID || sum.ID == newer.ID {
			ids = append(ids, sum.ID)
		}
	}
	assert.Equal(t, []string{newer.ID, older.ID}, ids, "newest first")

	newer.Name = "renamed"
	require.NoError(t, s.Put(ctx, newer))
	got, err = s.Get(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)

	require.NoError(t, s.Delete(ctx, older.ID))
	require.NoError(t, s.Delete(ctx, newer.ID))

	_, err = s.Get(ctx, older.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "Get after Delete: %v", err)
	err = s.Delete(ctx, older.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "Delete twice: %v", err)

	_, err = s.Get(ctx, "../../etc/passwd")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "Get(bad id): %v", err)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()
	exercise(t, s)
}

func TestFileStoreSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	p := samplePlan("kept")
	require.NoError(t, s.Put(context.Background(), p))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("x"), 0o600))
	broken := samplePlan("broken")
	require.NoError(t, os.WriteFile(filepath.Join(dir, broken.ID+".json"), []byte("{"), 0o600))

	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)
	assert.Equal(t, 2, list[0].Nodes)
	assert.Equal(t, 1, list[0].Links)
	assert.Equal(t, 1, list[0].Warnings)
	assert.Equal(t, 160.0, list[0].TotalCost)
}

func TestFileStoreDefaultDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	s, err := NewFileStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(os.Getenv("XDG_DATA_HOME"), "netplan", "plans"), s.Dir())
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("NETPLAN_TEST_MONGO")
	if uri == "" {
		t.Skip("NETPLAN_TEST_MONGO not set")
	}
	s, err := DialMongo(context.Background(), MongoOptions{URI: uri, Database: "netplan_test"})
	require.NoError(t, err)
	defer s.Close()
	exercise(t, s)
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID(samplePlan("x").ID))
	for _, id := range []string{"", "plan-1", "../x"} {
		assert.True(t, errors.Is(ValidateID(id), errors.ErrCodeInvalidInput), "ValidateID(%q)", id)
	}
}
