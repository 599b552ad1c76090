// Package store persists evaluated plans.
//
// A [Plan] bundles the planned network, the demands it was planned for, the
// evaluation report and any warnings. Backends implement [Store]:
//
//   - [FileStore]: one JSON file per plan, for the CLI
//   - [MongoStore]: a MongoDB collection, for the API server
//
// Plans are immutable once stored; Put with an existing id replaces the
// record.
package store

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/evaluate"
	"github.com/matzehuels/netplan/pkg/project"
	"github.com/matzehuels/netplan/pkg/traffic"
)

// Store persists plans.
type Store interface {
	// Put inserts or replaces a plan.
	Put(ctx context.Context, p *Plan) error

	// Get returns a plan by id, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Plan, error)

	// List returns summaries of all plans, newest first.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a plan, or returns a NOT_FOUND error.
	Delete(ctx context.Context, id string) error

	Close() error
}

// Plan is a stored planning run.
type Plan struct {
	ID        string           `json:"id" yaml:"id" bson:"_id"`
	Name      string           `json:"name" yaml:"name" bson:"name"`
	CreatedAt time.Time        `json:"created_at" yaml:"created_at" bson:"created_at"`
	Project   project.Document `json:"project" yaml:"project" bson:"project"`
	Demands   []traffic.Demand `json:"demands" yaml:"demands" bson:"demands"`
	Report    evaluate.Report  `json:"report" yaml:"report" bson:"report"`
	Warnings  []errors.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty" bson:"warnings,omitempty"`
}

// NewPlan creates a plan record with a fresh id.
func NewPlan(name string, doc project.Document, demands []traffic.Demand, report evaluate.Report, warnings []errors.Warning) *Plan {
	return &Plan{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Project:   doc,
		Demands:   demands,
		Report:    report,
		Warnings:  warnings,
	}
}

// Summary is the listing form of a plan.
type Summary struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Nodes     int       `json:"nodes" yaml:"nodes"`
	Links     int       `json:"links" yaml:"links"`
	TotalCost float64   `json:"total_cost" yaml:"total_cost"`
	MaxDelay  float64   `json:"max_delay" yaml:"max_delay"`
	Warnings  int       `json:"warnings" yaml:"warnings"`
}

// Summary returns the listing form of the plan.
func (p *Plan) Summary() Summary {
	return Summary{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		Nodes:     len(p.Project.Nodes),
		Links:     len(p.Project.Edges),
		TotalCost: p.Report.TotalCost,
		MaxDelay:  p.Report.MaxDelay,
		Warnings:  len(p.Warnings),
	}
}

// ValidateID checks that id is a plan id. Ids are UUIDs, which also keeps
// them safe to use as file names.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid plan id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "plan %s not found", id)
}

func sortSummaries(s []Summary) {
	slices.SortFunc(s, func(a, b Summary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
