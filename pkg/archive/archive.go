// Package archive stores mapping reports of finished conversions.
//
// Reports are written once and looked up by ID. Three backends implement
// [Store]:
//   - [MemoryStore]: process-local, for tests and the default server
//   - [FileStore]: one JSON file per report, used by the CLI
//   - [MongoStore]: a MongoDB collection for shared deployments
//
// # Usage
//
//	store := archive.NewMemoryStore()
//	rep := report.New(res, "design.json")
//	if err := store.Save(ctx, rep); err != nil {
//	    return err
//	}
//	got, err := store.Get(ctx, rep.ID)
package archive

import (
	"context"
	"sort"

	apperr "github.com/matzehuels/pagefit/pkg/errors"
	"github.com/matzehuels/pagefit/pkg/report"
)

// DefaultListLimit bounds List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Store is the interface for report archive backends.
type Store interface {
	// Save stores a report. The report must carry an ID.
	Save(ctx context.Context, r *report.Report) error

	// Get returns the report with the given ID, or a REPORT_NOT_FOUND error.
	Get(ctx context.Context, id string) (*report.Report, error)

	// List returns up to limit reports, newest first.
	List(ctx context.Context, limit int) ([]*report.Report, error)

	// Close releases backend resources.
	Close() error
}

func checkSave(r *report.Report) error {
	if r == nil {
		return apperr.New(apperr.ErrCodeInvalidInput, "nil report")
	}
	return apperr.ValidateReportID(r.ID)
}

func notFound(id string) error {
	return apperr.New(apperr.ErrCodeReportNotFound, "report %s not found", id)
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// newestFirst sorts reports by creation time, newest first, breaking ties by ID.
func newestFirst(rs []*report.Report) {
	sort.Slice(rs, func(i, j int) bool {
		if !rs[i].CreatedAt.Equal(rs[j].CreatedAt) {
			return rs[i].CreatedAt.After(rs[j].CreatedAt)
		}
		return rs[i].ID < rs[j].ID
	})
}
