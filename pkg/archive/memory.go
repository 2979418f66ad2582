package archive

import (
	"context"
	"sync"

	apperr "github.com/matzehuels/pagefit/pkg/errors"
	"github.com/matzehuels/pagefit/pkg/report"
)

// MemoryStore keeps reports in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]*report.Report
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]*report.Report)}
}

func (s *MemoryStore) Save(ctx context.Context, r *report.Report) error {
	if err := checkSave(r); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.ID] = r
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*report.Report, error) {
	if err := apperr.ValidateReportID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, notFound(id)
	}
	return r, nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]*report.Report, error) {
	s.mu.RLock()
	out := make([]*report.Report, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, r)
	}
	s.mu.RUnlock()

	newestFirst(out)
	if n := listLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Len returns the number of stored reports.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}

func (s *MemoryStore) Close() error { return nil }
