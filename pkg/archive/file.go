package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	apperr "github.com/matzehuels/pagefit/pkg/errors"
	"github.com/matzehuels/pagefit/pkg/report"
)

// FileStore is a file-based report store for CLI use.
// Reports are stored as JSON files in one directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store rooted at baseDir.
// If baseDir is empty, defaults to ~/.local/share/pagefit/reports/.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".local", "share", "pagefit", "reports")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string { return s.baseDir }

func (s *FileStore) reportPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Save(ctx context.Context, r *report.Report) error {
	if err := checkSave(r); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(s.reportPath(r.ID), data, 0600); err != nil {
		return apperr.Wrap(apperr.ErrCodeStorage, err, "write report %s", r.ID)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*report.Report, error) {
	if err := apperr.ValidateReportID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.reportPath(id), id)
}

func (s *FileStore) read(path, id string) (*report.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, apperr.Wrap(apperr.ErrCodeStorage, err, "read report %s", id)
	}
	var r report.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeStorage, err, "parse report %s", id)
	}
	return &r, nil
}

func (s *FileStore) List(ctx context.Context, limit int) ([]*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeStorage, err, "list reports")
	}
	var out []*report.Report
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		r, err := s.read(filepath.Join(s.baseDir, name), strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		out = append(out, r)
	}
	newestFirst(out)
	if n := listLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *FileStore) Close() error { return nil }
