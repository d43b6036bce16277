package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "github.com/docrun-dev/docrun/internal/model"
)

const summaryFileName = "summary.yaml"

// ReportStore persists run summaries so a finished run can be re-displayed.
type ReportStore interface {
	SaveSummary(dir m.Path, summary m.RunSummary) error
	LoadSummary(dir m.Path) (m.RunSummary, error)
}

// LocalReportStore stores summaries as YAML files on the local filesystem.
type LocalReportStore struct{}

// NewLocalReportStore constructs a LocalReportStore.
func NewLocalReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// SaveSummary writes the summary into dir, creating it when needed.
func (s *LocalReportStore) SaveSummary(dir m.Path, summary m.RunSummary) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}

	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode run summary: %w", err)
	}

	path := filepath.Join(string(dir), summaryFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write run summary: %w", err)
	}

	return nil
}

// LoadSummary reads a previously saved summary from dir.
func (s *LocalReportStore) LoadSummary(dir m.Path) (m.RunSummary, error) {
	path := filepath.Join(string(dir), summaryFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return m.RunSummary{}, fmt.Errorf("read run summary: %w", err)
	}

	var summary m.RunSummary
	if err := yaml.Unmarshal(data, &summary); err != nil {
		return m.RunSummary{}, fmt.Errorf("decode run summary: %w", err)
	}

	return summary, nil
}
