package sheets

import (
	"context"
	"sync"

	"github.com/patrio-app/patrio/internal/model"
)

// MockExporter is a test double for the Exporter interface.
type MockExporter struct {
	ExportFn func(ctx context.Context, summary model.CloseSummary) error

	mu       sync.Mutex
	Exported []model.CloseSummary
}

// Export implements Exporter.
func (m *MockExporter) Export(ctx context.Context, summary model.CloseSummary) error {
	m.mu.Lock()
	m.Exported = append(m.Exported, summary)
	m.mu.Unlock()

	if m.ExportFn != nil {
		return m.ExportFn(ctx, summary)
	}
	return nil
}
