package ports

import (
	"context"

	"bottin/internal/domain"
	"bottin/internal/redact"
)

// WorkbookSource extracts the complete member table from a workbook sheet.
type WorkbookSource interface {
	Extract(ctx context.Context, path, sheet string) (domain.Table, error)
}

// TableStore reads and writes CSV-shaped tables on local storage. Write
// overwrites any existing file at the destination path.
type TableStore interface {
	Read(ctx context.Context, path string) (domain.Table, error)
	Write(ctx context.Context, path string, table domain.Table) error
}

// Notifier pushes rebuild outcomes to an operator channel (Telegram, etc.).
// Implementations own the message formatting; callers hand over the raw
// consent counts of the run.
type Notifier interface {
	PublishRebuild(ctx context.Context, runID string, summary redact.Summary) error
}
