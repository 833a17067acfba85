package workbook

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"bottin/internal/domain"
	"bottin/internal/ports"
	"bottin/internal/reader"
)

// RegistrySource implements WorkbookSource via registered format strategies,
// resolved from the workbook's file extension.
type RegistrySource struct {
	registry *reader.Registry
	logger   *slog.Logger
}

var _ ports.WorkbookSource = (*RegistrySource)(nil)

// NewRegistrySource wires the format registry.
func NewRegistrySource(reg *reader.Registry, log *slog.Logger) *RegistrySource {
	return &RegistrySource{registry: reg, logger: log}
}

// Extract resolves the format strategy for path and reads the sheet.
func (s *RegistrySource) Extract(ctx context.Context, path, sheet string) (domain.Table, error) {
	if s.registry == nil {
		return domain.Table{}, fmt.Errorf("workbook format registry is not configured")
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	strategy, err := s.registry.Resolve(format)
	if err != nil {
		return domain.Table{}, fmt.Errorf("workbook %s: %w", path, err)
	}

	s.debug("extract sheet", "path", path, "sheet", sheet, "format", format)

	table, err := strategy.Read(ctx, reader.Request{Path: path, Sheet: sheet})
	if err != nil {
		return domain.Table{}, fmt.Errorf("read workbook %s: %w", path, err)
	}

	s.debug("extract done", "rows", len(table.Rows), "columns", len(table.Header))
	return table, nil
}

func (s *RegistrySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
