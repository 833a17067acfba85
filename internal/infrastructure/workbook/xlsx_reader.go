package workbook

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/xuri/excelize/v2"

	"bottin/internal/domain"
	"bottin/internal/reader"
)

// XLSXReader extracts one worksheet of an .xlsx workbook into a Table.
// Cells carrying a hyperlink yield the link target URL, not the display
// label, so downstream consumers never lose the destination behind a
// friendly "CV" or "ORCID" label.
type XLSXReader struct{}

var _ reader.Reader = (*XLSXReader)(nil)

// NewXLSXReader builds the xlsx strategy.
func NewXLSXReader() *XLSXReader {
	return &XLSXReader{}
}

// Name identifies the strategy inside the registry.
func (x *XLSXReader) Name() string {
	return "xlsx"
}

// Read loads the requested sheet. The sheet must exist: a missing sheet is a
// hard failure naming the alternatives, never a silent fallback.
func (x *XLSXReader) Read(ctx context.Context, req reader.Request) (domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return domain.Table{}, err
	}

	f, err := excelize.OpenFile(req.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Table{}, fmt.Errorf("open workbook %s: %w", req.Path, err)
		}
		return domain.Table{}, fmt.Errorf("%w: %s: %v", domain.ErrWorkbookFormat, req.Path, err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(req.Sheet)
	if err != nil || idx < 0 {
		return domain.Table{}, fmt.Errorf("%w: %q (available: %s)",
			domain.ErrSheetNotFound, req.Sheet, strings.Join(f.GetSheetList(), ", "))
	}

	rows, err := f.GetRows(req.Sheet)
	if err != nil {
		return domain.Table{}, fmt.Errorf("%w: sheet %q: %v", domain.ErrWorkbookFormat, req.Sheet, err)
	}
	if len(rows) == 0 {
		return domain.Table{}, nil
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	resolved := make([][]string, len(rows))
	for r, row := range rows {
		cells := make([]string, width)
		for c := 0; c < width; c++ {
			var value string
			if c < len(row) {
				value = row[c]
			}
			if target := hyperlinkTarget(f, req.Sheet, c, r); target != "" {
				value = target
			}
			cells[c] = strings.TrimSpace(value)
		}
		resolved[r] = cells
	}

	return domain.Table{Header: resolved[0], Rows: resolved[1:]}, nil
}

// hyperlinkTarget returns the link destination of a cell, or "" when the
// cell has none. Coordinates are zero-based.
func hyperlinkTarget(f *excelize.File, sheet string, col, row int) string {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return ""
	}
	ok, target, err := f.GetCellHyperLink(sheet, cell)
	if err != nil || !ok {
		return ""
	}
	return target
}
