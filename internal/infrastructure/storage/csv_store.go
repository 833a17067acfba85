package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"bottin/internal/domain"
	"bottin/internal/ports"
)

// CSVStore persists tables as comma-separated UTF-8 files on local storage.
// Reads tolerate Latin-1 input: legacy exports of the member database were
// saved as ISO-8859-1 and still circulate.
type CSVStore struct{}

var _ ports.TableStore = (*CSVStore)(nil)

// NewCSVStore builds the file-backed table store.
func NewCSVStore() *CSVStore {
	return &CSVStore{}
}

// Read loads the whole file into memory, sniffs its encoding, and parses it.
// Ragged rows are accepted; callers pad per-row as needed.
func (s *CSVStore) Read(ctx context.Context, path string) (domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return domain.Table{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("read %s: %w", path, err)
	}

	var source io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		source = charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(raw))
	}

	parser := csv.NewReader(source)
	parser.FieldsPerRecord = -1

	records, err := parser.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return domain.Table{}, nil
	}

	table := domain.Table{Header: records[0], Rows: records[1:]}
	table.TrimHeader()
	return table, nil
}

// Write overwrites path with the table as UTF-8 CSV.
func (s *CSVStore) Write(ctx context.Context, path string, table domain.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(table.Header); err != nil {
		_ = file.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range table.Rows {
		if err := writer.Write(table.FitRow(row)); err != nil {
			_ = file.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = file.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}
