package redact

import (
	"fmt"
	"log/slog"
	"strings"

	"bottin/internal/config"
	"bottin/internal/domain"
)

// Redactor applies the per-row consent policy to the complete member table
// and produces the public-safe view. Structural fields (membership type,
// axes, principles, action fields) always survive so the directory's filters
// keep working; personal fields only survive an explicit "Oui".
type Redactor struct {
	schema config.SchemaConfig
	rules  config.RedactionConfig
	logger *slog.Logger
}

// Summary aggregates what one redaction run did. It is recomputed on every
// run and only ever reported, never persisted.
type Summary struct {
	Public                int
	PendingWithProfile    int
	PendingWithoutProfile int
	Excluded              domain.ExcludedStats
	MaskedColumns         []string
}

// Pending returns the number of members kept by name with masked fields.
func (s Summary) Pending() int {
	return s.PendingWithProfile + s.PendingWithoutProfile
}

// New constructs a Redactor from the configured schema and masking rules.
func New(schema config.SchemaConfig, rules config.RedactionConfig, logger *slog.Logger) *Redactor {
	return &Redactor{schema: schema, rules: rules, logger: logger}
}

type sensitiveColumn struct {
	index       int
	placeholder string
}

// Apply transforms the complete table into the public table. The output
// keeps the input column schema; consenting members come first, then pending
// members, then the aggregate stats row. All-or-nothing: a missing required
// column returns an error and no partial output.
func (r *Redactor) Apply(input domain.Table) (domain.Table, Summary, error) {
	input.TrimHeader()

	var summary Summary

	required := []string{
		r.schema.FirstName,
		r.schema.LastName,
		r.schema.Consent,
		r.schema.MembershipType,
	}
	for _, name := range required {
		if input.ColumnIndex(name) < 0 {
			return domain.Table{}, Summary{}, &domain.MissingColumnError{Column: name}
		}
	}

	firstIdx := input.ColumnIndex(r.schema.FirstName)
	lastIdx := input.ColumnIndex(r.schema.LastName)
	consentIdx := input.ColumnIndex(r.schema.Consent)
	typeIdx := input.ColumnIndex(r.schema.MembershipType)
	axisIdx := input.ColumnIndex(r.schema.FirstAxis)

	var sensitive []sensitiveColumn
	for _, name := range r.rules.SensitiveColumns {
		idx := input.ColumnIndex(name)
		if idx < 0 {
			continue
		}
		sensitive = append(sensitive, sensitiveColumn{
			index:       idx,
			placeholder: r.rules.Placeholders[name],
		})
		summary.MaskedColumns = append(summary.MaskedColumns, name)
	}

	var publicRows, pendingRows [][]string
	for _, raw := range input.Rows {
		row := trimmedCopy(input.FitRow(raw))

		// Spreadsheet padding rows carry no name at all; they are not members.
		if row[firstIdx] == "" && row[lastIdx] == "" {
			continue
		}

		switch domain.ParseConsent(row[consentIdx]) {
		case domain.ConsentGranted:
			publicRows = append(publicRows, row)
			summary.Public++

		case domain.ConsentRefused:
			summary.Excluded.Add(row[typeIdx])

		default:
			for _, col := range sensitive {
				row[col.index] = col.placeholder
			}
			pendingRows = append(pendingRows, row)
			if axisIdx >= 0 && row[axisIdx] != "" {
				summary.PendingWithProfile++
			} else {
				summary.PendingWithoutProfile++
			}
		}
	}

	output := domain.Table{Header: input.Header}
	output.Rows = append(output.Rows, publicRows...)
	output.Rows = append(output.Rows, pendingRows...)
	output.Rows = append(output.Rows, r.statsRow(input, summary.Excluded))

	if r.logger != nil {
		r.logger.Info("redaction applied",
			"public", summary.Public,
			"pending", summary.Pending(),
			"excluded", summary.Excluded.Total,
			"masked_columns", len(summary.MaskedColumns))
	}

	return output, summary, nil
}

// statsRow builds the invisible member that carries the excluded counts to
// the presentation layer: marker in the first-name column, comma-joined
// counts in the e-mail column, "stats" in the consent column.
func (r *Redactor) statsRow(input domain.Table, stats domain.ExcludedStats) []string {
	row := make([]string, len(input.Header))
	if idx := input.ColumnIndex(r.schema.FirstName); idx >= 0 {
		row[idx] = domain.StatsRowMarker
	}
	if idx := input.ColumnIndex(r.schema.Email); idx >= 0 {
		row[idx] = fmt.Sprintf("%d,%d,%d,%d", stats.Total, stats.Regular, stats.Student, stats.Partner)
	}
	if idx := input.ColumnIndex(r.schema.Consent); idx >= 0 {
		row[idx] = domain.StatsRowConsent
	}
	return row
}

func trimmedCopy(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}
