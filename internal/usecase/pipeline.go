package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"bottin/internal/ports"
	"bottin/internal/redact"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source   ports.WorkbookSource
	Store    ports.TableStore
	Redactor *redact.Redactor
	Notifier ports.Notifier
	Logger   *slog.Logger
}

// Pipeline implements the directory-rebuild workflow: extract the complete
// member table from the workbook, then derive the consent-filtered public
// table. Each invocation is an idempotent wholesale rebuild; outputs are
// overwritten, never merged.
type Pipeline struct {
	source   ports.WorkbookSource
	store    ports.TableStore
	redactor *redact.Redactor
	notifier ports.Notifier
	logger   *slog.Logger
}

// RebuildResult reports one full pipeline run.
type RebuildResult struct {
	RunID         string
	ExtractedRows int
	Summary       redact.Summary
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:   deps.Source,
		store:    deps.Store,
		redactor: deps.Redactor,
		notifier: deps.Notifier,
		logger:   deps.Logger,
	}
}

// Extract reads the named sheet of the workbook and writes the complete
// member table to outPath. Returns the number of data rows written.
func (p *Pipeline) Extract(ctx context.Context, workbookPath, outPath, sheet string) (int, error) {
	table, err := p.source.Extract(ctx, workbookPath, sheet)
	if err != nil {
		return 0, fmt.Errorf("extract: %w", err)
	}

	if err := p.store.Write(ctx, outPath, table); err != nil {
		return 0, fmt.Errorf("write complete table: %w", err)
	}

	p.info("sheet exported", "workbook", workbookPath, "sheet", sheet, "rows", len(table.Rows), "out", outPath)
	return len(table.Rows), nil
}

// Publish reads the complete table from inPath, applies the consent policy,
// and writes the public table to outPath. All-or-nothing: on any error no
// output file is touched.
func (p *Pipeline) Publish(ctx context.Context, inPath, outPath string) (redact.Summary, error) {
	table, err := p.store.Read(ctx, inPath)
	if err != nil {
		return redact.Summary{}, fmt.Errorf("read complete table: %w", err)
	}

	public, summary, err := p.redactor.Apply(table)
	if err != nil {
		return redact.Summary{}, fmt.Errorf("redact: %w", err)
	}

	if err := p.store.Write(ctx, outPath, public); err != nil {
		return redact.Summary{}, fmt.Errorf("write public table: %w", err)
	}

	p.info("public table written",
		"out", outPath,
		"public", summary.Public,
		"pending", summary.Pending(),
		"excluded", summary.Excluded.Total)
	return summary, nil
}

// Rebuild runs both transforms back to back and, when a notifier is wired,
// posts the run summary.
func (p *Pipeline) Rebuild(ctx context.Context, workbookPath, sheet, allPath, publicPath string) (RebuildResult, error) {
	result := RebuildResult{RunID: uuid.NewString()}

	p.info("rebuild started", "run_id", result.RunID, "workbook", workbookPath)

	rows, err := p.Extract(ctx, workbookPath, allPath, sheet)
	if err != nil {
		return result, err
	}
	result.ExtractedRows = rows

	summary, err := p.Publish(ctx, allPath, publicPath)
	if err != nil {
		return result, err
	}
	result.Summary = summary

	if p.notifier != nil {
		if err := p.notifier.PublishRebuild(ctx, result.RunID, summary); err != nil {
			// Notification is best effort; the rebuild itself succeeded.
			p.warn("notify failed", "run_id", result.RunID, "error", err)
		}
	}

	p.info("rebuild done", "run_id", result.RunID)
	return result, nil
}

func (p *Pipeline) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
