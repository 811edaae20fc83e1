package diff

import (
	"context"
	"fmt"
	"time"

	"github.com/hvanbelle/xmldelta/pkg/logging"
	"github.com/hvanbelle/xmldelta/pkg/models"
	"github.com/hvanbelle/xmldelta/pkg/output"
	"github.com/hvanbelle/xmldelta/pkg/xmltree"
	"golang.org/x/sync/errgroup"
)

// Engine orchestrates one comparison run: format both documents, run
// the requested diff passes, assemble the immutable report
type Engine struct {
	formatter output.Formatter
	logger    logging.Logger
	progress  ProgressFunc
	operation *models.CompareOperation
}

// NewEngine creates a comparison engine. Formatter and logger may be
// nil for library use.
func NewEngine(formatter output.Formatter, logger logging.Logger, operation *models.CompareOperation) *Engine {
	return &Engine{
		formatter: formatter,
		logger:    logger,
		operation: operation,
	}
}

// SetProgressFunc installs an additional progress callback next to the
// formatter's progress stream
func (e *Engine) SetProgressFunc(fn ProgressFunc) {
	e.progress = fn
}

// Run parses both documents from the operation paths and compares them
func (e *Engine) Run(ctx context.Context) (*models.CompareReport, error) {
	if err := e.operation.Validate(); err != nil {
		return nil, err
	}

	old, err := xmltree.ParseFile(e.operation.OldPath)
	if err != nil {
		e.reportError(err)
		return nil, err
	}
	new, err := xmltree.ParseFile(e.operation.NewPath)
	if err != nil {
		e.reportError(err)
		return nil, err
	}

	return e.RunDocuments(ctx, old, new)
}

// RunDocuments compares two already parsed trees. Either side may be
// nil, which degenerates to an all-added or all-removed diff. A
// cancelled run returns no report, only the context error.
func (e *Engine) RunDocuments(ctx context.Context, old, new *xmltree.Node) (*models.CompareReport, error) {
	if err := e.operation.Validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	report := &models.CompareReport{
		OperationID: e.operation.ID,
		OldPath:     e.operation.OldPath,
		NewPath:     e.operation.NewPath,
		View:        e.operation.View,
		StartTime:   startTime,
	}

	if e.logger != nil {
		e.logger.Info(ctx, "Starting comparison", logging.Fields{
			"operation_id": e.operation.ID,
			"old":          e.operation.OldPath,
			"new":          e.operation.NewPath,
			"view":         string(e.operation.View),
		})
	}
	if e.formatter != nil {
		if err := e.formatter.Start(nil, e.operation); err != nil {
			return nil, fmt.Errorf("start formatter: %w", err)
		}
	}

	// Format phase: render both trees once, deterministically. The
	// line pass consumes the rendered sequences.
	var oldLines, newLines []string
	if e.operation.View.Includes(models.ViewLines) {
		oldLines = xmltree.Format(old)
		newLines = xmltree.Format(new)
		e.reportProgress(PhaseFormat, 1)
	}

	// The three diff passes are pure over immutable inputs and each
	// writes only its own result slot, so they run in parallel.
	g, gctx := errgroup.WithContext(ctx)

	if e.operation.View.Includes(models.ViewTree) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			phaseStart := time.Now()
			var changes []models.NodeChange
			var stats models.TreeStats
			if e.operation.EmitUnchanged {
				changes, stats = TreesFull(old, new)
			} else {
				changes, stats = Trees(old, new)
			}
			report.Tree = &models.TreeResult{Changes: changes, Stats: stats}
			e.reportProgress(PhaseTree, 1)
			e.logPhase(gctx, PhaseTree, phaseStart, logging.Fields{
				"records": len(changes),
				"nodes":   stats.Total,
			})
			return nil
		})
	}

	if e.operation.View.Includes(models.ViewLines) {
		g.Go(func() error {
			phaseStart := time.Now()
			ops, approximate, err := Lines(gctx, oldLines, newLines, LineOptions{
				MaxCells: e.operation.MaxLCSCells,
				Progress: e.reportProgress,
			})
			if err != nil {
				return err
			}
			rows := Align(ops)
			unified := Unify(ops)
			report.Lines = &models.LineResult{
				Ops:         ops,
				Unified:     unified,
				Hunks:       GroupUnified(unified, e.operation.Context),
				Rows:        rows,
				Stats:       LineStatsFromRows(rows),
				Approximate: approximate,
			}
			if approximate && e.logger != nil {
				e.logger.Warn(gctx, "Line diff exceeded the exact-computation bound, result is approximate", logging.Fields{
					"old_lines": len(oldLines),
					"new_lines": len(newLines),
					"max_cells": e.operation.MaxLCSCells,
				})
			}
			e.logPhase(gctx, PhaseLines, phaseStart, logging.Fields{
				"ops":   len(ops),
				"hunks": report.Lines.Stats.Hunks,
			})
			return nil
		})
	}

	if e.operation.View.Includes(models.ViewSchema) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			phaseStart := time.Now()
			items, stats := Schema(old, new, SchemaOptions{
				TableTags: e.operation.TableTags,
				FieldTags: e.operation.FieldTags,
			})
			report.Schema = &models.SchemaResult{Changes: items, Stats: stats}
			e.reportProgress(PhaseSchema, 1)
			e.logPhase(gctx, PhaseSchema, phaseStart, logging.Fields{
				"items":  len(items),
				"tables": stats.TablesAdded + stats.TablesRemoved,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.reportError(err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		e.reportError(err)
		return nil, err
	}
	e.reportProgress(PhaseStats, 1)

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	if report.HasDifferences() {
		report.Status = models.StatusDifferent
	} else {
		report.Status = models.StatusIdentical
	}

	if e.logger != nil {
		e.logger.Info(ctx, "Comparison completed", logging.Fields{
			"operation_id": e.operation.ID,
			"status":       string(report.Status),
			"duration":     report.Duration.String(),
		})
	}
	if e.formatter != nil {
		if err := e.formatter.Complete(report); err != nil {
			return nil, fmt.Errorf("complete formatter: %w", err)
		}
	}

	return report, nil
}

// reportProgress fans a phase update out to the formatter and the
// optional progress callback
func (e *Engine) reportProgress(phase string, fraction float64) {
	if e.formatter != nil {
		e.formatter.Progress(output.ProgressUpdate{Phase: phase, Fraction: fraction})
	}
	e.progress.report(phase, fraction)
}

func (e *Engine) reportError(err error) {
	if e.formatter != nil {
		e.formatter.Error(err)
	}
}

func (e *Engine) logPhase(ctx context.Context, phase string, start time.Time, fields logging.Fields) {
	if e.logger == nil {
		return
	}
	if fields == nil {
		fields = logging.Fields{}
	}
	fields["phase"] = phase
	fields["duration"] = time.Since(start).String()
	e.logger.Debug(ctx, "Phase complete", fields)
}
