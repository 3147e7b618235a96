// Package rename executes batch renames over the filesystem port and keeps
// the history log that makes the most recent batch undoable.
package rename

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lzyyzznl/work-tools/internal/adapter"
	"github.com/lzyyzznl/work-tools/internal/collection"
	"github.com/lzyyzznl/work-tools/internal/core/conflict"
	"github.com/lzyyzznl/work-tools/internal/core/transform"
	"github.com/lzyyzznl/work-tools/internal/domain"
	"github.com/lzyyzznl/work-tools/internal/logger"
	"github.com/lzyyzznl/work-tools/internal/progress"
)

// Executor runs rename batches sequentially, one filesystem call at a time.
// It assumes the host serializes user-triggered batches; the isExecuting
// flag only guards against re-entrant starts, not true concurrency.
type Executor struct {
	fs      adapter.FileSystem
	files   *collection.Collection
	history *History
	log     logger.Logger

	reporter progress.Reporter

	isExecuting       bool
	lastExecutionTime time.Time
}

// NewExecutor creates an executor over the given ports and state
func NewExecutor(fs adapter.FileSystem, files *collection.Collection, history *History, log logger.Logger) *Executor {
	if log == nil {
		log = &logger.NullLogger{}
	}
	return &Executor{fs: fs, files: files, history: history, log: log}
}

// SetReporter installs a progress reporter; nil disables reporting
func (e *Executor) SetReporter(r progress.Reporter) {
	e.reporter = r
}

// IsExecuting reports whether a batch is currently running
func (e *Executor) IsExecuting() bool {
	return e.isExecuting
}

// LastExecutionTime is when the most recent batch finished, successful or not
func (e *Executor) LastExecutionTime() time.Time {
	return e.lastExecutionTime
}

// ValidateParams returns every violated rule for the mode, not just the first
func ValidateParams(mode domain.Mode, params domain.Params) []string {
	var violations []string

	switch mode {
	case domain.ModeReplace:
		if params.Replace.FromStr == "" {
			violations = append(violations, "search string cannot be empty")
		}
	case domain.ModeAdd:
		if params.Add.Text == "" {
			violations = append(violations, "text to add cannot be empty")
		}
	case domain.ModeNumber:
		if params.Number.Start < 0 {
			violations = append(violations, "start number cannot be negative")
		}
		if params.Number.Digits <= 0 {
			violations = append(violations, "digit count must be positive")
		}
		if params.Number.Step <= 0 {
			violations = append(violations, "step must be positive")
		}
	case domain.ModeDelete:
		if params.Delete.StartPos <= 0 {
			violations = append(violations, "start position must be positive")
		}
		if params.Delete.Count <= 0 {
			violations = append(violations, "character count must be positive")
		}
	default:
		violations = append(violations, fmt.Sprintf("unknown rename mode %q", mode))
	}

	return violations
}

// Preview computes prospective names for the whole batch and stores them on
// the records. Nothing touches the filesystem.
func (e *Executor) Preview(mode domain.Mode, params domain.Params) {
	for i, f := range e.files.ToProcess() {
		e.files.SetPreview(f.ID, transform.NewName(f.Name, mode, params, i))
	}
}

// Execute runs one batch: validate, conflict-gate, then rename file by file.
// Validation and conflict failures abort before any filesystem mutation. A
// single file's failure is recorded and the batch continues; callers must
// inspect Errors to detect partial failure.
func (e *Executor) Execute(ctx context.Context, mode domain.Mode, params domain.Params) domain.BatchResult {
	if e.isExecuting {
		return domain.BatchResult{Errors: []string{domain.ErrExecutionInProgress.Error()}}
	}

	if violations := ValidateParams(mode, params); len(violations) > 0 {
		return domain.BatchResult{Errors: violations}
	}

	files := e.files.ToProcess()
	if report := conflict.Check(files, mode, params); report.HasConflicts {
		conflictErr := &domain.ConflictError{Paths: report.Conflicts}
		return domain.BatchResult{Errors: []string{conflictErr.Error()}}
	}

	e.isExecuting = true
	defer func() {
		e.isExecuting = false
		e.lastExecutionTime = time.Now()
	}()

	if e.reporter != nil {
		e.reporter.Reset()
	}

	var errors []string
	var operations []domain.RenameOp
	total := len(files)

	for i, f := range files {
		newName := transform.NewName(f.Name, mode, params, i)

		if newName != f.Name {
			newPath := conflict.ProspectivePath(f.Path, newName)

			if err := e.renameOne(ctx, f.Path, newPath); err != nil {
				errors = append(errors, fmt.Sprintf("rename %s failed: %v", f.Name, err))
				e.log.Warn("rename failed", "file", f.Name, "error", err)
			} else {
				operations = append(operations, domain.RenameOp{OldPath: f.Path, NewPath: newPath})
				e.files.Rename(f.ID, newName)
			}
		}

		e.report(i+1, total)
	}

	if len(operations) > 0 {
		e.history.Push(ctx, domain.HistoryEntry{
			ID:         "rename_" + uuid.NewString(),
			Timestamp:  time.Now(),
			Operations: operations,
		})
	}

	e.log.Info("rename batch finished",
		"renamed", len(operations), "failed", len(errors), "total", total)

	return domain.BatchResult{
		Success:    len(operations) > 0 || len(errors) == 0,
		Errors:     errors,
		Operations: operations,
	}
}

// renameOne re-checks both endpoints right before renaming; the batch-level
// conflict gate cannot see files that appeared or vanished since preview
func (e *Executor) renameOne(ctx context.Context, oldPath, newPath string) error {
	exists, err := e.fs.Exists(ctx, oldPath)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrFileMissing
	}

	exists, err = e.fs.Exists(ctx, newPath)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrFileExists
	}

	return e.fs.Rename(ctx, oldPath, newPath)
}

// Undo reverses the most recent batch. Per-pair failures are collected and
// the remaining reversals continue; the consumed entry is removed from the
// log either way, so undo is never itself undoable.
func (e *Executor) Undo(ctx context.Context) domain.BatchResult {
	entry, ok := e.history.Latest()
	if !ok {
		return domain.BatchResult{Errors: []string{domain.ErrNothingToUndo.Error()}}
	}

	if e.reporter != nil {
		e.reporter.Reset()
	}

	var errors []string
	var reversed []domain.RenameOp
	total := len(entry.Operations)

	for i, op := range entry.Operations {
		if err := e.fs.Rename(ctx, op.NewPath, op.OldPath); err != nil {
			errors = append(errors, fmt.Sprintf("undo %s failed: %v", op.NewPath, err))
			e.log.Warn("undo rename failed", "path", op.NewPath, "error", err)
		} else {
			reversed = append(reversed, domain.RenameOp{OldPath: op.NewPath, NewPath: op.OldPath})
			e.files.RenameByPath(op.NewPath, baseName(op.OldPath))
		}
		e.report(i+1, total)
	}

	e.history.RemoveLatest(ctx)

	e.log.Info("undo finished", "reversed", len(reversed), "failed", len(errors))

	return domain.BatchResult{
		Success:    len(errors) == 0,
		Errors:     errors,
		Operations: reversed,
	}
}

func (e *Executor) report(done, total int) {
	if e.reporter == nil || total == 0 {
		return
	}
	e.reporter.Progress(float64(done) / float64(total) * 100)
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}
