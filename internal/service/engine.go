// Package service wires the engine together: config, logging, storage,
// the filesystem adapter, the rule set and the rename executor. Hosts (a
// desktop shell, an extension bridge) talk to Engine and nothing below it.
package service

import (
	"context"
	"fmt"

	"github.com/lzyyzznl/work-tools/internal/adapter"
	"github.com/lzyyzznl/work-tools/internal/adapter/local"
	"github.com/lzyyzznl/work-tools/internal/collection"
	"github.com/lzyyzznl/work-tools/internal/config"
	"github.com/lzyyzznl/work-tools/internal/core/conflict"
	"github.com/lzyyzznl/work-tools/internal/core/rename"
	"github.com/lzyyzznl/work-tools/internal/core/ruleset"
	"github.com/lzyyzznl/work-tools/internal/domain"
	"github.com/lzyyzznl/work-tools/internal/logger"
	"github.com/lzyyzznl/work-tools/internal/progress"
	"github.com/lzyyzznl/work-tools/internal/storage"
	"github.com/lzyyzznl/work-tools/internal/storage/jsonfile"
	"github.com/lzyyzznl/work-tools/internal/storage/sqlite"
)

// Engine is the host-facing facade over the rename-and-match core. All
// methods run on one logical thread of control; the host must serialize
// user-triggered batch operations.
type Engine struct {
	cfg   *config.Config
	log   logger.Logger
	store storage.Store
	fs    adapter.FileSystem

	// ownsLog is set when New built the logger itself; Close then owns
	// its shutdown
	ownsLog bool

	rules    *ruleset.RuleSet
	files    *collection.Collection
	history  *rename.History
	presets  *rename.Presets
	executor *rename.Executor

	mode   domain.Mode
	params domain.Params
}

// New builds an engine from config, opening the configured storage backend
// and the local filesystem adapter. A nil log builds a logger from the
// config's log section.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*Engine, error) {
	ownsLog := false
	if log == nil {
		l, err := logger.NewSlogLogger(cfg.Log.LoggerConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		log = l
		ownsLog = true
	}

	var store storage.Store
	var err error
	switch cfg.Storage {
	case config.BackendJSONFile:
		store, err = jsonfile.New(cfg.DataDir)
	default:
		store, err = sqlite.New(cfg.DataDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	e := &Engine{
		cfg:     cfg,
		log:     log,
		ownsLog: ownsLog,
		store:   store,
		fs:      local.New(),
		files:   collection.New(),
		mode:    domain.ModeReplace,
		params:  domain.DefaultParams(),
	}

	e.rules = ruleset.New(store, log.With("component", "ruleset"))
	if err := e.rules.Load(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	e.history = rename.NewHistory(store, cfg.HistoryMax, log.With("component", "history"))
	e.history.Load(ctx)

	e.presets = rename.NewPresets(store, log.With("component", "presets"))
	e.presets.Load(ctx)

	e.executor = rename.NewExecutor(e.fs, e.files, e.history, log.With("component", "executor"))

	return e, nil
}

// Close releases the storage and filesystem handles; a logger the engine
// built itself is shut down as well
func (e *Engine) Close() error {
	if err := e.fs.Close(); err != nil {
		e.log.Warn("failed to close filesystem adapter", "error", err)
	}
	err := e.store.Close()
	if e.ownsLog {
		if serr := e.log.Shutdown(); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}

// Rules exposes rule management
func (e *Engine) Rules() *ruleset.RuleSet { return e.rules }

// Files exposes the file collection
func (e *Engine) Files() *collection.Collection { return e.files }

// History exposes the rename history log
func (e *Engine) History() *rename.History { return e.history }

// Presets exposes the preset registry
func (e *Engine) Presets() *rename.Presets { return e.presets }

// SetMode selects the active transform mode
func (e *Engine) SetMode(mode domain.Mode) error {
	if !mode.IsValid() {
		return domain.NewValidationError([]string{fmt.Sprintf("unknown rename mode %q", mode)})
	}
	e.mode = mode
	return nil
}

// Mode returns the active transform mode
func (e *Engine) Mode() domain.Mode { return e.mode }

// Params returns the current parameter sets
func (e *Engine) Params() domain.Params { return e.params }

// SetParams replaces the current parameter sets
func (e *Engine) SetParams(params domain.Params) { e.params = params }

// ApplyPreset sets the active mode and params from a saved preset
func (e *Engine) ApplyPreset(id string) error {
	preset, err := e.presets.Get(id)
	if err != nil {
		return err
	}
	e.mode = preset.Mode
	e.params = preset.Params
	return nil
}

// LoadDirectory recursively lists root through the filesystem port and adds
// every file to the collection, deduplicating on (name, size, lastModified).
// Newly added files are matched against the rule set.
func (e *Engine) LoadDirectory(ctx context.Context, root string) (added int, err error) {
	metas, err := e.fs.List(ctx, root)
	if err != nil {
		return 0, fmt.Errorf("failed to list %s: %w", root, err)
	}
	return e.AddFiles(metas), nil
}

// AddFiles adds pre-listed metadata (drag-drop, file picker) to the
// collection and matches the new records
func (e *Engine) AddFiles(metas []domain.FileMetadata) (added int) {
	for _, meta := range metas {
		id, ok := e.files.Add(meta)
		if !ok {
			continue
		}
		added++
		e.files.SetMatchResult(id, e.rules.Match(meta.Name))
	}
	e.log.Info("files added", "added", added, "offered", len(metas))
	return added
}

// RemoveFile drops a file from the collection and prunes history entries
// that reference it
func (e *Engine) RemoveFile(ctx context.Context, id string) bool {
	path, ok := e.files.Remove(id)
	if ok {
		e.history.PruneFile(ctx, path)
	}
	return ok
}

// MatchAll re-evaluates every file against the current rules, storing the
// results on the records
func (e *Engine) MatchAll() domain.FileStats {
	for _, f := range e.files.All() {
		e.files.SetMatchResult(f.ID, e.rules.Match(f.Name))
	}
	return e.files.Stats()
}

// Preview computes prospective names for the current batch
func (e *Engine) Preview() {
	e.executor.Preview(e.mode, e.params)
}

// CheckConflicts reports collisions the current transform would produce
func (e *Engine) CheckConflicts() domain.ConflictReport {
	return conflict.Check(e.files.ToProcess(), e.mode, e.params)
}

// Execute runs the current transform over the batch
func (e *Engine) Execute(ctx context.Context) domain.BatchResult {
	return e.executor.Execute(ctx, e.mode, e.params)
}

// Undo reverses the most recent batch
func (e *Engine) Undo(ctx context.Context) domain.BatchResult {
	return e.executor.Undo(ctx)
}

// OnProgress installs a progress callback for execute and undo
func (e *Engine) OnProgress(cb progress.Callback) {
	e.executor.SetReporter(progress.NewCallbackReporter(cb))
}

// IsExecuting reports whether a batch is currently running
func (e *Engine) IsExecuting() bool {
	return e.executor.IsExecuting()
}
