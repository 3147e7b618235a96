package rename

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lzyyzznl/work-tools/internal/domain"
	"github.com/lzyyzznl/work-tools/internal/logger"
	"github.com/lzyyzznl/work-tools/internal/storage"
)

// DefaultHistoryMax bounds the history log when no cap is configured
const DefaultHistoryMax = 50

// History is the bounded, most-recent-first log of executed batches
type History struct {
	entries []domain.HistoryEntry
	max     int
	store   storage.Store
	log     logger.Logger
}

// NewHistory creates a history log with the given cap; max <= 0 falls back
// to DefaultHistoryMax
func NewHistory(store storage.Store, max int, log logger.Logger) *History {
	if max <= 0 {
		max = DefaultHistoryMax
	}
	if log == nil {
		log = &logger.NullLogger{}
	}
	return &History{max: max, store: store, log: log}
}

// Load reads the persisted log. Load failures fall back to an empty log
// rather than failing the caller.
func (h *History) Load(ctx context.Context) {
	data, err := h.store.Get(ctx, storage.KeyHistory)
	if errors.Is(err, domain.ErrKeyNotFound) {
		h.entries = nil
		return
	}
	if err != nil {
		h.log.Warn("failed to load history, starting empty", "error", err)
		h.entries = nil
		return
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		h.log.Warn("stored history is corrupt, starting empty", "error", err)
		h.entries = nil
		return
	}
	h.entries = entries
	h.trim()
}

// Save persists the log
func (h *History) Save(ctx context.Context) error {
	data, err := json.Marshal(h.entries)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := h.store.Set(ctx, storage.KeyHistory, data); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// Push prepends an entry and trims past the cap, dropping oldest first
func (h *History) Push(ctx context.Context, entry domain.HistoryEntry) {
	h.entries = append([]domain.HistoryEntry{entry}, h.entries...)
	h.trim()
	if err := h.Save(ctx); err != nil {
		h.log.Error("failed to persist history", "error", err)
	}
}

func (h *History) trim() {
	if len(h.entries) > h.max {
		h.entries = h.entries[:h.max]
	}
}

// Latest returns the most recent entry
func (h *History) Latest() (domain.HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return domain.HistoryEntry{}, false
	}
	return h.entries[0], true
}

// RemoveLatest drops the most recent entry; undo calls this regardless of
// partial failure, so an undone batch is never undone twice
func (h *History) RemoveLatest(ctx context.Context) {
	if len(h.entries) == 0 {
		return
	}
	h.entries = h.entries[1:]
	if err := h.Save(ctx); err != nil {
		h.log.Error("failed to persist history", "error", err)
	}
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns the log, most recent first
func (h *History) Entries() []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Clear empties the log
func (h *History) Clear(ctx context.Context) {
	h.entries = nil
	if err := h.Save(ctx); err != nil {
		h.log.Error("failed to persist history", "error", err)
	}
}

// PruneFile strips every operation touching path from the log and drops
// entries left empty, keeping undo coherent after a file is removed from
// the collection
func (h *History) PruneFile(ctx context.Context, path string) {
	var kept []domain.HistoryEntry
	for _, entry := range h.entries {
		var ops []domain.RenameOp
		for _, op := range entry.Operations {
			if op.OldPath != path && op.NewPath != path {
				ops = append(ops, op)
			}
		}
		if len(ops) > 0 {
			entry.Operations = ops
			kept = append(kept, entry)
		}
	}
	h.entries = kept
	if err := h.Save(ctx); err != nil {
		h.log.Error("failed to persist history", "error", err)
	}
}
