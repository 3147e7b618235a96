package rename

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lzyyzznl/work-tools/internal/domain"
	"github.com/lzyyzznl/work-tools/internal/logger"
	"github.com/lzyyzznl/work-tools/internal/storage"
)

func entry(id string, ops ...domain.RenameOp) domain.HistoryEntry {
	return domain.HistoryEntry{ID: id, Timestamp: time.Now(), Operations: ops}
}

// wrappingStore wraps every missing-key error, as a backend adding its own
// context would
type wrappingStore struct {
	*memStore
}

func (w *wrappingStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := w.memStore.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("backend read: %w", err)
	}
	return data, nil
}

// spyLogger records warn calls so tests can tell the clean missing-key
// branch from the failure fallback
type spyLogger struct {
	logger.NullLogger
	warns []string
}

func (s *spyLogger) Warn(msg string, args ...any) { s.warns = append(s.warns, msg) }

func TestHistory_LoadTreatsWrappedMissingKeyAsEmpty(t *testing.T) {
	spy := &spyLogger{}
	h := NewHistory(&wrappingStore{newMemStore()}, 10, spy)

	h.Load(context.Background())
	if h.Len() != 0 {
		t.Fatalf("length = %d, want 0", h.Len())
	}
	if len(spy.warns) != 0 {
		t.Errorf("missing key must not warn, got %v", spy.warns)
	}
}

func TestPresets_LoadTreatsWrappedMissingKeyAsEmpty(t *testing.T) {
	spy := &spyLogger{}
	p := NewPresets(&wrappingStore{newMemStore()}, spy)

	p.Load(context.Background())
	if len(p.All()) != 0 {
		t.Fatalf("presets = %v, want none", p.All())
	}
	if len(spy.warns) != 0 {
		t.Errorf("missing key must not warn, got %v", spy.warns)
	}
}

func TestHistory_PushIsMostRecentFirst(t *testing.T) {
	h := NewHistory(newMemStore(), 0, nil)
	ctx := context.Background()

	h.Push(ctx, entry("first", domain.RenameOp{OldPath: "/a", NewPath: "/b"}))
	h.Push(ctx, entry("second", domain.RenameOp{OldPath: "/c", NewPath: "/d"}))

	latest, ok := h.Latest()
	if !ok || latest.ID != "second" {
		t.Errorf("latest = %+v, want second", latest)
	}
}

func TestHistory_TrimsOldestPastCap(t *testing.T) {
	h := NewHistory(newMemStore(), 3, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		h.Push(ctx, entry(fmt.Sprintf("e%d", i), domain.RenameOp{OldPath: "/a", NewPath: "/b"}))
	}

	if h.Len() != 3 {
		t.Fatalf("length = %d, want cap 3", h.Len())
	}
	entries := h.Entries()
	if entries[0].ID != "e4" || entries[2].ID != "e2" {
		t.Errorf("wrong entries survived: %v", entries)
	}
}

func TestHistory_DefaultCap(t *testing.T) {
	h := NewHistory(newMemStore(), 0, nil)
	if h.max != DefaultHistoryMax {
		t.Errorf("max = %d, want %d", h.max, DefaultHistoryMax)
	}
}

func TestHistory_PersistsAndReloads(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	h := NewHistory(store, 10, nil)
	h.Push(ctx, entry("keep", domain.RenameOp{OldPath: "/old", NewPath: "/new"}))

	reloaded := NewHistory(store, 10, nil)
	reloaded.Load(ctx)
	if reloaded.Len() != 1 {
		t.Fatalf("reloaded length = %d, want 1", reloaded.Len())
	}
	got, _ := reloaded.Latest()
	if got.ID != "keep" || got.Operations[0].NewPath != "/new" {
		t.Errorf("entry did not round-trip: %+v", got)
	}
}

func TestHistory_LoadToleratesCorruptBlob(t *testing.T) {
	store := newMemStore()
	store.blobs[storage.KeyHistory] = []byte("{not json")

	h := NewHistory(store, 10, nil)
	h.Load(context.Background())
	if h.Len() != 0 {
		t.Error("corrupt history must load as empty")
	}
}

func TestHistory_PruneFile(t *testing.T) {
	h := NewHistory(newMemStore(), 10, nil)
	ctx := context.Background()

	h.Push(ctx, entry("mixed",
		domain.RenameOp{OldPath: "/data/a.txt", NewPath: "/data/xa.txt"},
		domain.RenameOp{OldPath: "/data/b.txt", NewPath: "/data/xb.txt"},
	))
	h.Push(ctx, entry("only-a",
		domain.RenameOp{OldPath: "/data/xa.txt", NewPath: "/data/ya.txt"},
	))

	// Prune by either side of an operation
	h.PruneFile(ctx, "/data/xa.txt")

	if h.Len() != 1 {
		t.Fatalf("length = %d, want 1 (empty entries dropped)", h.Len())
	}
	remaining, _ := h.Latest()
	if remaining.ID != "mixed" || len(remaining.Operations) != 1 {
		t.Fatalf("wrong remainder: %+v", remaining)
	}
	if remaining.Operations[0].OldPath != "/data/b.txt" {
		t.Errorf("surviving operation = %+v", remaining.Operations[0])
	}
}

func TestHistory_RemoveLatestAndClear(t *testing.T) {
	h := NewHistory(newMemStore(), 10, nil)
	ctx := context.Background()

	h.RemoveLatest(ctx) // empty log: no-op

	h.Push(ctx, entry("a", domain.RenameOp{OldPath: "/a", NewPath: "/b"}))
	h.Push(ctx, entry("b", domain.RenameOp{OldPath: "/c", NewPath: "/d"}))

	h.RemoveLatest(ctx)
	latest, _ := h.Latest()
	if latest.ID != "a" {
		t.Errorf("latest after removal = %s, want a", latest.ID)
	}

	h.Clear(ctx)
	if h.Len() != 0 {
		t.Error("clear must empty the log")
	}
}
