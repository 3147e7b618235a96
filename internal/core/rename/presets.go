package rename

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lzyyzznl/work-tools/internal/domain"
	"github.com/lzyyzznl/work-tools/internal/logger"
	"github.com/lzyyzznl/work-tools/internal/storage"
)

// Presets manages named, reusable (mode, params) pairs
type Presets struct {
	presets []domain.Preset
	store   storage.Store
	log     logger.Logger
}

// NewPresets creates a preset registry backed by the given store
func NewPresets(store storage.Store, log logger.Logger) *Presets {
	if log == nil {
		log = &logger.NullLogger{}
	}
	return &Presets{store: store, log: log}
}

// Load reads persisted presets; failures fall back to an empty list
func (p *Presets) Load(ctx context.Context) {
	data, err := p.store.Get(ctx, storage.KeyPresets)
	if errors.Is(err, domain.ErrKeyNotFound) {
		p.presets = nil
		return
	}
	if err != nil {
		p.log.Warn("failed to load presets, starting empty", "error", err)
		p.presets = nil
		return
	}

	var presets []domain.Preset
	if err := json.Unmarshal(data, &presets); err != nil {
		p.log.Warn("stored presets are corrupt, starting empty", "error", err)
		p.presets = nil
		return
	}
	p.presets = presets
}

// Save persists the presets
func (p *Presets) Save(ctx context.Context) error {
	data, err := json.Marshal(p.presets)
	if err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}
	if err := p.store.Set(ctx, storage.KeyPresets, data); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}
	return nil
}

// All returns the presets in creation order
func (p *Presets) All() []domain.Preset {
	out := make([]domain.Preset, len(p.presets))
	copy(out, p.presets)
	return out
}

// Add creates a preset and persists
func (p *Presets) Add(ctx context.Context, name string, mode domain.Mode, params domain.Params) (domain.Preset, error) {
	if name == "" {
		return domain.Preset{}, domain.NewValidationError([]string{"preset name cannot be empty"})
	}
	if !mode.IsValid() {
		return domain.Preset{}, domain.NewValidationError([]string{fmt.Sprintf("unknown rename mode %q", mode)})
	}

	now := time.Now()
	preset := domain.Preset{
		ID:        uuid.NewString(),
		Name:      name,
		Mode:      mode,
		Params:    params,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.presets = append(p.presets, preset)
	return preset, p.Save(ctx)
}

// Update overwrites a preset's name, mode and params
func (p *Presets) Update(ctx context.Context, id, name string, mode domain.Mode, params domain.Params) error {
	for i := range p.presets {
		if p.presets[i].ID == id {
			p.presets[i].Name = name
			p.presets[i].Mode = mode
			p.presets[i].Params = params
			p.presets[i].UpdatedAt = time.Now()
			return p.Save(ctx)
		}
	}
	return domain.ErrNotFound
}

// Remove deletes a preset
func (p *Presets) Remove(ctx context.Context, id string) error {
	for i := range p.presets {
		if p.presets[i].ID == id {
			p.presets = append(p.presets[:i], p.presets[i+1:]...)
			return p.Save(ctx)
		}
	}
	return domain.ErrNotFound
}

// Get returns the preset with the given id
func (p *Presets) Get(id string) (domain.Preset, error) {
	for _, preset := range p.presets {
		if preset.ID == id {
			return preset, nil
		}
	}
	return domain.Preset{}, domain.ErrNotFound
}
