package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	types "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/application/types"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/ports"
)

var _ ports.OrderJournal = (*Journal)(nil)

// Journal is an in-memory order journal for development and tests.
type Journal struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]types.OrderProjection
	now     func() time.Time
}

func NewJournal() *Journal {
	return &Journal{
		entries: map[uuid.UUID]types.OrderProjection{},
		now:     time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (j *Journal) WithClock(now func() time.Time) {
	if now != nil {
		j.now = now
	}
}

// Record stores the order once; repeated calls for the same ID are no-ops.
func (j *Journal) Record(_ context.Context, record domain.OrderRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, exists := j.entries[record.ID]; exists {
		return nil
	}
	now := j.now().UTC()
	record.Lines = append([]domain.Line(nil), record.Lines...)
	j.entries[record.ID] = types.NewOrderProjection(record, now, now)
	return nil
}

func (j *Journal) Get(_ context.Context, id uuid.UUID) (types.OrderProjection, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	entry, ok := j.entries[id]
	if !ok {
		return types.OrderProjection{}, ports.ErrNotFound
	}
	return cloneEntry(entry), nil
}

// List returns entries ordered by placement time, then sequence.
func (j *Journal) List(_ context.Context) ([]types.OrderProjection, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	list := make([]types.OrderProjection, 0, len(j.entries))
	for _, entry := range j.entries {
		list = append(list, cloneEntry(entry))
	}
	sort.Slice(list, func(a, b int) bool {
		ea, eb := list[a].Entity, list[b].Entity
		if !ea.PlacedAt.Equal(eb.PlacedAt) {
			return ea.PlacedAt.Before(eb.PlacedAt)
		}
		return ea.Sequence < eb.Sequence
	})
	return list, nil
}

func (j *Journal) Summary(_ context.Context) (types.JournalSummary, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	summary := types.JournalSummary{Revenue: decimal.Zero}
	for _, entry := range j.entries {
		summary.Orders++
		summary.Revenue = summary.Revenue.Add(entry.Entity.TotalCost)
	}
	return summary, nil
}

func cloneEntry(entry types.OrderProjection) types.OrderProjection {
	entry.Entity.Lines = append([]domain.Line(nil), entry.Entity.Lines...)
	return entry
}
