package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/ports"
)

func journalRecord(seq int64, placedAt time.Time, cost int64) domain.OrderRecord {
	return domain.OrderRecord{
		ID:            uuid.New(),
		Sequence:      seq,
		Dish:          domain.CustomRamenName,
		Lines:         []domain.Line{{Ingredient: "Noodles", Quantity: 1}},
		Description:   "Noodles (1 orders)",
		TotalCost:     decimal.NewFromInt(cost),
		TotalCalories: 300,
		PlacedAt:      placedAt,
	}
}

func TestJournal_RecordIsIdempotent(t *testing.T) {
	j := NewJournal()
	ctx := context.Background()
	rec := journalRecord(1, time.Now(), 20)

	require.NoError(t, j.Record(ctx, rec))
	require.NoError(t, j.Record(ctx, rec))

	summary, err := j.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), summary.Orders)
	require.True(t, decimal.NewFromInt(20).Equal(summary.Revenue))
}

func TestJournal_ListOrdersByPlacement(t *testing.T) {
	j := NewJournal()
	stamp := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	j.WithClock(func() time.Time { return stamp })
	ctx := context.Background()

	base := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	second := journalRecord(2, base.Add(time.Minute), 30)
	first := journalRecord(1, base, 20)
	require.NoError(t, j.Record(ctx, second))
	require.NoError(t, j.Record(ctx, first))

	list, err := j.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, first.ID, list[0].Entity.ID)
	require.Equal(t, second.ID, list[1].Entity.ID)
	require.Equal(t, stamp, list[0].Metadata.CreatedAt)
}

func TestJournal_GetReturnsDetachedCopy(t *testing.T) {
	j := NewJournal()
	ctx := context.Background()
	rec := journalRecord(1, time.Now(), 20)
	require.NoError(t, j.Record(ctx, rec))

	got, err := j.Get(ctx, rec.ID)
	require.NoError(t, err)
	got.Entity.Lines[0].Quantity = 7

	again, err := j.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, 1, again.Entity.Lines[0].Quantity)

	_, err = j.Get(ctx, uuid.New())
	require.ErrorIs(t, err, ports.ErrNotFound)
}
