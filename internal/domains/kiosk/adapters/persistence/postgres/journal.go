package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/application/types"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/ports"
)

var _ ports.OrderJournal = (*Journal)(nil)

// Journal persists committed orders in PostgreSQL using GORM.
type Journal struct {
	db *gorm.DB
}

// NewJournal wires a PostgreSQL-backed journal. Caller manages DB lifecycle and migrations.
func NewJournal(db *gorm.DB) *Journal {
	return &Journal{db: db}
}

// orderJournalRecord maps a committed order to a relational row.
// Lines are stored as parallel arrays so the row stays flat.
type orderJournalRecord struct {
	OrderID       string          `gorm:"primaryKey;column:order_id;type:uuid"`
	Sequence      int64           `gorm:"column:sequence"`
	Dish          string          `gorm:"column:dish"`
	Ingredients   pq.StringArray  `gorm:"column:ingredients;type:text[]"`
	Quantities    pq.Int64Array   `gorm:"column:quantities;type:bigint[]"`
	Description   string          `gorm:"column:description"`
	TotalCost     decimal.Decimal `gorm:"column:total_cost;type:numeric(12,2)"`
	TotalCalories int             `gorm:"column:total_calories"`
	PlacedAt      time.Time       `gorm:"column:placed_at;index:idx_order_journal_placed"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (orderJournalRecord) TableName() string { return "order_journal" }

// Record inserts the order; an existing row for the same order ID is left untouched.
func (j *Journal) Record(ctx context.Context, record domain.OrderRecord) error {
	if err := j.ensureDB(); err != nil {
		return err
	}
	row := toRecord(record)
	return j.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "order_id"}}, DoNothing: true}).
		Create(&row).Error
}

func (j *Journal) Get(ctx context.Context, id uuid.UUID) (types.OrderProjection, error) {
	if err := j.ensureDB(); err != nil {
		return types.OrderProjection{}, err
	}
	var row orderJournalRecord
	if err := j.db.WithContext(ctx).First(&row, "order_id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.OrderProjection{}, ports.ErrNotFound
		}
		return types.OrderProjection{}, err
	}
	return row.toProjection()
}

// List returns every journaled order ordered by placement.
func (j *Journal) List(ctx context.Context) ([]types.OrderProjection, error) {
	if err := j.ensureDB(); err != nil {
		return nil, err
	}
	var rows []orderJournalRecord
	if err := j.db.WithContext(ctx).Order("placed_at ASC, sequence ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]types.OrderProjection, 0, len(rows))
	for i := range rows {
		p, err := rows[i].toProjection()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (j *Journal) Summary(ctx context.Context) (types.JournalSummary, error) {
	if err := j.ensureDB(); err != nil {
		return types.JournalSummary{}, err
	}
	var totals struct {
		Orders  int64
		Revenue decimal.Decimal
	}
	if err := j.db.WithContext(ctx).
		Model(&orderJournalRecord{}).
		Select("COUNT(*) AS orders, COALESCE(SUM(total_cost), 0) AS revenue").
		Scan(&totals).Error; err != nil {
		return types.JournalSummary{}, err
	}
	return types.JournalSummary{Orders: totals.Orders, Revenue: totals.Revenue}, nil
}

func (j *Journal) ensureDB() error {
	if j == nil || j.db == nil {
		return errors.New("postgres order journal not configured")
	}
	return nil
}

func toRecord(record domain.OrderRecord) orderJournalRecord {
	row := orderJournalRecord{
		OrderID:       record.ID.String(),
		Sequence:      record.Sequence,
		Dish:          record.Dish,
		Ingredients:   make(pq.StringArray, 0, len(record.Lines)),
		Quantities:    make(pq.Int64Array, 0, len(record.Lines)),
		Description:   record.Description,
		TotalCost:     record.TotalCost,
		TotalCalories: record.TotalCalories,
		PlacedAt:      record.PlacedAt.UTC(),
	}
	for _, line := range record.Lines {
		row.Ingredients = append(row.Ingredients, line.Ingredient)
		row.Quantities = append(row.Quantities, int64(line.Quantity))
	}
	return row
}

func (r orderJournalRecord) toProjection() (types.OrderProjection, error) {
	id, err := uuid.Parse(r.OrderID)
	if err != nil {
		return types.OrderProjection{}, fmt.Errorf("journal row has invalid order id %q: %w", r.OrderID, err)
	}
	if len(r.Ingredients) != len(r.Quantities) {
		return types.OrderProjection{}, fmt.Errorf("journal row %s has %d ingredients but %d quantities", r.OrderID, len(r.Ingredients), len(r.Quantities))
	}
	lines := make([]domain.Line, 0, len(r.Ingredients))
	for i, name := range r.Ingredients {
		lines = append(lines, domain.Line{Ingredient: name, Quantity: int(r.Quantities[i])})
	}
	record := domain.OrderRecord{
		ID:            id,
		Sequence:      r.Sequence,
		Dish:          r.Dish,
		Lines:         lines,
		Description:   r.Description,
		TotalCost:     r.TotalCost,
		TotalCalories: r.TotalCalories,
		PlacedAt:      r.PlacedAt.UTC(),
	}
	return types.NewOrderProjection(record, r.CreatedAt, r.UpdatedAt), nil
}
