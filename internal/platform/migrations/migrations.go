package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the kiosk journal. Adapters do not automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&orderJournalRecord{})
}

// Order journal schema mirrors the kiosk Postgres adapter.
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
