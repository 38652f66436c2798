package ports

import (
	"context"

	"github.com/shopspring/decimal"

	types "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/application/types"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
)

// Service exposes kiosk use cases to adapters.
type Service interface {
	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
	ListDishes(ctx context.Context) ([]domain.Dish, error)
	Quote(ctx context.Context, input types.QuoteInput) (domain.Quote, error)
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (domain.Receipt, error)
	Restock(ctx context.Context, input types.RestockInput) (domain.Ingredient, error)
	CollectRevenue(ctx context.Context) (decimal.Decimal, error)
	Revenue(ctx context.Context) (decimal.Decimal, error)
	History(ctx context.Context) ([]domain.OrderRecord, error)
	Journal(ctx context.Context) (types.JournalView, error)
	JournalEntry(ctx context.Context, input types.JournalEntryInput) (types.OrderProjection, error)
}
