package domain

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Kiosk owns the catalog, ledger and history for one vending session.
// Every operation runs under a single lock, so orders are committed one at a time.
type Kiosk struct {
	mu      sync.Mutex
	catalog *Catalog
	ledger  *RevenueLedger
	history *OrderHistory
	menu    Menu
	now     func() time.Time
}

type Option func(*Kiosk)

// WithDishes replaces the default menu.
func WithDishes(dishes ...Dish) Option {
	return func(k *Kiosk) {
		if len(dishes) > 0 {
			k.menu = append(Menu(nil), dishes...)
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(k *Kiosk) {
		if now != nil {
			k.now = now
		}
	}
}

// NewKiosk seeds a session from the given ingredients.
func NewKiosk(ingredients []Ingredient, opts ...Option) (*Kiosk, error) {
	catalog, err := NewCatalog(ingredients...)
	if err != nil {
		return nil, err
	}
	k := &Kiosk{
		catalog: catalog,
		ledger:  NewRevenueLedger(),
		history: NewOrderHistory(),
		menu:    Menu{CustomRamen()},
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(k)
		}
	}
	return k, nil
}

func (k *Kiosk) ListIngredients() []Ingredient {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.catalog.List()
}

func (k *Kiosk) ListDishes() Menu {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append(Menu(nil), k.menu...)
}

// Dish resolves a menu entry by name; empty selects the default dish.
func (k *Kiosk) Dish(name string) (Dish, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.menu.Find(name)
}

// Quote prices a selection against the current catalog.
func (k *Kiosk) Quote(selection Selection) (Quote, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return QuoteSelection(selection, k.catalog)
}

// PlaceOrder executes one order transaction.
func (k *Kiosk) PlaceOrder(spec DishSpec, cashTendered decimal.Decimal) (Receipt, OrderRecord, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	tx := NewTransaction(spec, cashTendered)
	return tx.Execute(k.catalog, k.ledger, k.history, k.now().UTC())
}

// Restock tops up an ingredient, clamped to RestockCeiling.
func (k *Kiosk) Restock(name string, amount int) (Ingredient, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.catalog.Restock(name, amount)
}

// CollectRevenue returns the collected total and resets the ledger.
func (k *Kiosk) CollectRevenue() decimal.Decimal {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.ledger.TakeAndReset()
}

// Revenue returns the uncollected total.
func (k *Kiosk) Revenue() decimal.Decimal {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.ledger.Total()
}

// History returns committed orders in chronological order.
func (k *Kiosk) History() []OrderRecord {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.history.Records()
}

// Now exposes the session clock to adapters that stamp events.
func (k *Kiosk) Now() time.Time {
	return k.now().UTC()
}
