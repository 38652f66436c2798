package domain

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoodleKiosk(t *testing.T) *Kiosk {
	t.Helper()
	k, err := NewKiosk(noodleShop(t))
	require.NoError(t, err)
	return k
}

func stockOf(t *testing.T, k *Kiosk, name string) int {
	t.Helper()
	for _, ing := range k.ListIngredients() {
		if ing.Name == name {
			return ing.Stock
		}
	}
	t.Fatalf("ingredient %s not listed", name)
	return 0
}

func TestKiosk_RestockAfterOrderClampsToCeiling(t *testing.T) {
	k := newNoodleKiosk(t)
	_, _, err := k.PlaceOrder(customRamen(t, Line{Ingredient: "Noodles", Quantity: 2}), money(t, "40"))
	require.NoError(t, err)
	require.Equal(t, 8, stockOf(t, k, "Noodles"))

	updated, err := k.Restock("Noodles", 5)
	require.NoError(t, err)
	require.Equal(t, 10, updated.Stock)
}

func TestKiosk_CollectRevenueReturnsThenResets(t *testing.T) {
	k := newNoodleKiosk(t)
	_, _, err := k.PlaceOrder(customRamen(t,
		Line{Ingredient: "Noodles", Quantity: 2},
		Line{Ingredient: "Egg", Quantity: 1},
	), money(t, "100"))
	require.NoError(t, err)

	requireMoney(t, "70", k.Revenue())
	requireMoney(t, "70", k.CollectRevenue())
	require.True(t, k.CollectRevenue().IsZero())
	require.Len(t, k.History(), 1)
}

func TestKiosk_ConservationAcrossOrders(t *testing.T) {
	k := newNoodleKiosk(t)
	costs := []string{"20", "30", "50"}
	orders := []DishSpec{
		customRamen(t, Line{Ingredient: "Noodles", Quantity: 1}),
		customRamen(t, Line{Ingredient: "Egg", Quantity: 1}),
		customRamen(t, Line{Ingredient: "Noodles", Quantity: 1}, Line{Ingredient: "Egg", Quantity: 1}),
	}
	sum := decimal.Zero
	for i, spec := range orders {
		receipt, _, err := k.PlaceOrder(spec, money(t, "100"))
		require.NoError(t, err)
		requireMoney(t, costs[i], receipt.TotalCost)
		sum = sum.Add(receipt.TotalCost)
	}
	_, _, err := k.PlaceOrder(customRamen(t, Line{Ingredient: "Egg", Quantity: 1}), money(t, "1"))
	require.Error(t, err)

	require.True(t, sum.Equal(k.Revenue()))
	history := k.History()
	require.Len(t, history, 3)
	for i, record := range history {
		require.Equal(t, int64(i+1), record.Sequence)
	}
}

func TestKiosk_ExactChangeWithTenthUnitPrices(t *testing.T) {
	k, err := NewKiosk([]Ingredient{ingredient(t, "Negi", "0.1", 5)})
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		receipt, _, err := k.PlaceOrder(customRamen(t, Line{Ingredient: "Negi", Quantity: 1}), money(t, "1"))
		require.NoError(t, err)
		requireMoney(t, "0.9", receipt.Change)
		_, err = k.Restock("Negi", 1)
		require.NoError(t, err)
	}
	requireMoney(t, "100", k.Revenue())
}

func TestKiosk_ConcurrentOrdersNeverOversell(t *testing.T) {
	k := newNoodleKiosk(t)
	const customers = 25
	spec := customRamen(t, Line{Ingredient: "Noodles", Quantity: 1})
	cash := money(t, "20")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < customers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := k.PlaceOrder(spec, cash)
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ErrInsufficientStock)
		}()
	}
	wg.Wait()

	require.Equal(t, RestockCeiling, succeeded)
	require.Equal(t, 0, stockOf(t, k, "Noodles"))
	requireMoney(t, "200", k.Revenue())
	require.Len(t, k.History(), RestockCeiling)
}

func TestKiosk_ConcurrentCollectLosesNothing(t *testing.T) {
	ledger := NewRevenueLedger()
	const adds = 500

	var wg sync.WaitGroup
	collected := make(chan decimal.Decimal, adds)
	for i := 0; i < adds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, ledger.Add(decimal.New(1, -1)))
		}()
		go func() {
			defer wg.Done()
			collected <- ledger.TakeAndReset()
		}()
	}
	wg.Wait()
	close(collected)

	total := ledger.TakeAndReset()
	for amount := range collected {
		total = total.Add(amount)
	}
	requireMoney(t, "50", total)
}

func TestKiosk_SnapshotsAreDetached(t *testing.T) {
	k := newNoodleKiosk(t)
	_, _, err := k.PlaceOrder(customRamen(t, Line{Ingredient: "Egg", Quantity: 1}), money(t, "30"))
	require.NoError(t, err)

	list := k.ListIngredients()
	list[1].Stock = 0
	require.Equal(t, 9, stockOf(t, k, "Egg"))

	history := k.History()
	history[0].Lines[0].Quantity = 99
	require.Equal(t, 1, k.History()[0].Lines[0].Quantity)
}

func TestRevenueLedger_RejectsNegativeAdd(t *testing.T) {
	ledger := NewRevenueLedger()
	require.ErrorIs(t, ledger.Add(decimal.NewFromInt(-1)), ErrInvalidPayment)
	require.True(t, ledger.Total().IsZero())
}
