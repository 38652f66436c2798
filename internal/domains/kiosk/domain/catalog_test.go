package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewIngredient_StartsAtCeiling(t *testing.T) {
	ing := ingredient(t, "Negi", "10", 50)
	require.Equal(t, RestockCeiling, ing.Stock)
}

func TestNewIngredient_RejectsInvalidAttributes(t *testing.T) {
	_, err := NewIngredient("  ", money(t, "1"), 1, "")
	require.ErrorIs(t, err, ErrInvalidIngredient)

	_, err = NewIngredient("Egg", money(t, "-1"), 1, "")
	require.ErrorIs(t, err, ErrInvalidIngredient)

	_, err = NewIngredient("Egg", money(t, "1"), -5, "")
	require.ErrorIs(t, err, ErrInvalidIngredient)

	_, err = NewIngredient("Fried Tofu", money(t, "0.125"), 150, "")
	require.ErrorIs(t, err, ErrInvalidIngredient)
}

func TestNewIngredient_AcceptsWholeCentPrices(t *testing.T) {
	for _, price := range []string{"20", "0.1", "12.50", "0.990"} {
		ing, err := NewIngredient("Negi", money(t, price), 50, "")
		require.NoError(t, err, price)
		requireMoney(t, price, ing.UnitPrice)
	}
}

func TestNewCatalog_RejectsDuplicateNames(t *testing.T) {
	_, err := NewCatalog(ingredient(t, "Egg", "30", 100), ingredient(t, "EGG", "31", 100))
	require.ErrorIs(t, err, ErrDuplicateIngredient)
}

func TestCatalog_ListPreservesInsertionOrderAndIsSnapshot(t *testing.T) {
	catalog, err := NewCatalog(noodleShop(t)...)
	require.NoError(t, err)

	list := catalog.List()
	require.Equal(t, []string{"Noodles", "Egg"}, []string{list[0].Name, list[1].Name})

	list[0].Stock = 0
	again, err := catalog.FindByName("Noodles")
	require.NoError(t, err)
	require.Equal(t, 10, again.Stock)
}

func TestCatalog_FindByNameIsCaseInsensitive(t *testing.T) {
	catalog, err := NewCatalog(noodleShop(t)...)
	require.NoError(t, err)

	ing, err := catalog.FindByName("nOoDlEs")
	require.NoError(t, err)
	require.Equal(t, "Noodles", ing.Name)

	_, err = catalog.FindByName("Chashu Pork")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_Deduct(t *testing.T) {
	catalog, err := NewCatalog(noodleShop(t)...)
	require.NoError(t, err)

	require.NoError(t, catalog.Deduct("Egg", 10))
	egg, _ := catalog.FindByName("Egg")
	require.Equal(t, 0, egg.Stock)

	err = catalog.Deduct("Egg", 1)
	require.ErrorIs(t, err, ErrInsufficientStock)
	var stockErr *StockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, 1, stockErr.Shortfall())

	require.ErrorIs(t, catalog.Deduct("Noodles", -1), ErrInvalidQuantity)
	require.ErrorIs(t, catalog.Deduct("Tofu", 1), ErrNotFound)
}

func TestCatalog_RestockClampsToCeiling(t *testing.T) {
	catalog, err := NewCatalog(noodleShop(t)...)
	require.NoError(t, err)
	require.NoError(t, catalog.Deduct("Noodles", 2))

	updated, err := catalog.Restock("Noodles", 5)
	require.NoError(t, err)
	require.Equal(t, 10, updated.Stock)

	_, err = catalog.Restock("Noodles", 11)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = catalog.Restock("Noodles", -1)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = catalog.Restock("Broth", 1)
	require.ErrorIs(t, err, ErrNotFound)
}
