package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func money(t testing.TB, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func requireMoney(t testing.TB, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, money(t, want).Equal(got), "expected %s, got %s", want, got.String())
}

func ingredient(t testing.TB, name, price string, calories int) Ingredient {
	t.Helper()
	ing, err := NewIngredient(name, money(t, price), calories, "")
	require.NoError(t, err)
	return ing
}

// noodleShop is the two-ingredient catalog used by the order scenarios.
func noodleShop(t testing.TB) []Ingredient {
	t.Helper()
	return []Ingredient{
		ingredient(t, "Noodles", "20", 300),
		ingredient(t, "Egg", "30", 100),
	}
}

func customRamen(t testing.TB, lines ...Line) DishSpec {
	t.Helper()
	sel, err := NewSelection(lines...)
	require.NoError(t, err)
	spec, err := CustomRamen().Compose(sel)
	require.NoError(t, err)
	return spec
}
