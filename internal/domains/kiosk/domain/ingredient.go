package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RestockCeiling is the maximum stock per ingredient and the level every ingredient starts at.
const RestockCeiling = 10

// Ingredient is a sellable unit of the catalog.
type Ingredient struct {
	Name         string
	UnitPrice    decimal.Decimal
	UnitCalories int
	ImageRef     string
	Stock        int
}

// PriceScale is the number of decimal places a unit price may carry.
const PriceScale = 2

// NewIngredient validates the static attributes and stocks the ingredient at the ceiling.
func NewIngredient(name string, unitPrice decimal.Decimal, unitCalories int, imageRef string) (Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Ingredient{}, fmt.Errorf("%w: name is required", ErrInvalidIngredient)
	}
	if unitPrice.IsNegative() {
		return Ingredient{}, fmt.Errorf("%w: %s has a negative price", ErrInvalidIngredient, name)
	}
	if !unitPrice.Round(PriceScale).Equal(unitPrice) {
		return Ingredient{}, fmt.Errorf("%w: %s price %s is finer than %d decimal places", ErrInvalidIngredient, name, unitPrice.String(), PriceScale)
	}
	if unitCalories < 0 {
		return Ingredient{}, fmt.Errorf("%w: %s has negative calories", ErrInvalidIngredient, name)
	}
	return Ingredient{
		Name:         name,
		UnitPrice:    unitPrice,
		UnitCalories: unitCalories,
		ImageRef:     imageRef,
		Stock:        RestockCeiling,
	}, nil
}

func (i *Ingredient) deduct(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: cannot deduct %d units of %s", ErrInvalidQuantity, amount, i.Name)
	}
	if amount > i.Stock {
		return &StockError{Ingredient: i.Name, Requested: amount, Available: i.Stock}
	}
	i.Stock -= amount
	return nil
}

func (i *Ingredient) restock(amount int) error {
	if amount < 0 || amount > RestockCeiling {
		return fmt.Errorf("%w: restock amount must be between 0 and %d, got %d", ErrInvalidQuantity, RestockCeiling, amount)
	}
	i.Stock = min(RestockCeiling, i.Stock+amount)
	return nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
