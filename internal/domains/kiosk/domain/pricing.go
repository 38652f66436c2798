package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// QuoteLine is the per-ingredient breakdown of a quote.
type QuoteLine struct {
	Ingredient string
	Quantity   int
	Cost       decimal.Decimal
	Calories   int
}

// Quote is the cost and calories of a selection at the time it was computed.
type Quote struct {
	TotalCost     decimal.Decimal
	TotalCalories int
	Lines         []QuoteLine
}

// QuoteSelection prices every line against the lookup. It does not consult stock.
func QuoteSelection(selection Selection, prices PriceLookup) (Quote, error) {
	q := Quote{TotalCost: decimal.Zero}
	for _, line := range selection.lines {
		if line.Quantity < 0 {
			return Quote{}, fmt.Errorf("%w: %s quantity %d is negative", ErrInvalidQuantity, line.Ingredient, line.Quantity)
		}
		ing, err := prices.FindByName(line.Ingredient)
		if err != nil {
			return Quote{}, err
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		cost := ing.UnitPrice.Mul(qty)
		calories := ing.UnitCalories * line.Quantity
		q.TotalCost = q.TotalCost.Add(cost)
		q.TotalCalories += calories
		q.Lines = append(q.Lines, QuoteLine{
			Ingredient: ing.Name,
			Quantity:   line.Quantity,
			Cost:       cost,
			Calories:   calories,
		})
	}
	return q, nil
}
