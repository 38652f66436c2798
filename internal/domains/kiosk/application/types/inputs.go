package types

// LineInput is one requested ingredient and its quantity.
type LineInput struct {
	Ingredient string
	Quantity   int
}

// QuoteInput prices a selection without committing it.
type QuoteInput struct {
	Dish  string
	Lines []LineInput
}

// PlaceOrderInput carries an order and the cash tendered as a decimal string.
type PlaceOrderInput struct {
	Dish  string
	Lines []LineInput
	Cash  string
}

// RestockInput tops up a single ingredient.
type RestockInput struct {
	Ingredient string
	Amount     int
}

// JournalEntryInput identifies a journaled order.
type JournalEntryInput struct {
	OrderID string
}
