package domain

import "fmt"

// PriceLookup resolves ingredients by name for pricing.
type PriceLookup interface {
	FindByName(name string) (Ingredient, error)
}

// Catalog holds the sellable ingredients in insertion order.
// It is not safe for concurrent use; Kiosk serializes access to it.
type Catalog struct {
	items []Ingredient
	index map[string]int
}

// NewCatalog builds a catalog, rejecting duplicate names.
func NewCatalog(ingredients ...Ingredient) (*Catalog, error) {
	c := &Catalog{
		items: make([]Ingredient, 0, len(ingredients)),
		index: make(map[string]int, len(ingredients)),
	}
	for _, ing := range ingredients {
		key := normalizeName(ing.Name)
		if key == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidIngredient)
		}
		if _, exists := c.index[key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateIngredient, ing.Name)
		}
		if ing.Stock < 0 || ing.Stock > RestockCeiling {
			return nil, fmt.Errorf("%w: %s stock %d outside 0..%d", ErrInvalidQuantity, ing.Name, ing.Stock, RestockCeiling)
		}
		c.index[key] = len(c.items)
		c.items = append(c.items, ing)
	}
	return c, nil
}

// List returns a snapshot of every ingredient in insertion order.
func (c *Catalog) List() []Ingredient {
	out := make([]Ingredient, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports the number of ingredients.
func (c *Catalog) Len() int {
	return len(c.items)
}

// FindByName matches case-insensitively and returns a copy.
func (c *Catalog) FindByName(name string) (Ingredient, error) {
	i, ok := c.index[normalizeName(name)]
	if !ok {
		return Ingredient{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return c.items[i], nil
}

// Deduct removes amount units from the named ingredient.
func (c *Catalog) Deduct(name string, amount int) error {
	ing, err := c.lookup(name)
	if err != nil {
		return err
	}
	return ing.deduct(amount)
}

// Restock adds amount units, clamped to RestockCeiling, and returns the updated ingredient.
func (c *Catalog) Restock(name string, amount int) (Ingredient, error) {
	ing, err := c.lookup(name)
	if err != nil {
		return Ingredient{}, err
	}
	if err := ing.restock(amount); err != nil {
		return Ingredient{}, err
	}
	return *ing, nil
}

func (c *Catalog) lookup(name string) (*Ingredient, error) {
	i, ok := c.index[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return &c.items[i], nil
}

// stockLevels captures current stock so a failed commit can be undone.
func (c *Catalog) stockLevels() []int {
	levels := make([]int, len(c.items))
	for i := range c.items {
		levels[i] = c.items[i].Stock
	}
	return levels
}

func (c *Catalog) restoreStock(levels []int) {
	for i := range c.items {
		c.items[i].Stock = levels[i]
	}
}
