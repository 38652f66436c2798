package domain

import (
	"fmt"
	"strings"
)

// CustomRamenName is the default customizable dish.
const CustomRamenName = "Custom Ramen"

// Dish is a menu offering. Only customizable dishes accept a caller selection.
type Dish struct {
	Name         string
	Customizable bool
}

// CustomRamen returns the kiosk's customizable ramen offering.
func CustomRamen() Dish {
	return Dish{Name: CustomRamenName, Customizable: true}
}

// DishSpec pairs a dish with the selection for one order.
// Totals are derived from the catalog at quote or commit time.
type DishSpec struct {
	Dish      Dish
	Selection Selection
}

// Compose fills the dish with a per-order selection.
func (d Dish) Compose(selection Selection) (DishSpec, error) {
	if !d.Customizable && !selection.IsEmpty() {
		return DishSpec{}, fmt.Errorf("%w: %s", ErrNotCustomizable, d.Name)
	}
	return DishSpec{Dish: d, Selection: selection}, nil
}

// Menu is the ordered list of dishes offered by the kiosk.
type Menu []Dish

// Find returns the dish with a case-insensitive name match. An empty name selects the first dish.
func (m Menu) Find(name string) (Dish, error) {
	if len(m) == 0 {
		return Dish{}, fmt.Errorf("%w: menu is empty", ErrUnknownDish)
	}
	if strings.TrimSpace(name) == "" {
		return m[0], nil
	}
	key := normalizeName(name)
	for _, d := range m {
		if normalizeName(d.Name) == key {
			return d, nil
		}
	}
	return Dish{}, fmt.Errorf("%w: %s", ErrUnknownDish, name)
}
