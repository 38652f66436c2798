package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Line requests Quantity units of one ingredient.
type Line struct {
	Ingredient string
	Quantity   int
}

// Selection is an ordered set of lines with unique ingredient names.
// Order does not affect cost but is kept for display.
type Selection struct {
	lines []Line
}

// NewSelection validates quantities and name uniqueness.
func NewSelection(lines ...Line) (Selection, error) {
	seen := make(map[string]struct{}, len(lines))
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		name := strings.TrimSpace(line.Ingredient)
		if name == "" {
			return Selection{}, fmt.Errorf("%w: ingredient name is required", ErrNotFound)
		}
		if line.Quantity < 0 {
			return Selection{}, fmt.Errorf("%w: %s quantity %d is negative", ErrInvalidQuantity, name, line.Quantity)
		}
		key := normalizeName(name)
		if _, dup := seen[key]; dup {
			return Selection{}, fmt.Errorf("%w: %s", ErrDuplicateIngredient, name)
		}
		seen[key] = struct{}{}
		out = append(out, Line{Ingredient: name, Quantity: line.Quantity})
	}
	return Selection{lines: out}, nil
}

// SelectionFromMap builds a selection ordered by ingredient name.
func SelectionFromMap(quantities map[string]int) (Selection, error) {
	names := make([]string, 0, len(quantities))
	for name := range quantities {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]Line, 0, len(names))
	for _, name := range names {
		lines = append(lines, Line{Ingredient: name, Quantity: quantities[name]})
	}
	return NewSelection(lines...)
}

// MustSelection is NewSelection for literals known to be valid.
func MustSelection(lines ...Line) Selection {
	s, err := NewSelection(lines...)
	if err != nil {
		panic(err)
	}
	return s
}

// Lines returns a copy of the lines in selection order.
func (s Selection) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Quantity returns the requested units for name, or zero.
func (s Selection) Quantity(name string) int {
	key := normalizeName(name)
	for _, line := range s.lines {
		if normalizeName(line.Ingredient) == key {
			return line.Quantity
		}
	}
	return 0
}

// IsEmpty reports whether no line asks for a positive quantity.
func (s Selection) IsEmpty() bool {
	for _, line := range s.lines {
		if line.Quantity > 0 {
			return false
		}
	}
	return true
}

// Describe renders positive lines as "Noodles (2 orders), Egg (1 orders)".
func (s Selection) Describe() string {
	parts := make([]string, 0, len(s.lines))
	for _, line := range s.lines {
		if line.Quantity <= 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%d orders)", line.Ingredient, line.Quantity))
	}
	return strings.Join(parts, ", ")
}
