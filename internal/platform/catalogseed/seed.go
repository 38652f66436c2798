// Package catalogseed loads the kiosk menu and ingredient catalog from YAML.
package catalogseed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

type file struct {
	Dishes      []dishEntry       `yaml:"dishes"`
	Ingredients []ingredientEntry `yaml:"ingredients"`
}

type dishEntry struct {
	Name         string `yaml:"name"`
	Customizable bool   `yaml:"customizable"`
}

type ingredientEntry struct {
	Name     string `yaml:"name"`
	Price    string `yaml:"price"`
	Calories int    `yaml:"calories"`
	Image    string `yaml:"image"`
}

// Seed is a validated catalog ready to open a kiosk session.
type Seed struct {
	Dishes      []domain.Dish
	Ingredients []domain.Ingredient
}

// Default returns the built-in ramen catalog.
func Default() (Seed, error) {
	return Parse(defaultCatalog)
}

// Load reads a seed file, or the built-in catalog when path is empty.
func Load(path string) (Seed, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read catalog seed: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Seed, error) {
	var raw file
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Seed{}, fmt.Errorf("parse catalog seed: %w", err)
	}
	if len(raw.Ingredients) == 0 {
		return Seed{}, errors.New("catalog seed has no ingredients")
	}
	seed := Seed{
		Dishes:      make([]domain.Dish, 0, len(raw.Dishes)),
		Ingredients: make([]domain.Ingredient, 0, len(raw.Ingredients)),
	}
	for _, d := range raw.Dishes {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			return Seed{}, errors.New("catalog seed has a dish without a name")
		}
		seed.Dishes = append(seed.Dishes, domain.Dish{Name: name, Customizable: d.Customizable})
	}
	for _, entry := range raw.Ingredients {
		price, err := decimal.NewFromString(strings.TrimSpace(entry.Price))
		if err != nil {
			return Seed{}, fmt.Errorf("ingredient %q has invalid price %q: %w", entry.Name, entry.Price, err)
		}
		ing, err := domain.NewIngredient(entry.Name, price, entry.Calories, entry.Image)
		if err != nil {
			return Seed{}, err
		}
		seed.Ingredients = append(seed.Ingredients, ing)
	}
	return seed, nil
}

// NewKiosk opens a session over the seed. A seed without dishes keeps the default menu.
func (s Seed) NewKiosk(opts ...domain.Option) (*domain.Kiosk, error) {
	all := append([]domain.Option{domain.WithDishes(s.Dishes...)}, opts...)
	return domain.NewKiosk(s.Ingredients, all...)
}
