package mapper

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	types "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/application/types"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
	"github.com/Apurer/ramen-kiosk/internal/shared/projection"
)

// Ingredient is the catalog entry shown on the kiosk screen.
type Ingredient struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Calories int    `json:"calories"`
	Image    string `json:"image,omitempty"`
	Stock    int    `json:"stock"`
}

type Dish struct {
	Name         string `json:"name"`
	Customizable bool   `json:"customizable"`
}

// Line is one ingredient of a selection.
type Line struct {
	Ingredient string `json:"ingredient"`
	Quantity   int    `json:"quantity"`
}

type QuoteRequest struct {
	Dish  string `json:"dish,omitempty"`
	Lines []Line `json:"lines"`
}

// OrderRequest accepts cash as a JSON number or a numeric string.
// Cash stays raw so the service, not the decoder, rejects non-numeric values.
type OrderRequest struct {
	Dish  string          `json:"dish,omitempty"`
	Lines []Line          `json:"lines"`
	Cash  json.RawMessage `json:"cash"`
}

type QuoteLine struct {
	Ingredient string `json:"ingredient"`
	Quantity   int    `json:"quantity"`
	Cost       string `json:"cost"`
	Calories   int    `json:"calories"`
}

type Quote struct {
	TotalCost     string      `json:"totalCost"`
	TotalCalories int         `json:"totalCalories"`
	Lines         []QuoteLine `json:"lines"`
}

type Receipt struct {
	OrderID       string      `json:"orderId"`
	Sequence      int64       `json:"sequence"`
	Dish          string      `json:"dish"`
	Lines         []QuoteLine `json:"lines"`
	TotalCost     string      `json:"totalCost"`
	TotalCalories int         `json:"totalCalories"`
	Tendered      string      `json:"tendered"`
	Change        string      `json:"change"`
	PlacedAt      time.Time   `json:"placedAt"`
}

// RestockRequest keeps Amount optional so a missing field is reported instead of treated as zero.
type RestockRequest struct {
	Amount *int `json:"amount"`
}

type Revenue struct {
	Amount string `json:"amount"`
}

// OrderRecord is the operator view of a committed order.
type OrderRecord struct {
	OrderID       string    `json:"orderId"`
	Sequence      int64     `json:"sequence"`
	Dish          string    `json:"dish"`
	Lines         []Line    `json:"lines"`
	Description   string    `json:"description"`
	Summary       string    `json:"summary"`
	TotalCost     string    `json:"totalCost"`
	TotalCalories int       `json:"totalCalories"`
	PlacedAt      time.Time `json:"placedAt"`
}

type JournalEntry struct {
	OrderRecord
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type JournalSummary struct {
	Orders  int64  `json:"orders"`
	Revenue string `json:"revenue"`
}

type Journal struct {
	Entries []JournalEntry `json:"entries"`
	Summary JournalSummary `json:"summary"`
}

// Money renders an amount with two decimals and no currency symbol.
func Money(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func ToQuoteInput(req QuoteRequest) types.QuoteInput {
	return types.QuoteInput{Dish: req.Dish, Lines: toLineInputs(req.Lines)}
}

func ToPlaceOrderInput(req OrderRequest) types.PlaceOrderInput {
	return types.PlaceOrderInput{Dish: req.Dish, Lines: toLineInputs(req.Lines), Cash: cashText(req.Cash)}
}

// cashText unquotes a JSON string and passes any other literal through. null means absent.
func cashText(raw json.RawMessage) string {
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		return ""
	}
	var quoted string
	if strings.HasPrefix(text, `"`) && json.Unmarshal(raw, &quoted) == nil {
		return quoted
	}
	return text
}

func toLineInputs(lines []Line) []types.LineInput {
	out := make([]types.LineInput, 0, len(lines))
	for _, l := range lines {
		out = append(out, types.LineInput{Ingredient: l.Ingredient, Quantity: l.Quantity})
	}
	return out
}

func FromIngredient(ing domain.Ingredient) Ingredient {
	return Ingredient{
		Name:     ing.Name,
		Price:    Money(ing.UnitPrice),
		Calories: ing.UnitCalories,
		Image:    ing.ImageRef,
		Stock:    ing.Stock,
	}
}

func FromIngredients(list []domain.Ingredient) []Ingredient {
	out := make([]Ingredient, 0, len(list))
	for _, ing := range list {
		out = append(out, FromIngredient(ing))
	}
	return out
}

func FromDishes(list []domain.Dish) []Dish {
	out := make([]Dish, 0, len(list))
	for _, d := range list {
		out = append(out, Dish{Name: d.Name, Customizable: d.Customizable})
	}
	return out
}

func FromQuote(q domain.Quote) Quote {
	return Quote{
		TotalCost:     Money(q.TotalCost),
		TotalCalories: q.TotalCalories,
		Lines:         fromQuoteLines(q.Lines),
	}
}

func FromReceipt(r domain.Receipt) Receipt {
	return Receipt{
		OrderID:       r.OrderID.String(),
		Sequence:      r.Sequence,
		Dish:          r.Dish,
		Lines:         fromQuoteLines(r.Lines),
		TotalCost:     Money(r.TotalCost),
		TotalCalories: r.TotalCalories,
		Tendered:      Money(r.Tendered),
		Change:        Money(r.Change),
		PlacedAt:      r.PlacedAt,
	}
}

func fromQuoteLines(lines []domain.QuoteLine) []QuoteLine {
	out := make([]QuoteLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, QuoteLine{
			Ingredient: l.Ingredient,
			Quantity:   l.Quantity,
			Cost:       Money(l.Cost),
			Calories:   l.Calories,
		})
	}
	return out
}

func FromRevenue(amount decimal.Decimal) Revenue {
	return Revenue{Amount: Money(amount)}
}

func FromOrderRecord(r domain.OrderRecord) OrderRecord {
	lines := make([]Line, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, Line{Ingredient: l.Ingredient, Quantity: l.Quantity})
	}
	return OrderRecord{
		OrderID:       r.ID.String(),
		Sequence:      r.Sequence,
		Dish:          r.Dish,
		Lines:         lines,
		Description:   r.Description,
		Summary:       r.Summary(),
		TotalCost:     Money(r.TotalCost),
		TotalCalories: r.TotalCalories,
		PlacedAt:      r.PlacedAt,
	}
}

func FromOrderRecords(list []domain.OrderRecord) []OrderRecord {
	out := make([]OrderRecord, 0, len(list))
	for _, r := range list {
		out = append(out, FromOrderRecord(r))
	}
	return out
}

func FromJournalEntry(p types.OrderProjection) JournalEntry {
	view := projection.Map(p, FromOrderRecord)
	return JournalEntry{
		OrderRecord: view.Entity,
		CreatedAt:   view.Metadata.CreatedAt,
		UpdatedAt:   view.Metadata.UpdatedAt,
	}
}

func FromJournal(view types.JournalView) Journal {
	entries := make([]JournalEntry, 0, len(view.Entries))
	for _, p := range view.Entries {
		entries = append(entries, FromJournalEntry(p))
	}
	return Journal{
		Entries: entries,
		Summary: JournalSummary{Orders: view.Summary.Orders, Revenue: Money(view.Summary.Revenue)},
	}
}
