// Package routing classifies order line items as meal or beverage and
// partitions them across the physical print destinations. It is the single
// place category defaults come from: every caller that needs a category and
// has none uses Classify.
package routing

import (
	"strings"
	"unicode"

	"caissepro/internal/domain"
)

// defaultBeverageKeywords drives the fallback classification of lines with
// no catalog category. A keyword has to match a whole word of the product
// name, case-insensitively and ignoring accents, so "tea" never fires on
// "Steak". Menus mix French and English product names, so both term sets
// are included.
var defaultBeverageKeywords = []string{
	"coffee", "café", "cafe",
	"tea", "thé",
	"juice", "jus",
	"water", "eau",
	"beer", "bière", "biere",
	"wine", "vin",
	"alcohol", "alcool",
	"drink", "boisson",
	"soda",
	"smoothie",
	"cocktail",
}

type Engine struct {
	keywords map[string]struct{}
}

// NewEngine builds an engine with the default beverage keyword set plus any
// locale-specific extra terms from configuration.
func NewEngine(extraKeywords ...string) *Engine {
	keywords := make(map[string]struct{}, len(defaultBeverageKeywords)+len(extraKeywords))
	for _, kw := range defaultBeverageKeywords {
		keywords[normalize(kw)] = struct{}{}
	}
	for _, kw := range extraKeywords {
		if kw = normalize(strings.TrimSpace(kw)); kw != "" {
			keywords[kw] = struct{}{}
		}
	}
	return &Engine{keywords: keywords}
}

// accentFolder maps the accented letters appearing in menu vocabulary to
// their base letters, so "Café" and "cafe" classify identically.
var accentFolder = strings.NewReplacer(
	"à", "a", "â", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"î", "i", "ï", "i",
	"ô", "o",
	"û", "u", "ù", "u", "ü", "u",
	"ç", "c",
)

func normalize(s string) string {
	return accentFolder.Replace(strings.ToLower(s))
}

// words splits a normalized product name into its word tokens. Apostrophes
// and punctuation separate words, so "Jus d'orange" yields jus, d, orange.
func words(name string) []string {
	return strings.FieldsFunc(normalize(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Classify returns the item's category type. A category inherited from the
// catalog wins; otherwise the product name's words are matched against the
// beverage keyword set and everything that does not match is a meal.
func (e *Engine) Classify(item domain.OrderItem) string {
	switch item.CategoryType {
	case domain.CategoryTypeMeal, domain.CategoryTypeBeverage:
		return item.CategoryType
	}

	for _, word := range words(item.ProductName) {
		if _, ok := e.keywords[word]; ok {
			return domain.CategoryTypeBeverage
		}
	}
	return domain.CategoryTypeMeal
}

// Partition groups items by destination. Ticket always carries every item;
// Bar and Cuisine are disjoint and together cover the full list.
type Partition struct {
	Ticket  []domain.OrderItem
	Bar     []domain.OrderItem
	Cuisine []domain.OrderItem
}

func (e *Engine) Partition(items []domain.OrderItem) Partition {
	p := Partition{Ticket: items}
	for _, item := range items {
		if e.Classify(item) == domain.CategoryTypeBeverage {
			p.Bar = append(p.Bar, item)
		} else {
			p.Cuisine = append(p.Cuisine, item)
		}
	}
	return p
}
