package shopping

import (
	"math"
	"strconv"
	"strings"
)

// FormatQuantity renders a quantity rounded to two decimals without trailing zeros.
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(math.Round(finite(q)*100)/100, 'f', -1, 64)
}

// FormatIngredient renders an item as "2 cups rice". A quantity that is not
// positive is omitted, as is an empty unit.
func FormatIngredient(name string, quantity float64, unit string) string {
	parts := make([]string, 0, 3)
	if q := finite(quantity); q > 0 {
		parts = append(parts, FormatQuantity(q))
	}
	if u := strings.TrimSpace(unit); u != "" {
		parts = append(parts, u)
	}
	parts = append(parts, strings.TrimSpace(name))
	return strings.Join(parts, " ")
}

// RenderText renders a list as plain text grouped into food and seasoning
// sections. Checked items are marked with [x].
func RenderText(title string, items []Item) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")

	sections := []struct {
		label    string
		category Category
	}{
		{"Ingredients", CategoryFood},
		{"Seasonings", CategorySeasoning},
	}
	for _, sec := range sections {
		lines := make([]string, 0)
		for _, item := range items {
			if item.Category != sec.category {
				continue
			}
			mark := "[ ]"
			if item.Checked {
				mark = "[x]"
			}
			lines = append(lines, mark+" "+FormatIngredient(item.Name, item.Quantity, item.Unit))
		}
		if len(lines) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(sec.label)
		b.WriteString("\n")
		for _, l := range lines {
			b.WriteString(l)
			b.WriteString("\n")
		}
	}
	return b.String()
}
