package shopping

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeIngredient coerces a loosely typed ingredient into a MealIngredient.
//
// A bare string becomes {name, 1, ""}. An object with a name keeps a numeric quantity,
// parses a numeric string, defaults a missing or null quantity to 1 and sets
// anything else to 0. A non-string unit becomes "". Any other input yields
// an empty name with quantity 1.
func NormalizeIngredient(raw interface{}) MealIngredient {
	switch v := raw.(type) {
	case string:
		return MealIngredient{Name: v, Quantity: 1}
	case MealIngredient:
		v.Quantity = finite(v.Quantity)
		return v
	case *MealIngredient:
		if v == nil {
			return MealIngredient{Quantity: 1}
		}
		return NormalizeIngredient(*v)
	case map[string]interface{}:
		if !hasKey(v, "name") {
			return MealIngredient{Quantity: 1}
		}
		return MealIngredient{
			Name:     stringify(v["name"]),
			Quantity: coerceQuantity(v["quantity"], hasKey(v, "quantity")),
			Unit:     unitOf(v["unit"]),
		}
	default:
		return MealIngredient{Quantity: 1}
	}
}

// NormalizeIngredients normalizes every entry of a loose list. A nil or
// non-list input yields an empty slice.
func NormalizeIngredients(raw interface{}) []MealIngredient {
	list, ok := raw.([]interface{})
	if !ok {
		return []MealIngredient{}
	}
	out := make([]MealIngredient, 0, len(list))
	for _, entry := range list {
		out = append(out, NormalizeIngredient(entry))
	}
	return out
}

func hasKey(m map[string]interface{}, key string) bool {
	_, ok := m[key]
	return ok
}

func coerceQuantity(q interface{}, present bool) float64 {
	if !present || q == nil {
		return 1
	}
	switch n := q.(type) {
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		// Numeric strings keep their value instead of falling back to 1.
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return finite(f)
	default:
		return 0
	}
}

func unitOf(u interface{}) string {
	if s, ok := u.(string); ok {
		return s
	}
	return ""
}

func stringify(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}

// finite maps NaN and infinities to 0.
func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
