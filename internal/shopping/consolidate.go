package shopping

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Consolidate merges every ingredient and seasoning of the given plans into
// one entry per plan key, summing quantities. The first occurrence of a key
// decides its display name, unit and category. The result is sorted by
// display name and is never nil.
func Consolidate(plans []WeeklyMealPlan) []ConsolidatedIngredient {
	merged := make(map[string]*ConsolidatedIngredient)
	order := make([]string, 0)

	add := func(ing MealIngredient, category Category) {
		key := PlanKey(ing.Name, ing.Unit)
		qty := finite(ing.Quantity)
		if existing, ok := merged[key]; ok {
			existing.Quantity += qty
			return
		}
		merged[key] = &ConsolidatedIngredient{
			DisplayName: strings.TrimSpace(ing.Name),
			Quantity:    qty,
			Unit:        strings.TrimSpace(ing.Unit),
			PlanKey:     key,
			Category:    category,
		}
		order = append(order, key)
	}

	for _, plan := range plans {
		for _, day := range plan.Days {
			for _, meal := range day.Meals {
				for _, ing := range meal.Ingredients {
					add(ing, CategoryFood)
				}
				for _, s := range meal.Seasonings {
					add(s, CategorySeasoning)
				}
			}
		}
	}

	out := make([]ConsolidatedIngredient, 0, len(order))
	for _, key := range order {
		out = append(out, *merged[key])
	}
	sortByName(out)
	return out
}

// sortByName orders entries by display name using English collation, with the
// plan key as a tie-break so equal-looking names still sort deterministically.
func sortByName(entries []ConsolidatedIngredient) {
	coll := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(entries, func(i, j int) bool {
		if c := coll.CompareString(entries[i].DisplayName, entries[j].DisplayName); c != 0 {
			return c < 0
		}
		return entries[i].PlanKey < entries[j].PlanKey
	})
}
