package shopping

// Reconcile rebuilds the plan-derived part of a shopping list from freshly
// consolidated ingredients. Checked state carries over from previous plan
// items with the same plan key. Manual items follow the plan items, unchanged
// and in their original order. Neither input is modified.
func Reconcile(consolidated []ConsolidatedIngredient, previous []Item) []Item {
	checked := make(map[string]bool)
	for _, item := range previous {
		if item.Source == SourcePlan && item.PlanKey != "" {
			checked[item.PlanKey] = item.Checked
		}
	}

	out := make([]Item, 0, len(consolidated)+len(previous))
	for _, c := range consolidated {
		out = append(out, Item{
			ID:       PlanItemID(c.PlanKey),
			Name:     c.DisplayName,
			Quantity: c.Quantity,
			Unit:     c.Unit,
			Source:   SourcePlan,
			Checked:  checked[c.PlanKey],
			PlanKey:  c.PlanKey,
			Category: c.Category,
		})
	}

	for _, item := range previous {
		if item.Source == SourceManual {
			out = append(out, item)
		}
	}
	return out
}
