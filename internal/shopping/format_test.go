package shopping

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatIngredient(t *testing.T) {
	assert.Equal(t, "2 cups rice", FormatIngredient("rice", 2, "cups"))
	assert.Equal(t, "1.5 kg chicken", FormatIngredient("chicken", 1.5, "kg"))
	assert.Equal(t, "3 eggs", FormatIngredient("eggs", 3, ""))
	assert.Equal(t, "tsp salt", FormatIngredient("salt", 0, "tsp"))
	assert.Equal(t, "0.33 cup milk", FormatIngredient("milk", 1.0/3.0, "cup"))
	assert.Equal(t, "cups flour", FormatIngredient("flour", -2, "cups"))
	assert.Equal(t, "eggs", FormatIngredient(" eggs ", -1, ""))
}

func TestRenderText(t *testing.T) {
	items := []Item{
		{Name: "rice", Quantity: 2, Unit: "cups", Category: CategoryFood, Checked: true},
		{Name: "salt", Quantity: 1, Unit: "tsp", Category: CategorySeasoning},
		{Name: "foil", Quantity: 1, Category: CategoryFood, Source: SourceManual},
	}

	text := RenderText("Shopping list", items)
	assert.True(t, strings.HasPrefix(text, "Shopping list\n"))
	assert.Contains(t, text, "Ingredients\n[x] 2 cups rice\n[ ] 1 foil\n")
	assert.Contains(t, text, "Seasonings\n[ ] 1 tsp salt\n")
	assert.Less(t, strings.Index(text, "Ingredients"), strings.Index(text, "Seasonings"))
}

func TestRenderTextSkipsEmptySections(t *testing.T) {
	text := RenderText("List", []Item{{Name: "rice", Quantity: 1, Category: CategoryFood}})
	assert.NotContains(t, text, "Seasonings")
}
