package recipecard

import (
	"strings"
	"testing"

	"savora-web/internal/core/recipe"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeStructured(f *gofakeit.Faker) *recipe.Structured {
	list := func() []string {
		n := f.Number(0, 4)
		out := make([]string, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, f.Sentence(4))
		}
		return out
	}
	maybe := func(s string) string {
		if f.Bool() {
			return s
		}
		return ""
	}

	s := &recipe.Structured{
		Title:        maybe(f.Dessert()),
		Description:  maybe(f.Sentence(8)),
		PrepTime:     maybe(f.Numerify("## mins")),
		CookTime:     maybe(f.Numerify("## mins")),
		Difficulty:   maybe(f.RandomString([]string{"Easy", "Medium", "Hard"})),
		Servings:     maybe(f.Numerify("#")),
		Ingredients:  list(),
		Instructions: list(),
		Tips:         list(),
		Alternatives: list(),
	}
	if f.Bool() {
		s.Nutrition = &recipe.NutritionSummary{Calories: f.Numerify("###"), Fat: maybe(f.Numerify("##g"))}
	}
	return s
}

func TestStructuredViewOmitsEmptyOptionalSections(t *testing.T) {
	f := gofakeit.New(42)
	for i := 0; i < 200; i++ {
		s := fakeStructured(f)
		v := NewCard(recipe.NewStructured(s), ModeStructured).View()

		require.True(t, v.Structured)
		assert.Equal(t, len(s.Tips) > 0, v.Tips != nil)
		assert.Equal(t, len(s.Alternatives) > 0, v.Alternatives != nil)
		assert.Equal(t, !s.Nutrition.IsEmpty(), v.Summary != nil)
		assert.Len(t, v.Ingredients, len(s.Ingredients))
		assert.Len(t, v.Instructions, len(s.Instructions))
		assert.NotEmpty(t, v.Title)
		if s.Title == "" {
			assert.Equal(t, DefaultTitle, v.Title)
		}
		assert.Empty(t, v.Text)
	}
}

func TestMetaBadges(t *testing.T) {
	v := NewCard(recipe.NewStructured(&recipe.Structured{PrepTime: "10 mins", Servings: "4"}), ModeStructured).View()
	require.Len(t, v.Meta, 2)
	assert.Equal(t, "Prep: 10 mins", v.Meta[0].Text)
	assert.Equal(t, "4", v.Meta[1].Text)

	v = NewCard(recipe.NewStructured(&recipe.Structured{}), ModeStructured).View()
	assert.Empty(t, v.Meta)
}

func TestNutritionSummary(t *testing.T) {
	s := &recipe.Structured{Nutrition: &recipe.NutritionSummary{Calories: "450", Protein: "30g", Fat: "12g"}}
	v := NewCard(recipe.NewStructured(s), ModeStructured).View()
	assert.Equal(t, []string{"450 cal", "30g protein", "12g fat"}, v.Summary)
}

func TestTextModeRendersVerbatim(t *testing.T) {
	f := gofakeit.New(7)
	for i := 0; i < 50; i++ {
		text := f.Paragraph(2, 3, 8, "\n")
		v := NewCard(recipe.NewText(text), ModeText).View()
		assert.False(t, v.Structured)
		assert.Equal(t, text, v.Text)
	}
}

func TestTextFallbackForStructuredRecipe(t *testing.T) {
	r := recipe.NewStructured(&recipe.Structured{Title: "Soup", Ingredients: []string{"water"}})

	v := NewCard(r, ModeText).View()
	assert.False(t, v.Structured)
	assert.True(t, strings.HasPrefix(v.Text, "{\n  \"title\": \"Soup\""))

	// 結構化模式但內容為文字
	v = NewCard(recipe.NewText("just text"), ModeStructured).View()
	assert.False(t, v.Structured)
	assert.Equal(t, "just text", v.Text)
}

func TestActions(t *testing.T) {
	card := NewCard(recipe.NewText("x"), ModeText)
	v := card.View()
	require.NotNil(t, v.Actions)
	assert.Equal(t, LabelNutrition, v.Actions.NutritionLabel)
	assert.False(t, v.Actions.NutritionDisabled)

	card.Nutrition.Begin()
	v = card.View()
	assert.Equal(t, LabelLoading, v.Actions.NutritionLabel)
	assert.True(t, v.Actions.NutritionDisabled)

	card.ActionsVisible = false
	assert.Nil(t, card.View().Actions)
}

func TestModeFromFormat(t *testing.T) {
	assert.Equal(t, ModeStructured, ModeFromFormat("json"))
	assert.Equal(t, ModeText, ModeFromFormat("text"))
	assert.Equal(t, ModeText, ModeFromFormat(""))
}
