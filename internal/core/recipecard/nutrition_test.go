package recipecard

import (
	"testing"

	"savora-web/internal/core/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v float64) *float64 { return &v }

func TestNutritionPanelLifecycle(t *testing.T) {
	var s NutritionState
	assert.Nil(t, s.View())

	seq := s.Begin()
	p := s.View()
	require.NotNil(t, p)
	assert.Equal(t, PlaceholderLoading, p.Placeholder)

	detail := &recipe.NutritionDetail{
		PerServing:  recipe.NutrientList{{Key: "calories", Value: "300kcal"}, {Key: "saturatedFat", Value: "3g"}},
		Benefits:    []string{"Rich in fiber"},
		Tips:        "Swap white rice for brown rice",
		HealthScore: score(8),
	}
	require.True(t, s.Complete(seq, detail))

	p = s.View()
	require.NotNil(t, p)
	require.Len(t, p.Tiles, 2)
	assert.Equal(t, "Calories: 300kcal", p.Tiles[0].String())
	assert.Equal(t, "Saturated Fat", p.Tiles[1].Label)
	assert.Equal(t, []string{"Rich in fiber"}, p.Benefits)
	assert.Equal(t, "Swap white rice for brown rice", p.Tip)
	assert.Equal(t, "8/10", p.HealthScore)
	assert.Empty(t, p.Placeholder)

	s.Close()
	assert.Nil(t, s.View())
	assert.Equal(t, detail, s.Detail)
}

func TestNutritionPanelFailureShowsPlaceholder(t *testing.T) {
	var s NutritionState
	seq := s.Begin()
	require.True(t, s.Fail(seq))

	p := s.View()
	require.NotNil(t, p)
	assert.Equal(t, PlaceholderEmpty, p.Placeholder)
	assert.Empty(t, p.Tiles)
	assert.False(t, s.Loading)
}

func TestNutritionPanelDropsStaleResult(t *testing.T) {
	var s NutritionState
	first := s.Begin()
	second := s.Begin()

	assert.False(t, s.Complete(first, &recipe.NutritionDetail{Tips: "old"}))
	assert.True(t, s.Loading)

	assert.True(t, s.Complete(second, &recipe.NutritionDetail{Tips: "new"}))
	assert.Equal(t, "new", s.Detail.Tips)
}

func TestNutritionPanelResetInvalidatesInFlight(t *testing.T) {
	var s NutritionState
	seq := s.Begin()
	s.Reset()

	assert.False(t, s.Open)
	assert.False(t, s.Complete(seq, &recipe.NutritionDetail{Tips: "late"}))
	assert.Nil(t, s.Detail)
}

func TestHealthScoreBadgeOnlyWhenPresent(t *testing.T) {
	s := NutritionState{Open: true, Detail: &recipe.NutritionDetail{Tips: "Drink water"}}
	p := s.View()
	assert.Empty(t, p.HealthScore)
	assert.Nil(t, p.Benefits)

	s.Detail.HealthScore = score(6.5)
	assert.Equal(t, "6.5/10", s.View().HealthScore)

	s.Detail.HealthScore = score(0)
	assert.Empty(t, s.View().HealthScore)
}
