package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeContent(t *testing.T) {
	page := Home()

	assert.Equal(t, ExampleIngredients, page.Hero.Examples)
	assert.Len(t, page.About.Features, 4)
	require.Len(t, page.HowTo.Steps, 3)
	for i, step := range page.HowTo.Steps {
		assert.Equal(t, i+1, step.Number)
	}

	require.Len(t, page.Pricing.Plans, 3)
	starter := page.Pricing.Plans[0]
	assert.Equal(t, "Starter", starter.Name)
	assert.False(t, starter.Featured)

	var missing []string
	for _, f := range starter.Features {
		if !f.Included {
			missing = append(missing, f.Text)
		}
	}
	assert.Equal(t, []string{"Voice input", "AI chatbot assistance", "Advanced customization", "Meal planning"}, missing)
	assert.True(t, page.Pricing.Plans[1].Featured)
}

func TestHomeReturnsCopy(t *testing.T) {
	page := Home()
	page.Hero.Examples[0] = "changed"
	assert.Equal(t, "Chicken, Rice, Tomatoes", Home().Hero.Examples[0])
}
