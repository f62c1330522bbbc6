package question

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"prepmate-backend-go/internal/random"
)

func TestRate_AlwaysInRange(t *testing.T) {
	fb := NewFeedback(random.New(1))

	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		rating := fb.Rate()
		assert.GreaterOrEqual(t, rating, 3)
		assert.LessOrEqual(t, rating, 5)
		seen[rating] = true
	}
	// Over 200 draws every value in {3,4,5} should appear.
	assert.Len(t, seen, 3)
}

func TestRenderStars(t *testing.T) {
	tests := []struct {
		rating int
		want   string
	}{
		{0, "☆☆☆☆☆"},
		{1, "★☆☆☆☆"},
		{2, "★★☆☆☆"},
		{3, "★★★☆☆"},
		{4, "★★★★☆"},
		{5, "★★★★★"},
		{-3, "☆☆☆☆☆"}, // clamped
		{9, "★★★★★"},  // clamped
	}

	for _, tt := range tests {
		got := RenderStars(tt.rating)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, 5, len([]rune(got)), "always exactly five glyphs")
	}
}

func TestRenderStars_FilledCountMatchesRating(t *testing.T) {
	for rating := 0; rating <= 5; rating++ {
		got := RenderStars(rating)
		assert.Equal(t, rating, strings.Count(got, starFilled))
		assert.Equal(t, 5-rating, strings.Count(got, starEmpty))
	}
}

func TestImprovedExample(t *testing.T) {
	fb := NewFeedback(random.New(2))

	for _, category := range Categories {
		example := fb.ImprovedExample(category)
		assert.Contains(t, improvedExamplesByCategory[category], example)
	}

	// Unknown category falls back to the Algorithms pool.
	fallback := fb.ImprovedExample("Interpretive Dance")
	assert.Contains(t, improvedExamplesByCategory[CategoryAlgorithms], fallback)
}
