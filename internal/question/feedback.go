package question

import "strings"

// Star glyphs used by RenderStars.
const (
	starFilled = "★"
	starEmpty  = "☆"
)

// Feedback synthesizes a rating and an exemplar answer for a practice round.
// The rating is uniformly random in [3,5] and performs no analysis of the
// actual answer; this mirrors the product behavior and is a documented
// limitation, not a bug.
type Feedback struct {
	rng Source
}

// NewFeedback creates a Feedback synthesizer backed by the given source.
func NewFeedback(rng Source) *Feedback {
	return &Feedback{rng: rng}
}

// Rate returns a rating uniformly distributed over {3, 4, 5}.
func (f *Feedback) Rate() int {
	return 3 + f.rng.Intn(3)
}

// ImprovedExample returns a canned exemplar answer for the category, picked
// uniformly at random. Unknown categories use the Algorithms pool.
func (f *Feedback) ImprovedExample(category string) string {
	pool, ok := improvedExamplesByCategory[category]
	if !ok {
		pool = improvedExamplesByCategory[CategoryAlgorithms]
	}
	return pool[f.rng.Intn(len(pool))]
}

// RenderStars renders a rating as exactly five glyphs, filled up to the
// rating. Ratings outside [0,5] are clamped.
func RenderStars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat(starFilled, rating) + strings.Repeat(starEmpty, 5-rating)
}
