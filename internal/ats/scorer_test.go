package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"prepmate-backend-go/internal/random"
)

func TestScore_RangeAndOrdering(t *testing.T) {
	scorer := NewScorer(random.New(1))

	jd := "Looking for a backend engineer with golang, postgres, kubernetes and redis knowledge."
	fullMatch := scorer.Score("Senior backend engineer: golang, postgres, kubernetes, redis, grpc.", jd)
	noMatch := scorer.Score("Pastry chef specializing in croissants.", jd)

	assert.GreaterOrEqual(t, fullMatch.Score, 0)
	assert.LessOrEqual(t, fullMatch.Score, 100)
	assert.Greater(t, fullMatch.Score, noMatch.Score,
		"a matching resume must outscore an unrelated one")
	assert.NotEmpty(t, fullMatch.MatchedKeywords)
	assert.Empty(t, noMatch.MatchedKeywords)
	assert.NotEmpty(t, noMatch.MissingKeywords)
	assert.NotEmpty(t, fullMatch.Feedback)
}

func TestScore_EmptyJobDescription(t *testing.T) {
	scorer := NewScorer(random.New(2))

	res := scorer.Score("any resume text", "")
	assert.GreaterOrEqual(t, res.Score, 55)
	assert.LessOrEqual(t, res.Score, 65)
	assert.Empty(t, res.MatchedKeywords)
	assert.Empty(t, res.MissingKeywords)
}

func TestExtractKeywords(t *testing.T) {
	keywords := extractKeywords("Golang, golang, AND the team needs C# plus REST APIs")
	assert.Contains(t, keywords, "golang")
	assert.Contains(t, keywords, "apis")
	assert.NotContains(t, keywords, "the", "stopwords are excluded")
	assert.NotContains(t, keywords, "and")
	// duplicates collapse
	count := 0
	for _, k := range keywords {
		if k == "golang" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
