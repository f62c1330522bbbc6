package question

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepmate-backend-go/internal/random"
)

func containsTopic(topics []string, want string) bool {
	for _, t := range topics {
		if t == want {
			return true
		}
	}
	return false
}

func TestGenerate_AllCategoryDifficultyPairs(t *testing.T) {
	gen := NewGenerator(random.New(1))

	for _, category := range Categories {
		for _, difficulty := range Difficulties {
			t.Run(category+"/"+difficulty, func(t *testing.T) {
				q := gen.Generate(category, difficulty)

				assert.Equal(t, category, q.Category)
				assert.Equal(t, difficulty, q.Difficulty)
				assert.NotEmpty(t, q.ID)
				assert.NotEmpty(t, q.Question)
				require.NotEmpty(t, q.ExpectedTopics)
				assert.True(t, containsTopic(q.ExpectedTopics, q.ExpectedTopics[0]),
					"primary topic must be present")
				assert.Contains(t, q.Question, q.ExpectedTopics[0],
					"question text should mention the primary topic")
				assert.NotContains(t, q.Question, "{", "no unfilled placeholders")
			})
		}
	}
}

func TestGenerate_AllResolvesToConcreteValues(t *testing.T) {
	gen := NewGenerator(random.New(42))

	for i := 0; i < 50; i++ {
		q := gen.Generate(CategoryAll, DifficultyAll)
		assert.Contains(t, Categories, q.Category)
		assert.Contains(t, Difficulties, q.Difficulty)
	}
}

func TestGenerate_UnknownKeysFallBack(t *testing.T) {
	gen := NewGenerator(random.New(7))

	q := gen.Generate("Quantum Basket Weaving", "impossible")
	assert.NotEmpty(t, q.Question)
	require.NotEmpty(t, q.ExpectedTopics)
	// Topics must come from the fallback Algorithms pool.
	for _, topic := range q.ExpectedTopics {
		assert.Contains(t, topicsByCategory[CategoryAlgorithms], topic)
	}
}

func TestGenerate_ExpectedTopicCountScalesWithDifficulty(t *testing.T) {
	tests := []struct {
		difficulty string
		extra      int
	}{
		{DifficultyEasy, 2},
		{DifficultyMedium, 3},
		{DifficultyHard, 4},
	}

	gen := NewGenerator(random.New(3))
	for _, tt := range tests {
		t.Run(tt.difficulty, func(t *testing.T) {
			q := gen.Generate(CategoryAlgorithms, tt.difficulty)
			// primary (+ maybe related) + extras, all distinct.
			assert.GreaterOrEqual(t, len(q.ExpectedTopics), 1+tt.extra)
			assert.LessOrEqual(t, len(q.ExpectedTopics), 2+tt.extra)
			seen := map[string]bool{}
			for _, topic := range q.ExpectedTopics {
				assert.False(t, seen[topic], "topic %q repeated", topic)
				seen[topic] = true
			}
		})
	}
}

func TestGenerate_BehavioralAndSystemDesignSuffixes(t *testing.T) {
	gen := NewGenerator(random.New(11))

	behavioral := gen.Generate(CategoryBehavioral, DifficultyMedium)
	assert.True(t, strings.HasSuffix(behavioral.Question,
		"Give a concrete example from your own experience."))

	design := gen.Generate(CategorySystemDesign, DifficultyHard)
	assert.True(t, strings.HasSuffix(design.Question,
		"Make sure to address scalability, reliability, and performance."))
}

func TestGenerate_IDsUniquePerCall(t *testing.T) {
	gen := NewGenerator(random.New(5))

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		q := gen.Generate(CategoryDatabases, DifficultyEasy)
		assert.False(t, seen[q.ID], "duplicate id %q", q.ID)
		seen[q.ID] = true
	}
}

func TestGenerate_DeterministicForFixedSeed(t *testing.T) {
	a := NewGenerator(random.New(99)).Generate(CategoryConcurrency, DifficultyHard)
	b := NewGenerator(random.New(99)).Generate(CategoryConcurrency, DifficultyHard)

	assert.Equal(t, a.Question, b.Question)
	assert.Equal(t, a.ExpectedTopics, b.ExpectedTopics)
}
