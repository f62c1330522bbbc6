// Package question generates practice interview questions and synthesizes
// feedback for answers. Everything here is pure aside from the injected
// randomness source, so the whole package is testable with a fixed seed.
package question

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// PracticeQuestion is one generated practice round. Questions are never
// persisted; the client holds the current round in session state.
type PracticeQuestion struct {
	ID             string   `json:"id"`
	Question       string   `json:"question"`
	Category       string   `json:"category"`
	Difficulty     string   `json:"difficulty"`
	ExpectedTopics []string `json:"expectedTopics"`
}

// Generator produces practice questions from category/difficulty filters.
type Generator struct {
	rng Source
	seq uint64 // monotonic per-process counter, keeps IDs unique within a timestamp tick
}

// Source is the randomness dependency of this package. internal/random
// satisfies it; tests pass a fixed-seed source.
type Source interface {
	Intn(n int) int
}

// NewGenerator creates a Generator backed by the given randomness source.
func NewGenerator(rng Source) *Generator {
	return &Generator{rng: rng}
}

// Generate builds a question for the given filters. "All" for either filter
// resolves to a uniform random concrete value. Unknown categories or
// difficulties fall back to the Algorithms / medium pools; Generate never
// fails.
func (g *Generator) Generate(category, difficulty string) PracticeQuestion {
	category = g.resolveCategory(category)
	difficulty = g.resolveDifficulty(difficulty)

	topics := topicPool(category)
	primary := topics[g.rng.Intn(len(topics))]
	related := g.pickDistinct(topics, primary)

	templates := templatePool(difficulty)
	text := templates[g.rng.Intn(len(templates))]
	text = g.fillPlaceholders(text, category, primary, related)

	switch category {
	case CategoryBehavioral:
		text += " Give a concrete example from your own experience."
	case CategorySystemDesign:
		text += " Make sure to address scalability, reliability, and performance."
	}

	return PracticeQuestion{
		ID:             g.nextID(category, difficulty),
		Question:       text,
		Category:       category,
		Difficulty:     difficulty,
		ExpectedTopics: g.expectedTopics(text, topics, primary, related, difficulty),
	}
}

func (g *Generator) resolveCategory(category string) string {
	if category == CategoryAll {
		return Categories[g.rng.Intn(len(Categories))]
	}
	return category
}

func (g *Generator) resolveDifficulty(difficulty string) string {
	if difficulty == DifficultyAll {
		return Difficulties[g.rng.Intn(len(Difficulties))]
	}
	return difficulty
}

// pickDistinct picks a topic different from primary. The pools all hold at
// least two entries, so the loop terminates.
func (g *Generator) pickDistinct(topics []string, primary string) string {
	if len(topics) < 2 {
		return primary
	}
	for {
		t := topics[g.rng.Intn(len(topics))]
		if t != primary {
			return t
		}
	}
}

func (g *Generator) fillPlaceholders(text, category, primary, related string) string {
	lists := wordListPool(category)
	replace := func(s, placeholder string, pool []string) string {
		if !strings.Contains(s, placeholder) || len(pool) == 0 {
			return s
		}
		return strings.ReplaceAll(s, placeholder, pool[g.rng.Intn(len(pool))])
	}
	text = strings.ReplaceAll(text, "{topic}", primary)
	text = strings.ReplaceAll(text, "{related_topic}", related)
	text = replace(text, "{scenario}", lists.Scenarios)
	text = replace(text, "{complex_scenario}", lists.ComplexScenarios)
	text = replace(text, "{complex_problem}", lists.ComplexProblems)
	text = replace(text, "{goal}", lists.Goals)
	return text
}

// expectedTopics is [primary], plus related if it survived into the filled
// template, plus difficulty-scaled padding drawn without replacement from the
// category pool.
func (g *Generator) expectedTopics(filled string, pool []string, primary, related, difficulty string) []string {
	topics := []string{primary}
	included := map[string]bool{primary: true}
	if related != primary && strings.Contains(filled, related) {
		topics = append(topics, related)
		included[related] = true
	}

	extra := extraTopicsByDifficulty[difficulty]
	if extra == 0 {
		extra = extraTopicsByDifficulty[DifficultyMedium]
	}
	candidates := make([]string, 0, len(pool))
	for _, t := range pool {
		if !included[t] {
			candidates = append(candidates, t)
		}
	}
	for i := 0; i < extra && len(candidates) > 0; i++ {
		idx := g.rng.Intn(len(candidates))
		topics = append(topics, candidates[idx])
		candidates = append(candidates[:idx], candidates[idx+1:]...)
	}
	return topics
}

// nextID builds an ID unique per call within the process: category slug,
// difficulty, creation timestamp, and a monotonic counter to break ties when
// two calls land on the same nanosecond.
func (g *Generator) nextID(category, difficulty string) string {
	slug := strings.ToLower(strings.ReplaceAll(category, " ", "-"))
	n := atomic.AddUint64(&g.seq, 1)
	return fmt.Sprintf("%s-%s-%d-%d", slug, difficulty, time.Now().UnixNano(), n)
}

func topicPool(category string) []string {
	if topics, ok := topicsByCategory[category]; ok {
		return topics
	}
	return topicsByCategory[CategoryAlgorithms]
}

func templatePool(difficulty string) []string {
	if templates, ok := templatesByDifficulty[difficulty]; ok {
		return templates
	}
	return templatesByDifficulty[DifficultyMedium]
}

func wordListPool(category string) wordLists {
	if lists, ok := wordListsByCategory[category]; ok {
		return lists
	}
	return wordListsByCategory[CategoryAlgorithms]
}
