// Package ats simulates Applicant-Tracking-System compatibility feedback for
// a resume against a job description. There is no real resume parsing: the
// score comes from keyword overlap plus a seeded jitter, which matches what
// the product promises ("simulated ATS feedback").
package ats

import (
	"sort"
	"strings"
)

// Source is the randomness dependency, satisfied by internal/random.
type Source interface {
	Intn(n int) int
}

// Scorer produces simulated ATS compatibility scores.
type Scorer struct {
	rng Source
}

// NewScorer creates a Scorer backed by the given randomness source.
func NewScorer(rng Source) *Scorer {
	return &Scorer{rng: rng}
}

// Result is one simulated scoring round.
type Result struct {
	Score           int      `json:"score"` // 0..100
	MatchedKeywords []string `json:"matchedKeywords"`
	MissingKeywords []string `json:"missingKeywords"`
	Feedback        string   `json:"feedback"`
}

// stopwords excluded from keyword extraction. Short function words score
// nothing in a real ATS either.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "you": true,
	"your": true, "will": true, "are": true, "our": true, "have": true,
	"this": true, "that": true, "from": true, "about": true, "who": true,
	"what": true, "work": true, "team": true, "role": true, "years": true,
	"experience": true, "strong": true, "ability": true, "skills": true,
}

// Score computes a simulated compatibility score for the resume text against
// the job description. With an empty job description the score is pure
// jitter around a neutral baseline.
func (s *Scorer) Score(resumeText, jobDescription string) Result {
	keywords := extractKeywords(jobDescription)
	resume := strings.ToLower(resumeText)

	var matched, missing []string
	for _, kw := range keywords {
		if strings.Contains(resume, kw) {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	base := 60
	if len(keywords) > 0 {
		base = 40 + (50*len(matched))/len(keywords)
	}
	score := base + s.rng.Intn(11) - 5 // jitter in [-5, +5]
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{
		Score:           score,
		MatchedKeywords: matched,
		MissingKeywords: missing,
		Feedback:        feedbackForScore(score),
	}
}

func feedbackForScore(score int) string {
	switch {
	case score >= 80:
		return "Strong match. Your resume covers most of what this posting screens for; tighten formatting and quantify outcomes to stand out further."
	case score >= 60:
		return "Decent match. Several posting keywords are missing from your resume; weave them into your experience bullets where they are genuinely true."
	case score >= 40:
		return "Weak match. The resume and posting share little vocabulary; tailor your summary and most recent role to this job before applying."
	default:
		return "Poor match. An ATS screen would likely filter this resume out; rewrite it around the posting's required skills or target a closer role."
	}
}

// extractKeywords pulls distinct lowercase words of four or more letters
// from the job description, capped at 20 to keep the comparison bounded.
func extractKeywords(jobDescription string) []string {
	fields := strings.FieldsFunc(strings.ToLower(jobDescription), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '+' && r != '#'
	})

	seen := map[string]bool{}
	var keywords []string
	for _, f := range fields {
		if len(f) < 4 || stopwords[f] || seen[f] {
			continue
		}
		seen[f] = true
		keywords = append(keywords, f)
	}
	sort.Strings(keywords)
	if len(keywords) > 20 {
		keywords = keywords[:20]
	}
	return keywords
}
