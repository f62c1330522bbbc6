package core

import "prepmate-backend-go/internal/question"

// practiceService implements the PracticeService interface. It is a thin
// seam over the question package so handlers depend on core interfaces like
// everything else.
type practiceService struct {
	generator *question.Generator
	feedback  *question.Feedback
}

// NewPracticeService creates a new PracticeService instance.
func NewPracticeService(gen *question.Generator, fb *question.Feedback) PracticeService {
	return &practiceService{generator: gen, feedback: fb}
}

// GenerateQuestion produces a fresh practice question for the filters.
func (s *practiceService) GenerateQuestion(category, difficulty string) question.PracticeQuestion {
	return s.generator.Generate(category, difficulty)
}

// EvaluateAnswer synthesizes feedback for a submitted answer. The rating is
// random over [3,5]; no analysis of the answer text takes place.
func (s *practiceService) EvaluateAnswer(category string) AnswerFeedback {
	rating := s.feedback.Rate()
	return AnswerFeedback{
		Rating:          rating,
		Stars:           question.RenderStars(rating),
		ImprovedExample: s.feedback.ImprovedExample(category),
	}
}
