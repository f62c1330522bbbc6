package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"prepmate-backend-go/internal/core"
)

// PracticeHandler handles practice question generation and answer feedback.
type PracticeHandler struct {
	practiceService core.PracticeService
}

// NewPracticeHandler creates a new PracticeHandler.
func NewPracticeHandler(ps core.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceService: ps}
}

// GenerateQuestion handles GET /practice/question. Unknown category or
// difficulty values fall back to defaults rather than erroring, so this
// endpoint always answers 200 with a question.
func (h *PracticeHandler) GenerateQuestion(c *gin.Context) {
	category := c.Query("category")
	difficulty := c.Query("difficulty")

	q := h.practiceService.GenerateQuestion(category, difficulty)
	c.JSON(http.StatusOK, q)
}

// EvaluateAnswer handles POST /practice/evaluate.
func (h *PracticeHandler) EvaluateAnswer(c *gin.Context) {
	var req EvaluateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	feedback := h.practiceService.EvaluateAnswer(req.Category)
	c.JSON(http.StatusOK, feedback)
}
