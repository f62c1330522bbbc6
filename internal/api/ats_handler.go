package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"prepmate-backend-go/internal/ats"
)

// ATSHandler handles resume-versus-job-description scoring.
type ATSHandler struct {
	scorer *ats.Scorer
}

// NewATSHandler creates a new ATSHandler.
func NewATSHandler(scorer *ats.Scorer) *ATSHandler {
	return &ATSHandler{scorer: scorer}
}

// ScoreResume handles POST /ats/score.
func (h *ATSHandler) ScoreResume(c *gin.Context) {
	var req ATSScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	result := h.scorer.Score(req.ResumeText, req.JobDescription)
	c.JSON(http.StatusOK, result)
}
