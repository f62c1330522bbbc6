package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prepmate-backend-go/internal/core"
)

// defaultSystemMessage frames the assistant when the client sends none.
const defaultSystemMessage = "You are an experienced interview coach. " +
	"Answer concisely and focus on actionable advice for the candidate."

// ChatHandler handles the assistant chat endpoint.
type ChatHandler struct {
	chatService core.ChatService
	logger      *zap.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(cs core.ChatService, logger *zap.Logger) *ChatHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatHandler{chatService: cs, logger: logger}
}

// Ask handles POST /chat. A gateway failure never surfaces as an error
// status: the canned fallback is substituted and the client is told via the
// fallback flag. No automatic retry happens on either side.
func (h *ChatHandler) Ask(c *gin.Context) {
	userID := c.GetString("userID")

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	systemMessage := req.SystemMessage
	if systemMessage == "" {
		systemMessage = defaultSystemMessage
	}

	reply, err := h.chatService.Ask(c.Request.Context(), userID, req.Message, systemMessage, req.History)
	if err != nil {
		h.logger.Warn("chat completion failed, substituting canned fallback",
			zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusOK, ChatResponse{Reply: core.CannedFallback, Fallback: true})
		return
	}
	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}
