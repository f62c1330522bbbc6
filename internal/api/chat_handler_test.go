package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepmate-backend-go/internal/core"
	"prepmate-backend-go/internal/groq"
	"prepmate-backend-go/internal/models"
)

type stubChatService struct {
	reply string
	err   error
}

func (s *stubChatService) Ask(_ context.Context, _, _, _ string, _ []models.ChatMessage) (string, error) {
	return s.reply, s.err
}

func chatRouter(cs core.ChatService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewChatHandler(cs, nil)
	router.POST("/chat", handler.Ask)
	return router
}

func postChat(t *testing.T, router *gin.Engine, body string) (*httptest.ResponseRecorder, ChatResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp ChatResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestAskEndpoint_ReturnsReply(t *testing.T) {
	router := chatRouter(&stubChatService{reply: "practice the STAR method"})

	w, resp := postChat(t, router, `{"message":"how do I answer behavioral questions?"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "practice the STAR method", resp.Reply)
	assert.False(t, resp.Fallback)
}

func TestAskEndpoint_GatewayFailureSubstitutesCannedFallback(t *testing.T) {
	router := chatRouter(&stubChatService{err: groq.ErrGateway})

	w, resp := postChat(t, router, `{"message":"hello"}`)
	// A gateway failure must never surface as an error status.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, core.CannedFallback, resp.Reply)
	assert.True(t, resp.Fallback)
}

func TestAskEndpoint_RejectsEmptyMessage(t *testing.T) {
	router := chatRouter(&stubChatService{reply: "unused"})

	w, _ := postChat(t, router, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
