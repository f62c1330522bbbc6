package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prepmate-backend-go/internal/core"
)

// ProfileHandler handles linked external profiles and their verification.
type ProfileHandler struct {
	profileService core.ProfileService
	logger         *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(ps core.ProfileService, logger *zap.Logger) *ProfileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandler{profileService: ps, logger: logger}
}

// mapProfileErrorToStatus maps errors from core.ProfileService to HTTP status codes.
func (h *ProfileHandler) mapProfileErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrProfileNotFound.Error()})
	case errors.Is(err, core.ErrUnsupportedProvider):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrUnsupportedProvider.Error()})
	case errors.Is(err, core.ErrLinkMissing):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrLinkMissing.Error()})
	case errors.Is(err, core.ErrURLAlreadyVerified):
		c.JSON(http.StatusConflict, ErrorResponse{Error: core.ErrURLAlreadyVerified.Error()})
	default:
		h.logger.Error("profile operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// GetProfile handles GET /profiles/me.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), userID.(string))
	if err != nil {
		h.mapProfileErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SetLink handles PUT /profiles/links/:provider. Setting a link always
// resets its verified flag.
func (h *ProfileHandler) SetLink(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	provider := c.Param("provider")

	var req SetProfileLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	profile, err := h.profileService.SetLink(c.Request.Context(), userID.(string), provider, req.Username, req.URL)
	if err != nil {
		h.mapProfileErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// VerifyLink handles POST /profiles/links/:provider/verify. Verification is
// rejected when another account already holds the same URL verified.
func (h *ProfileHandler) VerifyLink(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	provider := c.Param("provider")

	profile, err := h.profileService.VerifyLink(c.Request.Context(), userID.(string), provider)
	if err != nil {
		h.mapProfileErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
