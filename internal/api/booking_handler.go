package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prepmate-backend-go/internal/core"
	"prepmate-backend-go/internal/models"
	"prepmate-backend-go/internal/payment"
)

// BookingHandler handles the passkey issuance flow and booking reads.
type BookingHandler struct {
	bookingService core.BookingService
	logger         *zap.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bs core.BookingService, logger *zap.Logger) *BookingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingHandler{bookingService: bs, logger: logger}
}

// IssueBooking handles POST /bookings. The route uses optional
// authentication: anonymous callers get a degraded, local-only issuance.
// Razorpay callback parameters ride on the query string of the retry call.
func (h *BookingHandler) IssueBooking(c *gin.Context) {
	userID := c.GetString("userID") // empty for anonymous callers

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	payRes := payment.ParseCallback(c.Request.URL.Query())

	result, err := h.bookingService.Issue(c.Request.Context(), userID, req, &payRes)
	if err != nil {
		h.mapIssueErrorToStatus(c, result, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// mapIssueErrorToStatus maps issuance errors to HTTP status codes. The
// payment-required outcome is not a failure: the 402 body carries the order
// the client opens checkout with.
func (h *BookingHandler) mapIssueErrorToStatus(c *gin.Context, result *core.IssueResult, err error) {
	switch {
	case errors.Is(err, core.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:       core.ErrValidation.Error(),
			FieldErrors: result.FieldErrors,
		})
	case errors.Is(err, core.ErrPaymentRequired):
		c.JSON(http.StatusPaymentRequired, result)
	case errors.Is(err, core.ErrPaymentFailed):
		c.JSON(http.StatusPaymentRequired, ErrorResponse{Error: core.ErrPaymentFailed.Error(), Details: err.Error()})
	case errors.Is(err, core.ErrIssuanceInFlight):
		c.JSON(http.StatusConflict, ErrorResponse{Error: core.ErrIssuanceInFlight.Error()})
	default:
		h.logger.Error("booking issuance failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// ListBookings handles GET /bookings. Bookings are returned newest first,
// split into active and used passkeys.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	bookings, err := h.bookingService.ListBookings(c.Request.Context(), userID.(string))
	if err != nil {
		h.logger.Error("failed to list bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
		return
	}

	resp := BookingListResponse{
		Active: []*models.InterviewBooking{},
		Used:   []*models.InterviewBooking{},
	}
	for _, b := range bookings {
		if b.IsUsed {
			resp.Used = append(resp.Used, b)
		} else {
			resp.Active = append(resp.Active, b)
		}
	}
	c.JSON(http.StatusOK, resp)
}
