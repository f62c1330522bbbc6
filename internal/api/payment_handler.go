package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prepmate-backend-go/internal/config"
	"prepmate-backend-go/internal/core"
	"prepmate-backend-go/internal/payment"
)

// PaymentHandler handles plan upgrades and the Razorpay callback contract.
type PaymentHandler struct {
	planService core.PlanService
	payments    core.PaymentProvider
	appConfig   *config.Config
	logger      *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps core.PlanService, pp core.PaymentProvider, appConfig *config.Config, logger *zap.Logger) *PaymentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentHandler{planService: ps, payments: pp, appConfig: appConfig, logger: logger}
}

// GetEntitlement handles GET /plans/me. The subscription document is re-read
// on every call; a missing document means pay-per-session.
func (h *PaymentHandler) GetEntitlement(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	entitlement, sub, err := h.planService.Entitlement(c.Request.Context(), userID.(string))
	if err != nil {
		h.logger.Error("failed to evaluate entitlement", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entitlement": entitlement, "subscription": sub})
}

// CreatePlanOrder handles POST /plans/genz/order. It returns a Razorpay
// order for the monthly plan price; the client opens checkout with it and
// calls ActivatePlan with the callback outcome.
func (h *PaymentHandler) CreatePlanOrder(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	order, err := h.payments.CreateOrder(h.appConfig.PlanPriceINR, map[string]interface{}{
		"purpose": "genz_plan",
		"userId":  userID.(string),
	})
	if err != nil {
		h.logger.Error("failed to create plan order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create payment order"})
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ActivatePlan handles POST /plans/genz/activate. The Razorpay callback
// parameters ride on the query string; an unverifiable payment answers 402.
func (h *PaymentHandler) ActivatePlan(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	payRes := payment.ParseCallback(c.Request.URL.Query())
	sub, err := h.planService.UpgradeToGenz(c.Request.Context(), userID.(string), payRes)
	if err != nil {
		if errors.Is(err, core.ErrPaymentNotVerified) {
			c.JSON(http.StatusPaymentRequired, ErrorResponse{Error: core.ErrPaymentNotVerified.Error(), Details: err.Error()})
			return
		}
		h.logger.Error("plan activation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
		return
	}
	c.JSON(http.StatusOK, sub)
}

// ParseCallback handles GET /payments/callback. It classifies the Razorpay
// redirect parameters and hands back the query with every payment parameter
// stripped, so the client can rewrite its URL and a reload cannot replay a
// handled payment.
func (h *PaymentHandler) ParseCallback(c *gin.Context) {
	values := c.Request.URL.Query()
	result := payment.ParseCallback(values)
	cleaned := payment.StripCallbackParams(values)

	c.JSON(http.StatusOK, gin.H{
		"result":       result,
		"cleanedQuery": cleaned.Encode(),
	})
}
