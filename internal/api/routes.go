package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prepmate-backend-go/internal/ats"
	"prepmate-backend-go/internal/config"
	"prepmate-backend-go/internal/core"
	"prepmate-backend-go/internal/db"
	"prepmate-backend-go/internal/middleware"
)

// SetupRoutes configures all application routes with their handlers and
// middleware. Global middleware (logging, recovery, CORS) is expected to be
// applied to the router before this is called, typically in main.go.
func SetupRoutes(
	router *gin.Engine,
	appConfig *config.Config,
	logger *zap.Logger,
	userService core.UserService,
	bookingService core.BookingService,
	planService core.PlanService,
	chatService core.ChatService,
	practiceService core.PracticeService,
	profileService core.ProfileService,
	payments core.PaymentProvider,
	atsScorer *ats.Scorer,
) {
	// The Auth client must be available after db.InitFirestore; routes
	// cannot be secured without it.
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		logger.Fatal("Firebase Auth client is not initialized; routes will not be set up")
	}
	authMW := middleware.NewAuthMiddleware(firebaseAuthClient, logger)

	authHandler := NewAuthHandler(userService, logger)
	userHandler := NewUserHandler(userService, logger)
	bookingHandler := NewBookingHandler(bookingService, logger)
	paymentHandler := NewPaymentHandler(planService, payments, appConfig, logger)
	chatHandler := NewChatHandler(chatService, logger)
	practiceHandler := NewPracticeHandler(practiceService)
	profileHandler := NewProfileHandler(profileService, logger)
	atsHandler := NewATSHandler(atsScorer)

	apiV1 := router.Group("/api/v1")
	{
		userAuthGroup := apiV1.Group("/users")
		{
			// Called after client-side Firebase login/signup to ensure the
			// backend profile exists.
			userAuthGroup.POST("/initialize", authMW.VerifyToken(), authHandler.InitializeUserProfile)
			userAuthGroup.GET("/me", authMW.VerifyToken(), userHandler.GetCurrentUserProfile)
		}

		// Issuance accepts anonymous callers in degraded mode, so the token
		// is optional here. Listing requires a real identity.
		bookingsGroup := apiV1.Group("/bookings")
		{
			bookingsGroup.POST("", authMW.OptionalToken(), bookingHandler.IssueBooking)
			bookingsGroup.GET("", authMW.VerifyToken(), bookingHandler.ListBookings)
		}

		plansGroup := apiV1.Group("/plans", authMW.VerifyToken())
		{
			plansGroup.GET("/me", paymentHandler.GetEntitlement)
			plansGroup.POST("/genz/order", paymentHandler.CreatePlanOrder)
			plansGroup.POST("/genz/activate", paymentHandler.ActivatePlan)
		}

		// Public: classifies Razorpay redirect parameters and returns the
		// stripped query. Razorpay authenticates via signature, not tokens.
		apiV1.GET("/payments/callback", paymentHandler.ParseCallback)

		apiV1.POST("/chat", authMW.OptionalToken(), chatHandler.Ask)

		practiceGroup := apiV1.Group("/practice")
		{
			practiceGroup.GET("/question", practiceHandler.GenerateQuestion)
			practiceGroup.POST("/evaluate", practiceHandler.EvaluateAnswer)
		}

		profilesGroup := apiV1.Group("/profiles", authMW.VerifyToken())
		{
			profilesGroup.GET("/me", profileHandler.GetProfile)
			profilesGroup.PUT("/links/:provider", profileHandler.SetLink)
			profilesGroup.POST("/links/:provider/verify", profileHandler.VerifyLink)
		}

		apiV1.POST("/ats/score", authMW.OptionalToken(), atsHandler.ScoreResume)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "PrepMate backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}
