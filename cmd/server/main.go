package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prepmate-backend-go/internal/api"
	"prepmate-backend-go/internal/ats"
	"prepmate-backend-go/internal/cache"
	"prepmate-backend-go/internal/config"
	"prepmate-backend-go/internal/core"
	"prepmate-backend-go/internal/db"
	"prepmate-backend-go/internal/groq"
	"prepmate-backend-go/internal/mailer"
	"prepmate-backend-go/internal/middleware"
	"prepmate-backend-go/internal/payment"
	"prepmate-backend-go/internal/question"
	"prepmate-backend-go/internal/queue"
	"prepmate-backend-go/internal/random"
)

func main() {
	// --- 1. Initialize Logger (Zap) ---
	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Zap logger initialized successfully.")

	// --- 2. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	// --- 3. Initialize Firebase Admin SDK (Firestore and Auth clients) ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirestore(initCtx, appConfig); err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firestore and Firebase Admin SDK", zap.Error(err))
	}

	firestoreClient := db.GetFirestoreClient()
	if firestoreClient == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firestore client is nil after initialization. Application cannot start.")
	}
	if db.GetFirebaseAuthClient() == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firebase Auth client is nil after initialization. Application cannot start.")
	}

	// --- 4. Initialize Repositories ---
	userRepo := db.NewFirestoreUserRepository(firestoreClient)
	auditRepo := db.NewFirestoreAuditRepository(firestoreClient)
	bookingRepo := db.NewFirestoreBookingRepository(firestoreClient)
	subscriptionRepo := db.NewFirestoreSubscriptionRepository(firestoreClient)
	profileRepo := db.NewFirestoreProfileRepository(firestoreClient)
	zapLogger.Info("Repositories initialized successfully.")

	// --- 5. Initialize the local cache ---
	// Redis when configured; otherwise a process-local in-memory cache.
	var localCache cache.Cache
	if appConfig.RedisAddress != "" {
		localCache, err = cache.NewRedisCache(cache.NewRedisCacheConfig{
			Address:  appConfig.RedisAddress,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		})
		if err != nil {
			zapLogger.Fatal("CRITICAL_ERROR: Failed to connect to Redis", zap.Error(err))
		}
		zapLogger.Info("Redis cache initialized", zap.String("address", appConfig.RedisAddress))
	} else {
		localCache = cache.NewMemoryCache()
		zapLogger.Info("In-memory cache initialized (REDIS_ADDRESS not set).")
	}

	// --- 6. Initialize optional event publisher and mailer ---
	var publisher queue.Publisher
	if appConfig.AMQPURL != "" {
		publisher, err = queue.NewRabbitMQPublisher(queue.NewRabbitMQPublisherConfig{URL: appConfig.AMQPURL})
		if err != nil {
			// Event publishing is best-effort; the server starts without it.
			zapLogger.Warn("Failed to connect to RabbitMQ, event publishing disabled", zap.Error(err))
			publisher = nil
		} else {
			defer publisher.Close()
			zapLogger.Info("RabbitMQ publisher initialized.")
		}
	}

	bookingMailer := mailer.New(appConfig.SMTPHost, appConfig.SMTPPort,
		appConfig.SMTPUser, appConfig.SMTPPassword, appConfig.MailSender)
	if bookingMailer == nil {
		zapLogger.Info("Confirmation mail disabled (SMTP not configured).")
	}

	// --- 7. Initialize Services ---
	rng := random.NewTimeSeeded()
	groqClient := groq.NewClient(appConfig.GroqAPIURL, appConfig.GroqAPIKey, appConfig.GroqModel)
	paymentService := payment.NewService(appConfig.RazorpayKeyID, appConfig.RazorpayKeySecret)

	auditService := core.NewAuditService(auditRepo)
	userService := core.NewUserService(userRepo)
	planService := core.NewPlanService(subscriptionRepo, paymentService, auditService, time.Now)
	chatService := core.NewChatService(groqClient, profileRepo, zapLogger)
	practiceService := core.NewPracticeService(question.NewGenerator(rng), question.NewFeedback(rng))
	profileService := core.NewProfileService(profileRepo, auditService)
	atsScorer := ats.NewScorer(rng)

	bookingService, err := core.NewBookingService(core.BookingServiceDeps{
		BookingRepo:      bookingRepo,
		SubscriptionRepo: subscriptionRepo,
		UserRepo:         userRepo,
		PlanService:      planService,
		Payments:         paymentService,
		AuditService:     auditService,
		Cache:            localCache,
		Publisher:        publisher,
		Mailer:           bookingMailer,
		Rand:             rng,
		Logger:           zapLogger,
		Now:              time.Now,
		SessionPrice:     appConfig.SessionPriceINR,
	})
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize BookingService", zap.Error(err))
	}
	zapLogger.Info("Core services initialized successfully.")

	// --- 8. Setup Gin HTTP Engine ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// Order matters: logging first, then panic recovery, then CORS.
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware(appConfig))

	// --- 9. Setup API Routes ---
	api.SetupRoutes(
		router,
		appConfig,
		zapLogger,
		userService,
		bookingService,
		planService,
		chatService,
		practiceService,
		profileService,
		paymentService,
		atsScorer,
	)

	// --- 10. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 11. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exiting gracefully.")
}
