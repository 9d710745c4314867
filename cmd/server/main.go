package main

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"repair-app/internal/config"
	handlers "repair-app/internal/handler"
	repositories "repair-app/internal/repository"
	"repair-app/internal/services"
	"repair-app/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	baseCtx := context.Background()
	ctx, shutdownManager := utils.NewShutdownManager(baseCtx)
	shutdownManager.StartListening()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// MongoDB
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	db := mongoClient.Database(cfg.MongoDatabase)

	if err := repositories.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("Failed to create Mongo indexes:", err)
	}

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing MongoDB connection...")
		return mongoClient.Disconnect(ctx)
	})

	// Redis
	redisClient, err := utils.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing Redis connection...")
		return redisClient.Close()
	})

	// Google Sheets ticket storage
	sheetsService, err := utils.NewSheetsService(ctx, cfg.CredentialsFile)
	if err != nil {
		log.Fatal("Failed to init Google Sheets client:", err)
	}

	// MinIO photo storage
	minioClient, err := utils.NewMinioClient(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket)
	if err != nil {
		log.Fatal("Failed to init MinIO client:", err)
	}

	// Email + SMS
	smtpPort, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		log.Fatal("Invalid SMTP_PORT:", err)
	}
	mailer := services.NewSMTPMailer(cfg.SMTPHost, smtpPort, cfg.SMTPUser, cfg.SMTPPass)

	var smsSender services.SMSSender
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioFromNumber != "" {
		smsSender = services.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
		log.Println("Twilio SMS sender enabled")
	} else {
		log.Println("Twilio is not configured, SMS notifications will be logged only")
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	requestRepo := repositories.NewRequestRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	deviceRepo := repositories.NewDeviceRepository(db)
	ticketRepo := repositories.NewTicketSheetRepository(sheetsService, cfg.SpreadsheetID)

	// Services
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, jwtUtil, redisClient)
	photoStorage := services.NewPhotoStorage(minioClient, cfg.MinioBucket, cfg.MinioPublicURL)
	notificationService := services.NewNotificationService(mailer, smsSender)
	ticketService := services.NewTicketService(ticketRepo, photoStorage, notificationService)
	partnerService := services.NewPartnerService(requestRepo)
	integratorService := services.NewIntegratorService(projectRepo, deviceRepo)

	chatService, err := services.NewChatService(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatal("Failed to init Gemini client:", err)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, jwtUtil)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	partnerHandler := handlers.NewPartnerHandler(partnerService)
	integratorHandler := handlers.NewIntegratorHandler(integratorService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, ticketService)
	chatHandler := handlers.NewChatHandler(chatService)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	startedAt := time.Now()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"environment": cfg.Environment,
			"uptime":      time.Since(startedAt).Round(time.Second).String(),
			"time":        time.Now().UTC().Format(time.RFC3339),
		})
	})

	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	authRequired := utils.AuthMiddleware(jwtUtil, redisClient, authService)

	profile := router.Group("/profile", authRequired)
	{
		profile.GET("", utils.Authorize("profile", "read"), authHandler.GetProfile)
		profile.PATCH("", utils.Authorize("profile", "write"), authHandler.UpdateProfile)
	}

	tickets := router.Group("/service-requests", authRequired)
	{
		tickets.POST("", utils.Authorize("tickets", "create"), ticketHandler.Create)
		tickets.GET("", utils.Authorize("tickets", "list"), ticketHandler.List)
		tickets.PATCH("/:ticketNumber", utils.Authorize("tickets", "update"), ticketHandler.Update)
		tickets.POST("/upload-photos/:ticketNumber", utils.Authorize("tickets", "upload_photos"), ticketHandler.UploadPhotos)
	}

	api := router.Group("/api", authRequired)
	{
		partner := api.Group("/partner/:partnerId/requests")
		{
			partner.GET("", utils.Authorize("partner_requests", "list"), partnerHandler.ListRequests)
			partner.POST("", utils.Authorize("partner_requests", "create"), partnerHandler.CreateRequest)
			partner.PATCH("/:requestId", utils.Authorize("partner_requests", "update"), partnerHandler.UpdateRequest)
		}

		integrator := api.Group("/integrator/:integratorId")
		{
			integrator.GET("/projects", utils.Authorize("integrator_projects", "list"), integratorHandler.ListProjects)
			integrator.POST("/projects", utils.Authorize("integrator_projects", "create"), integratorHandler.CreateProject)
			integrator.GET("/fault-stats", utils.Authorize("integrator_projects", "fault_stats"), integratorHandler.FaultStats)
			integrator.POST("/projects/:projectId/devices", utils.Authorize("integrator_projects", "add_devices"), integratorHandler.AddDevices)
		}

		api.POST("/update-status", utils.Authorize("notifications", "update_status"), notificationHandler.UpdateStatus)
		api.POST("/test-notification", utils.Authorize("notifications", "test"), notificationHandler.TestNotification)
		api.GET("/test-email-config", utils.Authorize("notifications", "test"), notificationHandler.TestEmailConfig)

		api.POST("/gemini/chat", chatHandler.Chat)
	}

	server := &http.Server{
		Addr:    "0.0.0.0:" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Repair service running on :%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Shutting down HTTP server...")
		return server.Shutdown(ctx)
	})

	select {}
}
