package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/datasec-api/internal/config"
	"github.com/yourusername/datasec-api/internal/handler"
	"github.com/yourusername/datasec-api/internal/middleware"
	pgRepo "github.com/yourusername/datasec-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/datasec-api/internal/repository/redis"
	"github.com/yourusername/datasec-api/internal/service"
	"github.com/yourusername/datasec-api/internal/service/email"
	"github.com/yourusername/datasec-api/pkg/auth"
	"github.com/yourusername/datasec-api/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Loading configuration from %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	userRepo := pgRepo.NewUserRepo(db)
	keyRepo := pgRepo.NewEncryptionKeyRepo(db)
	dataRepo := pgRepo.NewEncryptedDataRepo(db)
	fileRepo := pgRepo.NewEncryptedFileRepo(db)

	pendingRepo, err := redisRepo.NewPendingVerificationRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize PendingVerificationRepo: %v", err)
		os.Exit(1)
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	otpService := service.NewOTPService(cfg.Email.CodeTTL())
	pipeline := email.NewPipelineFromConfig(cfg.Email)

	authService, err := service.NewAuthService(userRepo, pendingRepo, otpService, pipeline, jwtService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}

	keyService := service.NewKeyService(keyRepo)
	dataService := service.NewDataService(keyRepo, dataRepo)
	fileService := service.NewFileService(keyRepo, fileRepo, cfg.Media.Root)
	dashboardService := service.NewDashboardService(keyRepo, dataRepo, fileRepo)
	adminService := service.NewAdminService(userRepo, keyRepo, dataRepo, fileRepo)

	authHandler := handler.NewAuthHandler(authService)
	keyHandler := handler.NewKeyHandler(keyService)
	dataHandler := handler.NewDataHandler(dataService)
	fileHandler := handler.NewFileHandler(fileService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	adminHandler := handler.NewAdminHandler(adminService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000", "http://localhost:8000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Decrypted files are served back from the media directory, mirroring the
	// original media URL layout.
	router.Static("/media", cfg.Media.Root)

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/verify-2fa", authHandler.Verify2FA)
		}

		authed := api.Group("/")
		authed.Use(authMiddleware.RequireAuth())
		{
			authed.POST("/keys", keyHandler.GenerateKey)
			authed.GET("/keys", keyHandler.ListKeys)

			authed.POST("/data/encrypt", dataHandler.EncryptData)
			authed.POST("/data/decrypt", dataHandler.DecryptData)

			authed.POST("/files/encrypt", fileHandler.EncryptFile)
			authed.POST("/files/decrypt", fileHandler.DecryptFile)
			authed.DELETE("/files/:id", fileHandler.DeleteFile)

			authed.GET("/dashboard", dashboardHandler.Dashboard)
			authed.GET("/records", dashboardHandler.Records)

			admin := authed.Group("/admin")
			admin.Use(authMiddleware.StaffOnly())
			{
				admin.GET("/overview", adminHandler.Overview)
				admin.GET("/records/export", adminHandler.ExportRecords)
			}
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
