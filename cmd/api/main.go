package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rentalhub/internal/config"
	"rentalhub/internal/database"
	"rentalhub/internal/middleware"
	"rentalhub/internal/modules/auth"
	"rentalhub/internal/modules/catalog"
	"rentalhub/internal/modules/chat"
	"rentalhub/internal/modules/screening"
	jwtsvc "rentalhub/internal/pkg/jwt"
	"rentalhub/internal/repository"
	"rentalhub/internal/scoring"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	chatRepo := repository.NewChatRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	// Scorer selection happens once, here: a configured backend gets the
	// degrade-not-fail wrapper, an unconfigured deployment runs on the
	// deterministic fallback.
	var scorer scoring.Scorer
	if cfg.ScoringConfigured() {
		scorer = scoring.NewResilient(scoring.NewBackendScorer(scoring.BackendConfig{
			BaseURL: cfg.ScoringBaseURL,
			APIKey:  cfg.ScoringAPIKey,
			Model:   cfg.ScoringModel,
			Timeout: cfg.ScoringTimeout,
		}))
	} else {
		log.Println("scoring backend not configured, using deterministic fallback")
		scorer = scoring.NewResilient(nil)
	}

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(propertyRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	screeningService := screening.NewService(requestRepo, propertyRepo, scorer)
	screeningHandler := screening.NewHandler(screeningService)

	hub := chat.NewHub()
	defer hub.Close()
	chatService := chat.NewService(chatRepo, requestRepo, propertyRepo, hub)
	chatHandler := chat.NewHandler(chatService, hub)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			screeningHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
