// @title EcoQuest API
// @version 1.0
// @description Gamified environmental science quiz platform API.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"ecoquest/internal/adapter"
	"ecoquest/internal/adapter/quizgen"
	"ecoquest/internal/cache"
	"ecoquest/internal/config"
	"ecoquest/internal/database"
	"ecoquest/internal/domain"
	"ecoquest/internal/handler"
	"ecoquest/internal/logger"
	"ecoquest/internal/metrics"
	"ecoquest/internal/middleware"
	"ecoquest/internal/repository"
	"ecoquest/internal/service"
	"ecoquest/internal/validation"

	_ "ecoquest/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// requestLogger logs each HTTP request and feeds the request counter.
func requestLogger(collector *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()
		collector.RecordHTTPRequest(method, c.Route().Path, status)

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Question drafting is optional; the catalog service degrades to an
	// authoring-only mode when no Ollama server is configured.
	var questionGenerator domain.QuestionGenerator
	if cfg.QuizGen.OllamaServerURL != "" {
		questionGenerator, err = quizgen.NewOllamaQuestionGenerator(cfg.QuizGen.OllamaServerURL, cfg.QuizGen.Model, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create question generator", zap.Error(err))
		}
		appLogger.Info("Question generator initialized",
			zap.String("server_url", cfg.QuizGen.OllamaServerURL),
			zap.String("model", cfg.QuizGen.Model))
	} else {
		appLogger.Warn("No Ollama server configured; question drafting disabled")
	}

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	profileRepository := repository.NewSQLXProfileRepository(db)
	questionRepository := repository.NewSQLXQuestionRepository(db)
	eventRepository := repository.NewSQLXEventRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// The leaderboard cache is best effort; a missing Redis only costs
	// read latency, so failure to connect is not fatal.
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Warn("Failed to connect to Redis, leaderboard reads go to the store", zap.Error(err))
	} else {
		appLogger.Info("Successfully connected to Redis")
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	authService, err := service.NewAuthService(cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	profileService := service.NewProfileService(profileRepository, eventRepository, txManager, cfg, collector)
	catalogService := service.NewCatalogService(questionRepository, eventRepository, questionGenerator)
	leaderboardService := service.NewLeaderboardService(profileRepository, cacheAdapter)

	validator := validation.NewValidator()
	authHandler := handler.NewAuthHandler(authService, cfg)
	profileHandler := handler.NewProfileHandler(profileService, validator)
	catalogHandler := handler.NewCatalogHandler(catalogService, validator)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  20 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger(collector))
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.SetupMetricsRoute(registry)))

	apiGroup := app.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	protected := middleware.Protected(authService)
	teacherOnly := middleware.RequireTeacher(profileService)

	profileGroup := apiGroup.Group("/profile", protected)
	profileGroup.Get("/", profileHandler.GetMyProfile)
	profileGroup.Post("/create", profileHandler.CreateProfile)
	profileGroup.Post("/quiz/complete", profileHandler.CompleteQuiz)

	// Catalog and leaderboard reads are public; only authoring and
	// reward-granting routes sit behind the identity gate.
	questionGroup := apiGroup.Group("/questions")
	questionGroup.Get("/", catalogHandler.GetQuestions)
	questionGroup.Post("/add", protected, teacherOnly, catalogHandler.AddQuestion)
	questionGroup.Post("/generate", protected, teacherOnly, catalogHandler.GenerateQuestions)

	eventGroup := apiGroup.Group("/community-events")
	eventGroup.Get("/", catalogHandler.GetActiveEvents)
	eventGroup.Post("/add", protected, teacherOnly, catalogHandler.AddEvent)
	eventGroup.Post("/complete/:eventId", protected, profileHandler.CompleteEvent)

	apiGroup.Get("/leaderboard", leaderboardHandler.GetLeaderboard)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
