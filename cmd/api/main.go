// @title Quiz Maker API
// @version 1.0
// @description Generates multiple-choice quizzes from web pages and PDFs and tracks quiz results.
// @host localhost:8000
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizmaker/internal/adapter"
	"quizmaker/internal/adapter/content"
	"quizmaker/internal/adapter/quizgen"
	"quizmaker/internal/cache"
	"quizmaker/internal/config"
	"quizmaker/internal/database"
	"quizmaker/internal/domain"
	"quizmaker/internal/handler"
	"quizmaker/internal/logger"
	"quizmaker/internal/middleware"
	"quizmaker/internal/repository"
	"quizmaker/internal/service"
	"quizmaker/internal/validation"

	_ "quizmaker/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// requestLogger logs every HTTP request with its outcome and timing.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

// newLLM builds the configured language model client.
func newLLM(cfg *config.Config) (llms.Model, error) {
	switch cfg.LLM.Source {
	case "openai":
		return openai.New(
			openai.WithToken(cfg.LLM.OpenAI.APIKey),
			openai.WithModel(cfg.LLM.OpenAI.Model),
		)
	default:
		httpClient := &http.Client{Timeout: 120 * time.Second}
		return ollama.New(
			ollama.WithServerURL(cfg.LLM.Ollama.ServerURL),
			ollama.WithModel(cfg.LLM.Ollama.Model),
			ollama.WithHTTPClient(httpClient),
		)
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

	llm, err := newLLM(cfg)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err), zap.String("source", cfg.LLM.Source))
	}
	appLogger.Info("LLM client initialized", zap.String("source", cfg.LLM.Source))

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	db, err := database.NewSQLXSQLiteDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to database", zap.String("path", cfg.Database.Path))

	// Redis is optional. Without it every cache lookup is a miss.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		} else {
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
			appLogger.Info("Connected to Redis", zap.String("address", cfg.Redis.Address))
		}
	}

	// Repositories
	topicRepository := repository.NewTopicDatabaseAdapter(db)
	attemptRepository := repository.NewAttemptDatabaseAdapter(db)
	resultRepository := repository.NewResultDatabaseAdapter(db)
	userRepository := repository.NewSQLXUserRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Adapters
	extractor := content.NewExtractor(cfg.Generation.MaxContentChars)
	generator, err := quizgen.NewLLMQuizGenerator(llm, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create quiz generator", zap.Error(err))
	}

	// Services
	quizCacheService := service.NewQuizCacheService(cacheAdapter, cfg)
	quizService := service.NewQuizService(topicRepository, attemptRepository, txManager, quizCacheService)
	generationService := service.NewGenerationService(extractor, generator, topicRepository, txManager, quizCacheService, cfg)
	resultService := service.NewResultService(topicRepository, attemptRepository, resultRepository, txManager, quizCacheService)
	userService := service.NewUserService(userRepository)

	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	// Handlers
	validator := validation.NewValidator(cfg.Generation.MaxNumQuestions)
	quizHandler := handler.NewQuizHandler(quizService, generationService, validator)
	authHandler := handler.NewAuthHandler(authService, cfg)
	userHandler := handler.NewUserHandler(userService, resultService, validator)
	healthHandler := handler.NewHealthHandler(db, cacheAdapter)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/health", healthHandler.Health)
	app.Get("/swagger/*", swagger.HandlerDefault)
	// Existing clients expect interactive docs at /docs.
	app.Get("/docs", func(c *fiber.Ctx) error {
		return c.Redirect("/swagger/index.html", fiber.StatusMovedPermanently)
	})

	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", middleware.Protected(authService), authHandler.Logout)

	// User routes (all protected)
	userGroup := apiGroup.Group("/users", middleware.Protected(authService))
	userGroup.Get("/me", userHandler.GetMyProfile)
	userGroup.Get("/me/results", userHandler.GetMyResults)

	apiGroup.Post("/results", middleware.Protected(authService), userHandler.SubmitResult)

	// Quiz routes
	apiGroup.Post("/quizzes/generate", quizHandler.GenerateQuiz)
	apiGroup.Post("/quizzes/generate-from-pdf", quizHandler.GenerateQuizFromPDF)
	apiGroup.Get("/quizzes/:id", quizHandler.GetQuiz)
	apiGroup.Get("/topics", quizHandler.GetTopics)
	apiGroup.Get("/topics/:id/attempts", quizHandler.GetAttempts)
	apiGroup.Get("/categories", quizHandler.GetCategories)
	apiGroup.Post("/attempts", quizHandler.RecordAttempt)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port))
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
