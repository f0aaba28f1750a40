package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prepwise/interview-api/internal/config"
	"github.com/prepwise/interview-api/internal/domain/fiber/handler"
	"github.com/prepwise/interview-api/internal/logger"
	"github.com/prepwise/interview-api/internal/middleware"
	"github.com/prepwise/interview-api/internal/model"
	"github.com/prepwise/interview-api/internal/repository"
	"github.com/prepwise/interview-api/internal/service"
	"github.com/prepwise/interview-api/internal/usecase"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		fmt.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	log, err := logger.New(appConfig.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := connectDB(log)

	provider, embedder := buildProvider(ctx, log)

	interviewRepo := repository.NewInterviewRepository(db)
	var topicRepo *repository.TopicRepository
	if embedder != nil {
		topicRepo = repository.NewTopicRepository(db)
	}
	retry := service.NewRetryPolicy(log)
	uc := usecase.NewInterviewUsecase(interviewRepo, topicRepo, provider, embedder, retry, log)
	h := handler.NewInterviewHandler(uc)
	h.RegisterRoutes(app)

	log.Info("server running",
		zap.String("port", appConfig.Port),
		zap.String("provider", provider.Name()),
	)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// buildProvider selects the text-generation backend. Missing credentials for
// the selected backend are fatal at startup, not a pipeline concern. A Gemini
// key also enables the embedding-backed topic context regardless of the
// selected provider.
func buildProvider(ctx context.Context, log *zap.Logger) (service.Provider, service.Embedder) {
	aiConfig := config.LoadAIConfig()
	geminiConfig := config.LoadGeminiConfig()

	var gemini *service.GeminiService
	if geminiConfig.APIKey != "" {
		g, err := service.NewGeminiService(ctx, geminiConfig, log)
		if err != nil {
			log.Fatal("gemini client init failed", zap.Error(err))
		}
		gemini = g
	}

	switch aiConfig.Provider {
	case "openai":
		openAIConfig := config.LoadOpenAIConfig()
		if openAIConfig.APIKey == "" {
			log.Fatal("OPENAI_API_KEY not set")
		}
		var embedder service.Embedder
		if gemini != nil {
			embedder = gemini
		}
		return service.NewOpenAIService(openAIConfig, log), embedder
	case "gemini":
		if gemini == nil {
			log.Fatal("GEMINI_API_KEY not set")
		}
		return gemini, gemini
	case "canned":
		var embedder service.Embedder
		if gemini != nil {
			embedder = gemini
		}
		return service.NewCannedService(), embedder
	default:
		log.Fatal("unsupported AI provider", zap.String("provider", aiConfig.Provider))
		return nil, nil
	}
}

func connectDB(log *zap.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatal("could not get database instance", zap.Error(err))
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.Fatal("could not enable pgvector extension", zap.Error(err))
	}
	if err := db.AutoMigrate(&model.Interview{}, &model.Topic{}); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	return db
}
