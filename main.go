package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	amqp "github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"phonetech/internal/apperrors"
	"phonetech/internal/handlers"
	"phonetech/internal/models"
	"phonetech/internal/query"
	"phonetech/internal/repositories"
	"phonetech/internal/services"
	"phonetech/pkg/logx"
	"phonetech/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	_ = godotenv.Load()
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "phonetech.db")
	viper.SetDefault("JWT_SECRET", "change-me-in-production")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	logx.Init(viper.GetString("APP_ENV"))

	// --- Database ---
	db, err := openDatabase(viper.GetString("DATABASE_DRIVER"), viper.GetString("DATABASE_DSN"))
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.ContactMessage{},
	); err != nil {
		logx.Fatal().Err(err).Msg("auto-migrate failed")
	}

	// --- Message broker (optional) ---
	// Without a broker the API still runs; notification events are dropped
	// with a warning.
	var events services.EventPublisher
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
		events = mqClient

		// Drain the notification queue so events are visible during
		// development; a real deployment runs the mail sender as its own
		// consumer process.
		if err := mqClient.ConsumeNotificationEvents(func(msg amqp.Delivery) error {
			logx.Info().Str("event", msg.Type).Bytes("body", msg.Body).Msg("notification event")
			return nil
		}); err != nil {
			logx.Error().Err(err).Msg("failed to start notification consumer")
		}
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	brandRepo := repositories.NewGORMBrandRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	contactRepo := repositories.NewGORMContactRepository(db)

	// --- Services ---
	executor := query.NewExecutor(db)
	productService := services.NewProductService(productRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	brandService := services.NewBrandService(brandRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	authService := services.NewAuthService(userRepo, events, viper.GetString("JWT_SECRET"))
	contactService := services.NewContactService(contactRepo, events)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService, executor)
	categoryHandler := handlers.NewCategoryHandler(categoryService, executor)
	brandHandler := handlers.NewBrandHandler(brandService, executor)
	cartHandler := handlers.NewCartHandler(cartService)
	authHandler := handlers.NewAuthHandler(authService)
	contactHandler := handlers.NewContactHandler(contactService)

	// --- Fiber app ---
	app := fiber.New(fiber.Config{
		ErrorHandler: apperrors.ErrorHandler,
	})
	app.Use(logger.New())

	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api, authService)
	categoryHandler.RegisterRoutes(api, authService)
	brandHandler.RegisterRoutes(api, authService)
	cartHandler.RegisterRoutes(api, authService)
	contactHandler.RegisterRoutes(api)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP server ---
	appPort := viper.GetString("APP_PORT")
	logx.Info().Str("port", appPort).Msg("starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			logx.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	logx.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		logx.Error().Err(err).Msg("error during shutdown")
	}
	logx.Info().Msg("server stopped")
}

// openDatabase dials the configured database. ErrDuplicatedKey translation
// is on so repositories can map unique-constraint violations to validation
// errors.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	if driver == "postgres" {
		return gorm.Open(postgres.Open(dsn), cfg)
	}
	return gorm.Open(sqlite.Open(dsn), cfg)
}
