package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"

	"lager/internal/graphql"
	"lager/internal/handlers"
	"lager/internal/repositories"
	"lager/internal/services"
	"lager/internal/validation"
	"lager/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGODB_DATABASE", "lager")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publishing
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	mongoURI := viper.GetString("MONGODB_URI")
	mongoDatabase := viper.GetString("MONGODB_DATABASE")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// --- MongoDB ---
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := repositories.Connect(connectCtx, mongoURI)
	if err != nil {
		logger.Error("failed to connect to MongoDB", "uri", mongoURI, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("error disconnecting MongoDB client", "error", err)
		}
	}()

	db := client.Database(mongoDatabase)
	if err := repositories.EnsureIndexes(connectCtx, db); err != nil {
		logger.Error("failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	// --- RabbitMQ (optional) ---
	var events services.EventPublisher
	if rabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL}, logger)
		if err != nil {
			logger.Error("failed to initialize RabbitMQ client", "error", err)
			os.Exit(1)
		}
		defer mqClient.Close()
		events = mqClient

		// Log every inventory event back out. Real consumers bind their own
		// queues with narrower patterns.
		err = mqClient.ConsumeInventoryEvents("#", func(msg amqp.Delivery) error {
			logger.Info("inventory event", "routingKey", msg.RoutingKey, "body", string(msg.Body))
			return nil
		})
		if err != nil {
			logger.Error("failed to start inventory consumer", "error", err)
		}
	} else {
		logger.Info("RABBITMQ_URL not set, event publishing disabled")
	}

	// --- Repositories ---
	contactRepo := repositories.NewMongoContactRepository(db)
	manufacturerRepo := repositories.NewMongoManufacturerRepository(db)
	productRepo := repositories.NewMongoProductRepository(db)

	// --- Services ---
	validate := validation.New()
	productService := services.NewProductService(productRepo, validate, events, logger)
	manufacturerService := services.NewManufacturerService(manufacturerRepo, contactRepo, validate, events, logger)
	contactService := services.NewContactService(contactRepo, validate)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService, logger)
	manufacturerHandler := handlers.NewManufacturerHandler(manufacturerService, logger)
	contactHandler := handlers.NewContactHandler(contactService, logger)

	resolver := graphql.NewResolver(productService, manufacturerService, contactService, logger)
	schema, err := graphql.NewSchema(resolver)
	if err != nil {
		logger.Error("failed to build GraphQL schema", "error", err)
		os.Exit(1)
	}
	graphqlHandler := graphql.NewHandler(schema)

	// --- Fiber App ---
	app := fiber.New()

	app.Use(recover.New())
	app.Use(fiberlogger.New())

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)
	manufacturerHandler.RegisterRoutes(api)
	contactHandler.RegisterRoutes(api)

	graphqlHandler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	logger.Info("starting server", "port", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	logger.Info("shutting down server")

	if err := app.Shutdown(); err != nil {
		logger.Error("error during shutdown", "error", err)
	}

	logger.Info("server stopped")
}
