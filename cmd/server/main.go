package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tropical-cargo-api/internal/config"
	"tropical-cargo-api/internal/controller"
	"tropical-cargo-api/internal/dto"
	"tropical-cargo-api/internal/middleware"
	"tropical-cargo-api/internal/rabbit"
	"tropical-cargo-api/internal/repository"
	"tropical-cargo-api/internal/service"
	"tropical-cargo-api/internal/token"
)

const sessionTTL = 30 * 24 * time.Hour

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// MongoDB connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}
	db := client.Database(cfg.MongoDBName)

	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	// RabbitMQ connection
	conn, err := amqp091.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("failed to open RabbitMQ channel: %v", err)
	}

	publisher, err := rabbit.NewStatusPublisher(ch)
	if err != nil {
		log.Fatalf("failed to declare status exchange: %v", err)
	}

	// Repositories and services
	orderRepo := repository.NewMongoOrderRepository(db)
	quoteRepo := repository.NewMongoQuoteRepository(db)
	userRepo := repository.NewMongoUserRepository(db)

	orderService := service.NewOrderService(orderRepo, publisher, logger)
	quoteService := service.NewQuoteService(quoteRepo)
	userService := service.NewUserService(userRepo)
	tokens := token.NewManager(cfg.SessionSecret, sessionTTL)

	// Handlers
	orderCtl := controller.NewOrderController(orderService, logger)
	quoteCtl := controller.NewQuoteController(quoteService, logger)
	authCtl := controller.NewAuthController(userService, tokens, logger)

	// Router
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidations(v); err != nil {
			log.Fatalf("failed to register validations: %v", err)
		}
	}
	r := gin.Default()

	r.POST("/orders", orderCtl.Create)
	r.GET("/orders", orderCtl.List)
	r.GET("/orders/customer/:customerId", orderCtl.ListByCustomer)
	r.GET("/orders/tracking/:trackingNumber", orderCtl.Track)
	r.GET("/orders/:id", orderCtl.GetByID)
	r.PATCH("/orders/:id", orderCtl.UpdateStatus)
	r.DELETE("/orders/:id", orderCtl.Delete)

	r.POST("/quotes", quoteCtl.Submit)

	r.POST("/register", authCtl.Register)
	r.POST("/auth", authCtl.SignIn)

	session := r.Group("/")
	session.Use(middleware.AuthMiddleware(tokens))
	session.GET("/auth/session", authCtl.Session)

	// Booking intake from the website
	if err := rabbit.SetupConsumers(ch, orderService, logger); err != nil {
		log.Fatalf("failed to start consumers: %v", err)
	}

	logger.Info("cargo order service listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
