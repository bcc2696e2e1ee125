package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rozgar360/rozgar_backend/config"
	"github.com/rozgar360/rozgar_backend/controllers"
	"github.com/rozgar360/rozgar_backend/middleware"
	"github.com/rozgar360/rozgar_backend/repositories"
	"github.com/rozgar360/rozgar_backend/routes"
	"github.com/rozgar360/rozgar_backend/services"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to Redis; a failure only disables the verify-attempt throttle
	config.ConnectRedis()

	// Connect to database
	client := config.ConnectDB()

	// Create a new Echo instance
	e := echo.New()
	e.HideBanner = true

	// Initialize custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeaders())

	e.HTTPErrorHandler = middleware.HTTPErrorHandler

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "OK",
			"message": "Rozgar360 Backend is running",
			"version": config.APIVersion(),
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Initialize repositories
	userRepo := repositories.NewUserRepository(client)
	otpRepo := repositories.NewOTPRepository(client)
	tokenRepo := repositories.NewRefreshTokenRepository(client)
	reviewRepo := repositories.NewReviewRepository(client)
	contactRepo := repositories.NewContactRepository(client)

	// Initialize services
	authService := services.NewAuthService(
		otpRepo,
		tokenRepo,
		userRepo,
		services.NewSMSSender(),
		config.GetRedisClient(),
		services.DefaultAuthConfig(),
	)
	userService := services.NewUserService(userRepo)
	labourService := services.NewLabourService(userRepo)
	reviewService := services.NewReviewService(reviewRepo, userRepo)
	contactService := services.NewContactService(contactRepo, userRepo)

	// Register routes
	routes.SetupRoutes(e, routes.Controllers{
		Auth:    controllers.NewAuthController(authService),
		User:    controllers.NewUserController(userService),
		Labour:  controllers.NewLabourController(labourService),
		Review:  controllers.NewReviewController(reviewService),
		Contact: controllers.NewContactController(contactService),
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	// Wait for interrupt signal, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Println("Server shutdown error:", err)
	}

	if err := client.Disconnect(ctx); err != nil {
		log.Println("MongoDB disconnect error:", err)
	}

	config.CloseRedis()

	log.Println("Server stopped")
}
