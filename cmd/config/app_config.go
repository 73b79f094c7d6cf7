package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"foodgram/internal/api/handlers"
	"foodgram/internal/api/presenters"
	"foodgram/internal/api/routes"
	"foodgram/internal/metrics"
	"foodgram/internal/middleware"
	"foodgram/internal/utils"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/ingredient"
	"foodgram/pkg/jwt"
	"foodgram/pkg/recipe"
	"foodgram/pkg/relation"
	"foodgram/pkg/shopping"
	"foodgram/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Options carries everything BuildApp needs besides the database.
type Options struct {
	Storage   storage.AwsS3
	JWTSecret string
	AppURL    string
	PageSize  int
	// RateLimit is the number of requests per second per client; 0 disables it.
	RateLimit int
	// AccessLog receives the HTTP access log; nil disables it.
	AccessLog io.Writer
	Now       func() time.Time
}

// NewApp builds the production app from the loaded configuration. The
// returned closer releases the access log file.
func NewApp(ctx context.Context, db *gorm.DB) (*fiber.App, io.Closer, error) {
	logPath := utils.GetConfig("LOG_FILE")
	if err := os.MkdirAll(filepath.Dir(logPath), os.ModePerm); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	s3, err := storage.NewAwsS3(ctx)
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}

	app := BuildApp(db, Options{
		Storage:   s3,
		JWTSecret: utils.GetConfig("JWT_SECRET"),
		AppURL:    utils.GetConfig("APP_URL"),
		PageSize:  utils.GetIntConfig("PAGE_SIZE", 6),
		RateLimit: utils.GetIntConfig("RATE_LIMIT", 10),
		AccessLog: file,
	})
	return app, file, nil
}

func BuildApp(db *gorm.DB, opts Options) *fiber.App {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		ErrorHandler: presenters.ErrorHandler,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	app.Use(recover.New())
	if opts.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			TimeFormat: "2006-01-02 15:04:05",
			Output:     opts.AccessLog,
		}))
	}
	if opts.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimit,
			Expiration: 1 * time.Second,
		}))
	}

	// Repository
	relationRepository := relation.NewRelationRepository(db)
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	shoppingRepository := shopping.NewShoppingRepository(db)

	// Service
	jwtService := jwt.NewJWTService(opts.JWTSecret)
	userService := user.NewUserService(userRepository, relationRepository, opts.Storage, opts.PageSize)
	recipeService := recipe.NewRecipeService(recipeRepository, relationRepository, opts.Storage, opts.AppURL, opts.PageSize)
	ingredientService := ingredient.NewIngredientService(ingredientRepository, validator)
	shoppingService := shopping.NewShoppingService(shoppingRepository, opts.Now)
	relationService := relation.NewRelationService(relationRepository, map[relation.Kind]relation.Target{
		relation.KindFavorite:     recipe.NewRelationTarget(recipeService),
		relation.KindShoppingCart: recipe.NewRelationTarget(recipeService),
		relation.KindFollow:       user.NewRelationTarget(userService),
	})

	// Handler
	recipeHandler := handlers.NewRecipeHandler(recipeService, relationService, shoppingService, validator)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService)
	userHandler := handlers.NewUserHandler(userService, relationService)

	// routes
	routesConfig := routes.Config{
		App:               app,
		RecipeHandler:     recipeHandler,
		IngredientHandler: ingredientHandler,
		UserHandler:       userHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
		MetricsHandler:    metrics.Handler(),
	}
	routesConfig.Setup()
	return app
}
