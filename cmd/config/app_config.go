package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"sustainbite/domain"
	"sustainbite/internal/api/handlers"
	"sustainbite/internal/api/presenters"
	"sustainbite/internal/api/routes"
	"sustainbite/internal/middleware"
	"sustainbite/internal/utils"
	"sustainbite/internal/utils/mailing"
	"sustainbite/internal/utils/mongodb"
	"sustainbite/internal/utils/storage"
	"sustainbite/pkg/food"
	"sustainbite/pkg/jwt"
	"sustainbite/pkg/user"
	"sustainbite/pkg/volunteer"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// App is the wired HTTP application. Close releases what the handlers hold
// beyond the request lifetime.
type App struct {
	*fiber.App

	volunteerService volunteer.VolunteerService
	logFile          io.Closer
}

func (a *App) Close() {
	a.volunteerService.Close()
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

func NewApp(db *mongodb.Accessor) (*App, error) {
	secret := utils.GetConfig("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}

	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName:           "SustainBite",
		EnablePrintRoutes: !utils.IsProduction(),
		ErrorHandler:      errorHandler,
		BodyLimit:         6 << 20,
		Immutable:         true,
	})
	middlewares := middleware.NewMiddleware(utils.GetConfig("CORS_ALLOW_ORIGINS"))
	validator := utils.Validate
	location := loadLocation(utils.GetConfig("TIMEZONE"))

	// setting up logging and limiter
	output, logFile, err := openLogOutput(utils.GetConfig("LOG_FILE"))
	if err != nil {
		return nil, err
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   location.String(),
		Output:     output,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT_PER_SECOND"),
		Expiration: 1 * time.Second,
		LimitReached: func(c *fiber.Ctx) error {
			return presenters.ErrorResponse(c, fiber.StatusTooManyRequests, "too many requests", nil)
		},
	}))

	// utils
	s3 := storage.NewAwsS3(storage.S3Config{
		Bucket:    utils.GetConfig("AWS_S3_BUCKET"),
		Region:    utils.GetConfig("AWS_S3_REGION"),
		AccessKey: utils.GetConfig("AWS_ACCESS_KEY"),
		SecretKey: utils.GetConfig("AWS_SECRET_KEY"),
	})
	mailer := mailing.NewMailer(mailing.LoadMailConfig())
	if mailer == nil {
		log.Info("SMTP not configured, volunteer acknowledgements disabled")
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	foodRepository := food.NewFoodRepository(db)
	volunteerRepository := volunteer.NewVolunteerRepository(db)

	// Service
	jwtService := jwt.NewJWTService(secret, time.Duration(utils.GetConfigInt("SESSION_TTL_MINUTES"))*time.Minute)
	userService := user.NewUserService(userRepository, jwtService, validator)
	foodService := food.NewFoodService(foodRepository, s3, validator, food.WithLocation(location))
	volunteerService := volunteer.NewVolunteerService(volunteerRepository, mailer, validator)

	// Handler
	userHandler := handlers.NewUserHandler(userService, jwtService, utils.IsProduction())
	foodHandler := handlers.NewFoodHandler(foodService)
	volunteerHandler := handlers.NewVolunteerHandler(volunteerService)
	pageHandler := handlers.NewPageHandler(foodService, location)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		FoodHandler:      foodHandler,
		VolunteerHandler: volunteerHandler,
		PageHandler:      pageHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
	}
	routesConfig.Setup()

	return &App{App: app, volunteerService: volunteerService, logFile: logFile}, nil
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return presenters.ErrorResponse(c, fe.Code, fe.Message, nil)
	}
	return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, err)
}

// openLogOutput returns stdout for "-" or an empty path, otherwise the file.
func openLogOutput(path string) (io.Writer, io.Closer, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warnf("unknown TIMEZONE %q, using local time: %v", name, err)
		return time.Local
	}
	return loc
}
