package routes

import (
	"github.com/gofiber/fiber/v2"

	"sustainbite/domain"
	"sustainbite/internal/api/handlers"
	"sustainbite/internal/api/presenters"
	"sustainbite/internal/middleware"
	"sustainbite/pkg/jwt"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	FoodHandler      handlers.FoodHandler
	VolunteerHandler handlers.VolunteerHandler
	PageHandler      handlers.PageHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Food()
	c.Volunteer()
	c.GuestRoute()
	c.Pages()
}

func (c *Config) User() {
	c.App.Post("/register", c.UserHandler.Register)
	c.App.Post("/login", c.UserHandler.Login)
	c.App.Post("/logout", c.UserHandler.Logout)
	c.App.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
}

func (c *Config) Food() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	food := c.App.Group("/food")
	food.Get("", c.FoodHandler.GetFoodListings)
	food.Post("", auth, c.FoodHandler.AddFoodListing)
	food.Delete("", auth, c.FoodHandler.DeleteFoodListing)

	food.Get("/stats", c.FoodHandler.GetFoodStats)
	food.Get("/markers", c.FoodHandler.GetFoodMarkers)
	food.Post("/image", auth, c.FoodHandler.UploadFoodImage)
}

func (c *Config) Volunteer() {
	c.App.Post("/volunteers", c.VolunteerHandler.SubmitApplication)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessPing)
	})
}

func (c *Config) Pages() {
	session := c.Middleware.OptionalAuth(c.JWTService)

	c.App.Get("/", session, c.PageHandler.Home)
	c.App.Get("/about", session, c.PageHandler.About)
	c.App.Get("/available", session, c.PageHandler.Available)
	c.App.Get("/food-map", session, c.PageHandler.FoodMap)
	c.App.Get("/get-food/:id", session, c.PageHandler.GetFood)
	c.App.Get("/donate", session, c.PageHandler.Donate)
	c.App.Get("/volunteer", session, c.PageHandler.Volunteer)
	c.App.Get("/login", session, c.PageHandler.Login)
	c.App.Get("/signup", session, c.PageHandler.Signup)
}
