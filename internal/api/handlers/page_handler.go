package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"sustainbite/domain"
	"sustainbite/internal/middleware"
	"sustainbite/internal/web/templates"
	"sustainbite/pkg/food"
)

var (
	pages = []string{
		"home.html", "about.html", "available.html", "food_map.html", "get_food.html",
		"donate.html", "volunteer.html", "login.html", "signup.html",
	}

	volunteerInterests = []string{"food pickup", "delivery", "sorting and packing", "community outreach", "event support"}
)

type (
	PageHandler interface {
		Home(c *fiber.Ctx) error
		About(c *fiber.Ctx) error
		Available(c *fiber.Ctx) error
		FoodMap(c *fiber.Ctx) error
		GetFood(c *fiber.Ctx) error
		Donate(c *fiber.Ctx) error
		Volunteer(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		Signup(c *fiber.Ctx) error
	}

	pageHandler struct {
		foodService food.FoodService
		templates   map[string]*template.Template
		location    *time.Location
	}
)

// NewPageHandler parses every page together with base.html. It panics on a
// malformed template.
func NewPageHandler(foodService food.FoodService, location *time.Location) PageHandler {
	tmplMap := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmplMap[page] = template.Must(template.New(page).ParseFS(templates.FS, "base.html", page))
	}
	if location == nil {
		location = time.Local
	}
	return &pageHandler{
		foodService: foodService,
		templates:   tmplMap,
		location:    location,
	}
}

func (h *pageHandler) render(c *fiber.Ctx, status int, page string, data fiber.Map) error {
	tmpl, ok := h.templates[page]
	if !ok {
		return fiber.NewError(fiber.StatusInternalServerError, "unknown page "+page)
	}
	if data == nil {
		data = fiber.Map{}
	}
	data["User"] = middleware.GetAuth(c)
	data["Year"] = time.Now().In(h.location).Year()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		log.Errorf("error rendering %s: %v", page, err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

func (h *pageHandler) Home(c *fiber.Ctx) error {
	stats, err := h.foodService.GetFoodStats(c.UserContext())
	if err != nil {
		log.Errorf("error loading food stats: %v", err)
	}
	return h.render(c, fiber.StatusOK, "home.html", fiber.Map{"Stats": stats})
}

func (h *pageHandler) About(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "about.html", nil)
}

func (h *pageHandler) Available(c *fiber.Ctx) error {
	listings, err := h.foodService.GetFoodListings(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, domain.MessageFailedGetFoodListings)
	}
	return h.render(c, fiber.StatusOK, "available.html", fiber.Map{"Listings": listings})
}

func (h *pageHandler) FoodMap(c *fiber.Ctx) error {
	markers, err := h.foodService.GetFoodMarkers(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, domain.MessageFailedGetFoodListings)
	}
	return h.render(c, fiber.StatusOK, "food_map.html", fiber.Map{
		"Markers":   markers,
		"CenterLat": food.ReferenceLatitude,
		"CenterLng": food.ReferenceLongitude,
	})
}

func (h *pageHandler) GetFood(c *fiber.Ctx) error {
	listing, err := h.foodService.GetFoodListingByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrFoodListingNotFound) {
			return h.render(c, fiber.StatusNotFound, "get_food.html", fiber.Map{"Listing": (*domain.FoodListingResponse)(nil)})
		}
		return fiber.NewError(fiber.StatusInternalServerError, domain.MessageFailedGetFoodListing)
	}
	return h.render(c, fiber.StatusOK, "get_food.html", fiber.Map{"Listing": &listing})
}

func (h *pageHandler) Donate(c *fiber.Ctx) error {
	if middleware.GetAuth(c).IsZero() {
		return c.Redirect("/login?next=/donate", fiber.StatusSeeOther)
	}
	return h.render(c, fiber.StatusOK, "donate.html", fiber.Map{
		"Today": time.Now().In(h.location).Format(domain.BestBeforeLayout),
	})
}

func (h *pageHandler) Volunteer(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "volunteer.html", fiber.Map{
		"Availabilities": domain.VolunteerAvailabilities,
		"Interests":      volunteerInterests,
	})
}

func (h *pageHandler) Login(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "login.html", fiber.Map{"Next": safeNext(c.Query("next"))})
}

func (h *pageHandler) Signup(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "signup.html", nil)
}

// safeNext only allows same-site paths as a post-login destination.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/"
	}
	return next
}
