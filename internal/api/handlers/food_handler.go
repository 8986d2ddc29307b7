package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"sustainbite/domain"
	"sustainbite/internal/api/presenters"
	"sustainbite/internal/middleware"
	"sustainbite/pkg/food"
)

type (
	FoodHandler interface {
		AddFoodListing(c *fiber.Ctx) error
		GetFoodListings(c *fiber.Ctx) error
		DeleteFoodListing(c *fiber.Ctx) error
		UploadFoodImage(c *fiber.Ctx) error
		GetFoodStats(c *fiber.Ctx) error
		GetFoodMarkers(c *fiber.Ctx) error
	}

	foodHandler struct {
		foodService food.FoodService
	}
)

func NewFoodHandler(foodService food.FoodService) FoodHandler {
	return &foodHandler{
		foodService: foodService,
	}
}

func (h *foodHandler) AddFoodListing(c *fiber.Ctx) error {
	req := new(domain.CreateFoodListingRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.foodService.CreateFoodListing(c.UserContext(), *req, middleware.GetAuth(c))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedAddFoodListing, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddFoodListing)
}

// GetFoodListings serves both the full list and, with ?id=, a single listing.
func (h *foodHandler) GetFoodListings(c *fiber.Ctx) error {
	if id := strings.TrimSpace(c.Query("id")); id != "" {
		listing, err := h.foodService.GetFoodListingByID(c.UserContext(), id)
		if err != nil {
			return presenters.ServiceError(c, domain.MessageFailedGetFoodListing, err)
		}
		return presenters.SuccessResponse(c, listing, fiber.StatusOK, domain.MessageSuccessGetFoodListings)
	}

	listings, err := h.foodService.GetFoodListings(c.UserContext())
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetFoodListings, err)
	}
	return presenters.SuccessResponse(c, listings, fiber.StatusOK, domain.MessageSuccessGetFoodListings)
}

func (h *foodHandler) DeleteFoodListing(c *fiber.Ctx) error {
	req := new(domain.DeleteFoodListingRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}
	if req.ID == "" {
		req.ID = c.Query("id")
	}
	if strings.TrimSpace(req.ID) == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMissingID, nil)
	}

	if err := h.foodService.DeleteFoodListing(c.UserContext(), req.ID, middleware.GetAuth(c)); err != nil {
		return presenters.ServiceError(c, domain.MessageFailedDeleteFoodListing, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteFoodListing)
}

func (h *foodHandler) UploadFoodImage(c *fiber.Ctx) error {
	req := domain.UploadFoodImageRequest{
		FoodListingID: strings.TrimSpace(c.FormValue("food_id")),
	}
	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadFoodImage, err)
	}
	req.Image = image

	res, err := h.foodService.UploadFoodImage(c.UserContext(), req, middleware.GetAuth(c))
	if err != nil {
		if status, _ := presenters.Classify(err); status == fiber.StatusNotFound {
			return presenters.ErrorResponse(c, status, domain.MessageFailedDeleteFoodListing, err)
		}
		return presenters.ServiceError(c, domain.MessageFailedUploadFoodImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadFoodImage)
}

func (h *foodHandler) GetFoodStats(c *fiber.Ctx) error {
	stats, err := h.foodService.GetFoodStats(c.UserContext())
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetFoodStats, err)
	}
	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetFoodStats)
}

func (h *foodHandler) GetFoodMarkers(c *fiber.Ctx) error {
	markers, err := h.foodService.GetFoodMarkers(c.UserContext())
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetFoodListings, err)
	}
	return presenters.SuccessResponse(c, markers, fiber.StatusOK, domain.MessageSuccessGetFoodMarkers)
}
