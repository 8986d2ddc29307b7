package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sustainbite/domain"
	"sustainbite/internal/api/presenters"
	"sustainbite/pkg/volunteer"
)

type (
	VolunteerHandler interface {
		SubmitApplication(c *fiber.Ctx) error
	}

	volunteerHandler struct {
		volunteerService volunteer.VolunteerService
	}
)

func NewVolunteerHandler(volunteerService volunteer.VolunteerService) VolunteerHandler {
	return &volunteerHandler{
		volunteerService: volunteerService,
	}
}

func (h *volunteerHandler) SubmitApplication(c *fiber.Ctx) error {
	req := new(domain.VolunteerRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.volunteerService.SubmitApplication(c.UserContext(), *req); err != nil {
		return presenters.ServiceError(c, domain.MessageFailedSubmitVolunteer, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusCreated, domain.MessageSuccessSubmitVolunteer)
}
