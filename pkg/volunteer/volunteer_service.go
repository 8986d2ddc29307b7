package volunteer

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"

	"sustainbite/domain"
	"sustainbite/entities"
	"sustainbite/internal/utils"
	"sustainbite/internal/utils/mailing"
)

const acknowledgementSubject = "Thanks for volunteering with SustainBite"

type (
	VolunteerService interface {
		SubmitApplication(ctx context.Context, req domain.VolunteerRequest) error
		// Close waits for acknowledgement mails still being sent.
		Close()
	}

	volunteerService struct {
		volunteerRepository VolunteerRepository
		mailer              mailing.Mailer
		validator           *validator.Validate
		now                 func() time.Time

		wg sync.WaitGroup
	}
)

// NewVolunteerService builds the intake service. mailer may be nil, in which
// case no acknowledgement is sent.
func NewVolunteerService(volunteerRepository VolunteerRepository, mailer mailing.Mailer, validator *validator.Validate) VolunteerService {
	return &volunteerService{
		volunteerRepository: volunteerRepository,
		mailer:              mailer,
		validator:           validator,
		now:                 time.Now,
	}
}

func (s *volunteerService) SubmitApplication(ctx context.Context, req domain.VolunteerRequest) error {
	// The request may alias the transport's pooled buffers, and the
	// acknowledgement outlives the request.
	req.Name = strings.Clone(strings.TrimSpace(req.Name))
	req.Email = strings.Clone(strings.TrimSpace(req.Email))
	req.Phone = strings.Clone(strings.TrimSpace(req.Phone))
	req.Availability = strings.Clone(strings.TrimSpace(req.Availability))
	req.Message = strings.Clone(req.Message)
	req.Experience = strings.Clone(req.Experience)

	verr := domain.NewValidationError()
	verr.Merge(utils.ValidationErrors(s.validator.Struct(req)))
	if err := verr.OrNil(); err != nil {
		return err
	}

	volunteer := &entities.Volunteer{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Availability: req.Availability,
		Interests:    dedupe(req.Interests),
		Message:      req.Message,
		Experience:   req.Experience,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.volunteerRepository.CreateVolunteer(ctx, volunteer); err != nil {
		return err
	}

	if s.mailer != nil {
		s.wg.Add(1)
		go s.acknowledge(*volunteer)
	}
	return nil
}

func (s *volunteerService) acknowledge(v entities.Volunteer) {
	defer s.wg.Done()

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Thank you for offering your time (%s). We will reach out at %s when a pickup near you needs a hand.</p>",
		html.EscapeString(v.Name), html.EscapeString(v.Availability), html.EscapeString(v.Phone),
	)
	if err := s.mailer.SendMail(v.Email, acknowledgementSubject, body); err != nil {
		log.Errorf("failed to send volunteer acknowledgement to %s: %v", v.Email, err)
	}
}

func (s *volunteerService) Close() {
	s.wg.Wait()
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.Clone(strings.TrimSpace(v))
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
