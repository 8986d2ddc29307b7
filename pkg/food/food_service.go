package food

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"sustainbite/domain"
	"sustainbite/entities"
	"sustainbite/internal/utils"
	"sustainbite/internal/utils/storage"
)

const imageFolder = "food-listings"

type (
	FoodService interface {
		CreateFoodListing(ctx context.Context, req domain.CreateFoodListingRequest, auth domain.AuthContext) (domain.CreateFoodListingResponse, error)
		GetFoodListings(ctx context.Context) ([]domain.FoodListingResponse, error)
		GetFoodListingByID(ctx context.Context, id string) (domain.FoodListingResponse, error)
		DeleteFoodListing(ctx context.Context, id string, auth domain.AuthContext) error
		UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, auth domain.AuthContext) (domain.FoodListingResponse, error)
		GetFoodStats(ctx context.Context) (domain.FoodStatsResponse, error)
		GetFoodMarkers(ctx context.Context) ([]domain.FoodMarker, error)
	}

	Option func(*foodService)

	foodService struct {
		foodRepository FoodRepository
		s3             storage.AwsS3
		validator      *validator.Validate
		now            func() time.Time
		location       *time.Location
	}
)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *foodService) { s.now = now }
}

// WithLocation sets the time zone whose calendar decides what "today" is.
func WithLocation(loc *time.Location) Option {
	return func(s *foodService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// NewFoodService builds the listing service. s3 may be nil, which disables
// listing photos.
func NewFoodService(foodRepository FoodRepository, s3 storage.AwsS3, validator *validator.Validate, opts ...Option) FoodService {
	s := &foodService{
		foodRepository: foodRepository,
		s3:             s3,
		validator:      validator,
		now:            time.Now,
		location:       time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *foodService) today() time.Time {
	return s.now().In(s.location)
}

func (s *foodService) CreateFoodListing(ctx context.Context, req domain.CreateFoodListingRequest, auth domain.AuthContext) (domain.CreateFoodListingResponse, error) {
	if auth.IsZero() {
		return domain.CreateFoodListingResponse{}, domain.ErrUnauthorized
	}

	bestBefore, err := s.validateCreate(&req)
	if err != nil {
		return domain.CreateFoodListingResponse{}, err
	}

	listing := &entities.FoodListing{
		Description:    req.Description,
		Quantity:       req.Quantity,
		BestBeforeDate: bestBefore,
		Location:       req.Location,
		Contact:        req.Contact,
		OwnerID:        auth.UserID,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.foodRepository.AddFoodListing(ctx, listing); err != nil {
		return domain.CreateFoodListingResponse{}, err
	}

	return domain.CreateFoodListingResponse{ID: listing.ID.Hex()}, nil
}

// validateCreate trims the request in place and reports every failing field
// at once.
func (s *foodService) validateCreate(req *domain.CreateFoodListingRequest) (time.Time, error) {
	req.Description = strings.TrimSpace(req.Description)
	req.Location = strings.TrimSpace(req.Location)
	req.Contact = strings.TrimSpace(req.Contact)

	verr := domain.NewValidationError()
	verr.Merge(utils.ValidationErrors(s.validator.Struct(req)))

	var bestBefore time.Time
	if _, failed := verr.Fields["bestBeforeDate"]; !failed {
		parsed, err := ParseBestBefore(req.BestBeforeDate)
		switch {
		case err != nil:
			verr.Add("bestBeforeDate", err.Error())
		case parsed.Before(CalendarDate(s.today())):
			verr.Add("bestBeforeDate", "must not be in the past")
		default:
			bestBefore = parsed
		}
	}

	return bestBefore, verr.OrNil()
}

func (s *foodService) GetFoodListings(ctx context.Context) ([]domain.FoodListingResponse, error) {
	listings, err := s.foodRepository.GetFoodListings(ctx)
	if err != nil {
		return nil, err
	}

	now := s.today()
	res := make([]domain.FoodListingResponse, 0, len(listings))
	for _, listing := range listings {
		res = append(res, toFoodListingResponse(listing, now))
	}
	return res, nil
}

func (s *foodService) GetFoodListingByID(ctx context.Context, id string) (domain.FoodListingResponse, error) {
	listing, err := s.foodRepository.GetFoodListingByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return domain.FoodListingResponse{}, err
	}
	return toFoodListingResponse(listing, s.today()), nil
}

func (s *foodService) DeleteFoodListing(ctx context.Context, id string, auth domain.AuthContext) error {
	if auth.IsZero() {
		return domain.ErrUnauthorized
	}

	listing, err := s.foodRepository.DeleteOwnedFoodListing(ctx, strings.TrimSpace(id), auth.UserID)
	if err != nil {
		return err
	}

	s.removeImage(ctx, listing.ImageURL)
	return nil
}

func (s *foodService) UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, auth domain.AuthContext) (domain.FoodListingResponse, error) {
	if auth.IsZero() {
		return domain.FoodListingResponse{}, domain.ErrUnauthorized
	}
	if s.s3 == nil {
		return domain.FoodListingResponse{}, domain.ErrImageStorageDisabled
	}

	verr := domain.NewValidationError()
	verr.Merge(utils.ValidationErrors(s.validator.Struct(req)))
	if err := verr.OrNil(); err != nil {
		return domain.FoodListingResponse{}, err
	}

	existing, err := s.foodRepository.GetFoodListingByID(ctx, req.FoodListingID)
	if err != nil {
		return domain.FoodListingResponse{}, err
	}
	if existing.OwnerID != auth.UserID {
		return domain.FoodListingResponse{}, domain.ErrFoodListingForbidden
	}

	objectKey, err := s.s3.UploadFile(ctx, uuid.NewString(), req.Image, imageFolder, storage.AllowImage...)
	if err != nil {
		if errors.Is(err, storage.ErrFileTypeNotAllowed) {
			return domain.FoodListingResponse{}, domain.ErrInvalidImageFormat
		}
		return domain.FoodListingResponse{}, err
	}

	updated, err := s.foodRepository.SetFoodListingImage(ctx, req.FoodListingID, auth.UserID, s.s3.GetPublicLinkKey(objectKey))
	if err != nil {
		if delErr := s.s3.DeleteFile(ctx, objectKey); delErr != nil {
			log.Errorf("failed to remove orphaned image %s: %v", objectKey, delErr)
		}
		return domain.FoodListingResponse{}, err
	}

	s.removeImage(ctx, existing.ImageURL)
	return toFoodListingResponse(updated, s.today()), nil
}

func (s *foodService) removeImage(ctx context.Context, imageURL string) {
	if imageURL == "" || s.s3 == nil {
		return
	}
	key := s.s3.GetObjectKeyFromLink(imageURL)
	if key == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, key); err != nil {
		log.Errorf("failed to remove image %s: %v", key, err)
	}
}

func (s *foodService) GetFoodStats(ctx context.Context) (domain.FoodStatsResponse, error) {
	listings, err := s.foodRepository.GetFoodListings(ctx)
	if err != nil {
		return domain.FoodStatsResponse{}, err
	}

	now := s.today()
	stats := domain.FoodStatsResponse{Total: len(listings)}
	for _, listing := range listings {
		switch ClassifyUrgency(listing.BestBeforeDate, now) {
		case domain.UrgencyExpired:
			stats.Expired++
		case domain.UrgencyToday:
			stats.Today++
		case domain.UrgencyUrgent:
			stats.Urgent++
		case domain.UrgencySoon:
			stats.Soon++
		default:
			stats.Fresh++
		}
	}
	return stats, nil
}

func (s *foodService) GetFoodMarkers(ctx context.Context) ([]domain.FoodMarker, error) {
	listings, err := s.GetFoodListings(ctx)
	if err != nil {
		return nil, err
	}

	markers := make([]domain.FoodMarker, 0, len(listings))
	for _, l := range listings {
		lat, lng := MarkerPosition(l.ID)
		markers = append(markers, domain.FoodMarker{
			ID:             l.ID,
			Description:    l.Description,
			Quantity:       l.Quantity,
			BestBeforeDate: l.BestBeforeDate,
			Location:       l.Location,
			Contact:        l.Contact,
			Urgency:        l.Urgency,
			Latitude:       lat,
			Longitude:      lng,
		})
	}
	return markers, nil
}

func toFoodListingResponse(listing *entities.FoodListing, now time.Time) domain.FoodListingResponse {
	days := DaysUntil(listing.BestBeforeDate, now)
	return domain.FoodListingResponse{
		ID:              listing.ID.Hex(),
		Description:     listing.Description,
		Quantity:        listing.Quantity,
		BestBeforeDate:  listing.BestBeforeDate.UTC().Format(domain.BestBeforeLayout),
		Location:        listing.Location,
		Contact:         listing.Contact,
		OwnerID:         listing.OwnerID,
		ImageURL:        listing.ImageURL,
		CreatedAt:       listing.CreatedAt,
		Urgency:         UrgencyForDays(days),
		DaysUntilExpiry: days,
	}
}
