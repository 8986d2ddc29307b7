package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	// BestBeforeLayout is the calendar-date format used on the wire.
	BestBeforeLayout = "2006-01-02"

	UrgencyExpired = "Expired"
	UrgencyToday   = "Today"
	UrgencyUrgent  = "Urgent"
	UrgencySoon    = "Soon"
	UrgencyFresh   = "Fresh"

	// MaxFoodQuantity matches the lte bound on CreateFoodListingRequest.Quantity.
	MaxFoodQuantity = 100000
)

var (
	MessageSuccessAddFoodListing    = "food data saved successfully"
	MessageSuccessGetFoodListings   = "food data retrieved successfully"
	MessageSuccessDeleteFoodListing = "food entry deleted successfully"
	MessageSuccessUploadFoodImage   = "food image uploaded successfully"
	MessageSuccessGetFoodStats      = "food statistics retrieved successfully"
	MessageSuccessGetFoodMarkers    = "food markers retrieved successfully"

	MessageFailedAddFoodListing    = "failed to save food data"
	MessageFailedGetFoodListings   = "failed to fetch food data"
	MessageFailedGetFoodListing    = "food entry not found"
	MessageFailedDeleteFoodListing = "food entry not found or not owned by user"
	MessageFailedMissingID         = "missing id"
	MessageFailedUploadFoodImage   = "failed to upload food image"
	MessageFailedGetFoodStats      = "failed to retrieve food statistics"

	ErrFoodListingNotFound  = errors.New("food listing not found")
	ErrFoodListingForbidden = errors.New("food listing not owned by requester")
	ErrImageStorageDisabled = errors.New("image storage is not configured")
	ErrInvalidImageFormat   = errors.New("invalid image format")
)

type (
	// CreateFoodListingRequest is the body of POST /food. OwnerID and UserID
	// exist only so that a client trying to set ownership is rejected rather
	// than silently ignored.
	CreateFoodListingRequest struct {
		Description    string  `json:"description" form:"description" validate:"required,trimmed_min=10,max=1000"`
		Quantity       float64 `json:"quantity" form:"quantity" validate:"required,gt=0,lte=100000"`
		BestBeforeDate string  `json:"bestBeforeDate" form:"bestBeforeDate" validate:"required"`
		Location       string  `json:"location" form:"location" validate:"required,trimmed_min=5,max=300"`
		Contact        string  `json:"contact" form:"contact" validate:"required,phone,max=32"`
		OwnerID        string  `json:"ownerId" form:"ownerId" validate:"isdefault"`
		UserID         string  `json:"userId" form:"userId" validate:"isdefault"`
	}

	CreateFoodListingResponse struct {
		ID string `json:"id"`
	}

	DeleteFoodListingRequest struct {
		ID string `json:"id" form:"id"`
	}

	UploadFoodImageRequest struct {
		FoodListingID string                `json:"food_id" form:"food_id" validate:"required"`
		Image         *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	FoodListingResponse struct {
		ID              string    `json:"id"`
		Description     string    `json:"description"`
		Quantity        float64   `json:"quantity"`
		BestBeforeDate  string    `json:"bestBeforeDate"`
		Location        string    `json:"location"`
		Contact         string    `json:"contact"`
		OwnerID         string    `json:"ownerId"`
		ImageURL        string    `json:"imageUrl,omitempty"`
		CreatedAt       time.Time `json:"createdAt"`
		Urgency         string    `json:"urgency"`
		DaysUntilExpiry int       `json:"daysUntilExpiry"`
	}

	// FoodMarker is a listing placed on the map. The coordinates are a
	// deterministic offset from a fixed reference point, not a geocoded address.
	FoodMarker struct {
		ID             string  `json:"id"`
		Description    string  `json:"description"`
		Quantity       float64 `json:"quantity"`
		BestBeforeDate string  `json:"bestBeforeDate"`
		Location       string  `json:"location"`
		Contact        string  `json:"contact"`
		Urgency        string  `json:"urgency"`
		Latitude       float64 `json:"latitude"`
		Longitude      float64 `json:"longitude"`
	}

	FoodStatsResponse struct {
		Total   int `json:"total"`
		Expired int `json:"expired"`
		Today   int `json:"today"`
		Urgent  int `json:"urgent"`
		Soon    int `json:"soon"`
		Fresh   int `json:"fresh"`
	}
)
