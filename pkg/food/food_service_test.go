package food_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sustainbite/domain"
	"sustainbite/internal/testutil"
	"sustainbite/internal/utils"
	"sustainbite/pkg/food"
)

var (
	owner    = domain.AuthContext{UserID: "65f1c0ffee0000000000aaaa", Name: "Ravi", Email: "ravi@example.com"}
	stranger = domain.AuthContext{UserID: "65f1c0ffee0000000000bbbb", Name: "Meera", Email: "meera@example.com"}

	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
)

type fixture struct {
	svc     food.FoodService
	store   *testutil.FoodStore
	storage *testutil.Storage
	clock   *testutil.FixedClock
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	f := fixture{
		store:   testutil.NewFoodStore(),
		storage: testutil.NewStorage(),
		clock:   testutil.NewFixedClock(time.Date(2025, 3, 10, 9, 0, 0, 0, kolkata)),
	}
	f.svc = food.NewFoodService(f.store, f.storage, utils.NewValidator(),
		food.WithClock(f.clock.Now),
		food.WithLocation(kolkata),
	)
	return f
}

func validRequest(bestBefore string) domain.CreateFoodListingRequest {
	return domain.CreateFoodListingRequest{
		Description:    "Cooked rice, 5kg",
		Quantity:       5,
		BestBeforeDate: bestBefore,
		Location:       "12 Main St, City",
		Contact:        "+91-9876543210",
	}
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateFoodListing(ctx, validRequest("2025-03-13"), owner)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := f.svc.GetFoodListingByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Cooked rice, 5kg", got.Description)
	assert.Equal(t, 5.0, got.Quantity)
	assert.Equal(t, "2025-03-13", got.BestBeforeDate)
	assert.Equal(t, "12 Main St, City", got.Location)
	assert.Equal(t, "+91-9876543210", got.Contact)
	assert.Equal(t, owner.UserID, got.OwnerID)
	assert.Equal(t, domain.UrgencySoon, got.Urgency)
	assert.Equal(t, 3, got.DaysUntilExpiry)
}

func TestCreate_ReportsAllFailingFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateFoodListing(context.Background(), domain.CreateFoodListingRequest{
		Description:    "   rice   ",
		Quantity:       0,
		BestBeforeDate: "2025-03-09",
		Location:       " 12 ",
		Contact:        "call me",
	}, owner)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok, "expected validation error, got %v", err)
	for _, field := range []string{"description", "quantity", "bestBeforeDate", "location", "contact"} {
		assert.Contains(t, verr.Fields, field)
	}
	assert.Zero(t, f.store.Len())
}

func TestCreate_BestBeforeBoundary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateFoodListing(ctx, validRequest("2025-03-09"), owner)
	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "must not be in the past", verr.Fields["bestBeforeDate"])

	created, err := f.svc.CreateFoodListing(ctx, validRequest("2025-03-10"), owner)
	require.NoError(t, err)

	got, err := f.svc.GetFoodListingByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UrgencyToday, got.Urgency)
}

func TestCreate_RejectsClientOwner(t *testing.T) {
	f := newFixture(t)

	req := validRequest("2025-03-12")
	req.OwnerID = stranger.UserID
	_, err := f.svc.CreateFoodListing(context.Background(), req, owner)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "ownerId")
	assert.Zero(t, f.store.Len())
}

func TestCreate_RequiresSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateFoodListing(context.Background(), validRequest("2025-03-12"), domain.AuthContext{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGetByID_MalformedAndMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetFoodListingByID(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, domain.ErrFoodListingNotFound)

	_, err = f.svc.GetFoodListingByID(ctx, "65f1c0ffee0000000000cccc")
	assert.ErrorIs(t, err, domain.ErrFoodListingNotFound)
}

func TestDelete_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateFoodListing(ctx, validRequest("2025-03-12"), owner)
	require.NoError(t, err)

	err = f.svc.DeleteFoodListing(ctx, created.ID, stranger)
	assert.ErrorIs(t, err, domain.ErrFoodListingForbidden)
	_, err = f.svc.GetFoodListingByID(ctx, created.ID)
	require.NoError(t, err, "listing must survive a non-owner delete")

	require.NoError(t, f.svc.DeleteFoodListing(ctx, created.ID, owner))
	_, err = f.svc.GetFoodListingByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrFoodListingNotFound)

	err = f.svc.DeleteFoodListing(ctx, created.ID, owner)
	assert.ErrorIs(t, err, domain.ErrFoodListingNotFound)
}

func TestUploadFoodImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateFoodListing(ctx, validRequest("2025-03-12"), owner)
	require.NoError(t, err)

	req := domain.UploadFoodImageRequest{
		FoodListingID: created.ID,
		Image:         testutil.FileHeader(t, "image", "rice.png", pngBytes),
	}

	_, err = f.svc.UploadFoodImage(ctx, req, stranger)
	assert.ErrorIs(t, err, domain.ErrFoodListingForbidden)
	assert.Empty(t, f.storage.Uploaded)

	updated, err := f.svc.UploadFoodImage(ctx, req, owner)
	require.NoError(t, err)
	require.Len(t, f.storage.Uploaded, 1)
	assert.Equal(t, f.storage.GetPublicLinkKey(f.storage.Uploaded[0]), updated.ImageURL)

	// replacing the photo removes the old object
	_, err = f.svc.UploadFoodImage(ctx, req, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{f.storage.Uploaded[0]}, f.storage.Deleted)

	require.NoError(t, f.svc.DeleteFoodListing(ctx, created.ID, owner))
	assert.Equal(t, f.storage.Uploaded, f.storage.Deleted)
}

func TestUploadFoodImage_StorageDisabled(t *testing.T) {
	svc := food.NewFoodService(testutil.NewFoodStore(), nil, utils.NewValidator())

	_, err := svc.UploadFoodImage(context.Background(), domain.UploadFoodImageRequest{FoodListingID: "x"}, owner)
	assert.ErrorIs(t, err, domain.ErrImageStorageDisabled)
}

func TestStatsAndMarkers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, date := range []string{"2025-03-10", "2025-03-11", "2025-03-14", "2025-03-30"} {
		_, err := f.svc.CreateFoodListing(ctx, validRequest(date), owner)
		require.NoError(t, err)
	}
	f.clock.Advance(24 * time.Hour)

	stats, err := f.svc.GetFoodStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.FoodStatsResponse{Total: 4, Expired: 1, Today: 1, Soon: 1, Fresh: 1}, stats)

	markers, err := f.svc.GetFoodMarkers(ctx)
	require.NoError(t, err)
	require.Len(t, markers, 4)
	for _, m := range markers {
		assert.InDelta(t, food.ReferenceLatitude, m.Latitude, 0.01)
		assert.InDelta(t, food.ReferenceLongitude, m.Longitude, 0.01)
	}
	assert.Equal(t, domain.UrgencyExpired, markers[0].Urgency)
}

func TestCreate_RejectsUnboundedQuantity(t *testing.T) {
	f := newFixture(t)

	for _, q := range []float64{math.Inf(1), math.NaN(), 100001} {
		req := validRequest("2025-03-13")
		req.Quantity = q
		_, err := f.svc.CreateFoodListing(context.Background(), req, owner)

		verr, ok := domain.AsValidationError(err)
		require.True(t, ok, "quantity %v: expected validation error, got %v", q, err)
		assert.Contains(t, verr.Fields, "quantity")
	}
	assert.Zero(t, f.store.Len())

	req := validRequest("2025-03-13")
	req.Quantity = domain.MaxFoodQuantity
	_, err := f.svc.CreateFoodListing(context.Background(), req, owner)
	require.NoError(t, err)
}
