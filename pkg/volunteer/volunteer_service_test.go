package volunteer_test

import (
	"context"
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"sustainbite/domain"
	"sustainbite/internal/testutil"
	"sustainbite/internal/utils"
	"sustainbite/pkg/volunteer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func validApplication() domain.VolunteerRequest {
	return domain.VolunteerRequest{
		Name:         "Priya",
		Email:        "priya@example.com",
		Phone:        "+91 98765 43210",
		Availability: "weekends",
		Interests:    []string{"pickup", "sorting", "pickup"},
	}
}

func TestSubmitApplication_StoresAndAcknowledges(t *testing.T) {
	store := testutil.NewVolunteerStore()
	mailer := testutil.NewMailer()
	svc := volunteer.NewVolunteerService(store, mailer, utils.NewValidator())

	require.NoError(t, svc.SubmitApplication(context.Background(), validApplication()))
	svc.Close()

	saved := store.All()
	require.Len(t, saved, 1)
	assert.Equal(t, "Priya", saved[0].Name)
	assert.Equal(t, []string{"pickup", "sorting"}, saved[0].Interests)
	assert.Equal(t, "", saved[0].Message)
	assert.Equal(t, "", saved[0].Experience)
	assert.False(t, saved[0].CreatedAt.IsZero())

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "priya@example.com", sent[0].To)
}

func TestSubmitApplication_Validation(t *testing.T) {
	store := testutil.NewVolunteerStore()
	svc := volunteer.NewVolunteerService(store, nil, utils.NewValidator())

	req := validApplication()
	req.Name = "  "
	req.Availability = "sometimes"
	err := svc.SubmitApplication(context.Background(), req)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "availability")
	assert.Empty(t, store.All())
}

func TestSubmitApplication_InterestsOptional(t *testing.T) {
	store := testutil.NewVolunteerStore()
	svc := volunteer.NewVolunteerService(store, nil, utils.NewValidator())

	req := validApplication()
	req.Interests = nil
	require.NoError(t, svc.SubmitApplication(context.Background(), req))
	assert.Empty(t, store.All()[0].Interests)
}

func TestSubmitApplication_MailFailureIsNotSurfaced(t *testing.T) {
	store := testutil.NewVolunteerStore()
	mailer := testutil.NewMailer()
	mailer.Err = errors.New("smtp down")
	svc := volunteer.NewVolunteerService(store, mailer, utils.NewValidator())

	require.NoError(t, svc.SubmitApplication(context.Background(), validApplication()))
	svc.Close()
	assert.Len(t, store.All(), 1)
}

func TestSubmitApplication_StoreFailure(t *testing.T) {
	store := testutil.NewVolunteerStore()
	store.Err = domain.ErrStoreUnavailable
	mailer := testutil.NewMailer()
	svc := volunteer.NewVolunteerService(store, mailer, utils.NewValidator())

	err := svc.SubmitApplication(context.Background(), validApplication())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	svc.Close()
	assert.Empty(t, mailer.Sent())
}

func TestSubmitApplication_DoesNotRetainRequestMemory(t *testing.T) {
	store := testutil.NewVolunteerStore()
	mailer := testutil.NewMailer()
	svc := volunteer.NewVolunteerService(store, mailer, utils.NewValidator())

	// Fiber hands out strings backed by its request buffer.
	buf := []byte(" priya@example.com ")
	req := validApplication()
	req.Email = unsafe.String(&buf[0], len(buf))

	require.NoError(t, svc.SubmitApplication(context.Background(), req))
	copy(buf, "xxxxxxxxxxxxxxxxxxx")
	svc.Close()

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "priya@example.com", sent[0].To)
	assert.Equal(t, "priya@example.com", store.All()[0].Email)
}
