package testutil

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sustainbite/domain"
	"sustainbite/entities"
)

// UserStore is an in-memory user repository that enforces the unique email
// index the way the Mongo collection does.
type UserStore struct {
	mu    sync.Mutex
	users []entities.User
	Err   error
}

func NewUserStore() *UserStore {
	return &UserStore{}
}

func (s *UserStore) CreateUser(_ context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	s.users = append(s.users, *user)
	return nil
}

func (s *UserStore) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *UserStore) CountUsersByEmail(_ context.Context, email string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	var n int64
	for _, u := range s.users {
		if u.Email == email {
			n++
		}
	}
	return n, nil
}

// FoodStore is an in-memory food listing repository.
type FoodStore struct {
	mu       sync.Mutex
	listings map[primitive.ObjectID]entities.FoodListing
	Err      error
}

func NewFoodStore() *FoodStore {
	return &FoodStore{listings: make(map[primitive.ObjectID]entities.FoodListing)}
}

func (s *FoodStore) AddFoodListing(_ context.Context, listing *entities.FoodListing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	listing.ID = primitive.NewObjectID()
	s.listings[listing.ID] = *listing
	return nil
}

func (s *FoodStore) GetFoodListings(_ context.Context) ([]*entities.FoodListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*entities.FoodListing, 0, len(s.listings))
	for _, l := range s.listings {
		listing := l
		out = append(out, &listing)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BestBeforeDate.Equal(out[j].BestBeforeDate) {
			return out[i].ID.Hex() < out[j].ID.Hex()
		}
		return out[i].BestBeforeDate.Before(out[j].BestBeforeDate)
	})
	return out, nil
}

func (s *FoodStore) GetFoodListingByID(_ context.Context, id string) (*entities.FoodListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFoodListingNotFound
	}
	l, ok := s.listings[oid]
	if !ok {
		return nil, domain.ErrFoodListingNotFound
	}
	return &l, nil
}

func (s *FoodStore) DeleteOwnedFoodListing(_ context.Context, id, ownerID string) (*entities.FoodListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFoodListingNotFound
	}
	l, ok := s.listings[oid]
	if !ok {
		return nil, domain.ErrFoodListingNotFound
	}
	if l.OwnerID != ownerID {
		return nil, domain.ErrFoodListingForbidden
	}
	delete(s.listings, oid)
	return &l, nil
}

func (s *FoodStore) SetFoodListingImage(_ context.Context, id, ownerID, imageURL string) (*entities.FoodListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFoodListingNotFound
	}
	l, ok := s.listings[oid]
	if !ok {
		return nil, domain.ErrFoodListingNotFound
	}
	if l.OwnerID != ownerID {
		return nil, domain.ErrFoodListingForbidden
	}
	l.ImageURL = imageURL
	s.listings[oid] = l
	return &l, nil
}

// Len reports how many listings are stored.
func (s *FoodStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listings)
}

// VolunteerStore is an in-memory volunteer repository.
type VolunteerStore struct {
	mu         sync.Mutex
	volunteers []entities.Volunteer
	Err        error
}

func NewVolunteerStore() *VolunteerStore {
	return &VolunteerStore{}
}

func (s *VolunteerStore) CreateVolunteer(_ context.Context, volunteer *entities.Volunteer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	volunteer.ID = primitive.NewObjectID()
	s.volunteers = append(s.volunteers, *volunteer)
	return nil
}

func (s *VolunteerStore) All() []entities.Volunteer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.Volunteer(nil), s.volunteers...)
}
