package volunteer

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sustainbite/entities"
	"sustainbite/internal/utils/mongodb"
)

type (
	VolunteerRepository interface {
		CreateVolunteer(ctx context.Context, volunteer *entities.Volunteer) error
	}

	volunteerRepository struct {
		db *mongodb.Accessor
	}
)

func NewVolunteerRepository(db *mongodb.Accessor) VolunteerRepository {
	return &volunteerRepository{db: db}
}

func (r *volunteerRepository) CreateVolunteer(ctx context.Context, volunteer *entities.Volunteer) error {
	coll, err := r.db.Collection(ctx, entities.VolunteerCollection)
	if err != nil {
		return err
	}

	res, err := coll.InsertOne(ctx, volunteer)
	if err != nil {
		return mongodb.StoreError("insert volunteer", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		volunteer.ID = id
	}
	return nil
}
