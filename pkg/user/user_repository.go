package user

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"sustainbite/domain"
	"sustainbite/entities"
	"sustainbite/internal/utils/mongodb"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		CountUsersByEmail(ctx context.Context, email string) (int64, error)
	}

	userRepository struct {
		db *mongodb.Accessor
	}
)

func NewUserRepository(db *mongodb.Accessor) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return r.db.Collection(ctx, entities.UserCollection)
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return mongodb.StoreError("insert user", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var user entities.User
	if err := coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, mongodb.StoreError("find user", err)
	}
	return &user, nil
}

func (r *userRepository) CountUsersByEmail(ctx context.Context, email string) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}
	n, err := coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return 0, mongodb.StoreError("count users", err)
	}
	return n, nil
}
