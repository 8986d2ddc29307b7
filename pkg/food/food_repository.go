package food

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sustainbite/domain"
	"sustainbite/entities"
	"sustainbite/internal/utils/mongodb"
)

type (
	FoodRepository interface {
		AddFoodListing(ctx context.Context, listing *entities.FoodListing) error
		GetFoodListings(ctx context.Context) ([]*entities.FoodListing, error)
		GetFoodListingByID(ctx context.Context, id string) (*entities.FoodListing, error)
		// DeleteOwnedFoodListing removes the listing only if ownerID owns it and
		// returns the removed document.
		DeleteOwnedFoodListing(ctx context.Context, id, ownerID string) (*entities.FoodListing, error)
		SetFoodListingImage(ctx context.Context, id, ownerID, imageURL string) (*entities.FoodListing, error)
	}

	foodRepository struct {
		db *mongodb.Accessor
	}
)

func NewFoodRepository(db *mongodb.Accessor) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return r.db.Collection(ctx, entities.FoodListingCollection)
}

func (r *foodRepository) AddFoodListing(ctx context.Context, listing *entities.FoodListing) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.InsertOne(ctx, listing)
	if err != nil {
		return mongodb.StoreError("insert food listing", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		listing.ID = id
	}
	return nil
}

func (r *foodRepository) GetFoodListings(ctx context.Context) ([]*entities.FoodListing, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "bestBeforeDate", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mongodb.StoreError("find food listings", err)
	}

	listings := make([]*entities.FoodListing, 0)
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, mongodb.StoreError("decode food listings", err)
	}
	return listings, nil
}

func (r *foodRepository) GetFoodListingByID(ctx context.Context, id string) (*entities.FoodListing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFoodListingNotFound
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var listing entities.FoodListing
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&listing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFoodListingNotFound
		}
		return nil, mongodb.StoreError("find food listing", err)
	}
	return &listing, nil
}

func (r *foodRepository) DeleteOwnedFoodListing(ctx context.Context, id, ownerID string) (*entities.FoodListing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFoodListingNotFound
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var listing entities.FoodListing
	err = coll.FindOneAndDelete(ctx, bson.M{"_id": oid, "userId": ownerID}).Decode(&listing)
	if err == nil {
		return &listing, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, mongodb.StoreError("delete food listing", err)
	}
	return nil, r.missingOrForeign(ctx, coll, oid)
}

func (r *foodRepository) SetFoodListingImage(ctx context.Context, id, ownerID, imageURL string) (*entities.FoodListing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFoodListingNotFound
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var listing entities.FoodListing
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "userId": ownerID},
		bson.M{"$set": bson.M{"imageUrl": imageURL}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&listing)
	if err == nil {
		return &listing, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, mongodb.StoreError("update food listing image", err)
	}
	return nil, r.missingOrForeign(ctx, coll, oid)
}

// missingOrForeign runs after an owner-scoped write matched nothing and tells
// the two causes apart.
func (r *foodRepository) missingOrForeign(ctx context.Context, coll *mongo.Collection, oid primitive.ObjectID) error {
	n, err := coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return mongodb.StoreError("probe food listing", err)
	}
	if n > 0 {
		return domain.ErrFoodListingForbidden
	}
	return domain.ErrFoodListingNotFound
}
