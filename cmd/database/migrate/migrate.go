package migration

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sustainbite/entities"
	"sustainbite/internal/utils/mongodb"
)

// Indexes lists the indexes each collection needs. The unique email index is
// what makes concurrent registrations with the same address fail.
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		entities.UserCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("email_unique").SetUnique(true),
			},
		},
		entities.FoodListingCollection: {
			{
				Keys:    bson.D{{Key: "userId", Value: 1}},
				Options: options.Index().SetName("owner"),
			},
			{
				Keys:    bson.D{{Key: "bestBeforeDate", Value: 1}},
				Options: options.Index().SetName("best_before"),
			},
		},
		entities.VolunteerCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("email"),
			},
		},
	}
}

// Migrate connects through db and ensures the indexes.
func Migrate(ctx context.Context, db *mongodb.Accessor) error {
	database, err := db.Database(ctx)
	if err != nil {
		return err
	}
	if err := EnsureIndexes(ctx, database); err != nil {
		return err
	}

	log.Info("Database migration complete")
	return nil
}

// EnsureIndexes creates any missing index. It has the ConnectHook signature
// so serve can run it on every fresh connection.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	for name, models := range Indexes() {
		created, err := database.Collection(name).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("error migrating %s indexes: %w", name, err)
		}
		log.Infof("ensured indexes on %s: %v", name, created)
	}
	return nil
}
