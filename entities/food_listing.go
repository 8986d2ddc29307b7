package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const FoodListingCollection = "leftover_food"

type FoodListing struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Description    string             `bson:"description" json:"description"`
	Quantity       float64            `bson:"quantity" json:"quantity"`
	BestBeforeDate time.Time          `bson:"bestBeforeDate" json:"bestBeforeDate"` // 00:00 UTC of the calendar day
	Location       string             `bson:"location" json:"location"`
	Contact        string             `bson:"contact" json:"contact"`
	OwnerID        string             `bson:"userId" json:"ownerId"`
	ImageURL       string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
