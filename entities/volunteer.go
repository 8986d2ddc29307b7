package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const VolunteerCollection = "volunteers"

type Volunteer struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	Availability string             `bson:"availability" json:"availability"` // weekends, weekdays, evenings, flexible
	Interests    []string           `bson:"interests" json:"interests"`
	Message      string             `bson:"message" json:"message"`
	Experience   string             `bson:"experience" json:"experience"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
