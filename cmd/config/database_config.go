package config

import (
	"time"

	"sustainbite/internal/utils"
	"sustainbite/internal/utils/mongodb"
)

// ConnectDB builds the shared document store accessor. No connection is made
// until the first request needs one.
func ConnectDB() (*mongodb.Accessor, error) {
	return mongodb.NewAccessor(mongodb.Config{
		URI:            utils.GetConfig("MONGODB_URI"),
		Database:       utils.GetConfig("MONGODB_DATABASE"),
		ConnectTimeout: time.Duration(utils.GetConfigInt("MONGODB_CONNECT_TIMEOUT")) * time.Second,
	})
}
