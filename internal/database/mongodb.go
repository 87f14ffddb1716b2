package database

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// MongodbDB wraps the application database handle so repositories
// depend on one injected type instead of the raw driver client.
type MongodbDB struct {
	DB *mongo.Database
}
