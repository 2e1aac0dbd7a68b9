package repository

import (
	"doitto/config"
	"doitto/models"

	"cloud.google.com/go/firestore"
	"go.mongodb.org/mongo-driver/mongo"
)

// Gateway bundles the typed stores for every logical collection. One Gateway
// is built per process and passed to each service.
type Gateway struct {
	Helpers     Store[models.Helper]
	CardHolders Store[models.CardHolder]
	Users       Store[models.UserProfile]
	Categories  Store[models.ServiceCategory]
}

// NewFirestoreGateway returns a Gateway over Firestore collections.
func NewFirestoreGateway(client *firestore.Client) *Gateway {
	return &Gateway{
		Helpers:     NewFirestoreStore[models.Helper](client, config.HelpersCollection),
		CardHolders: NewFirestoreStore[models.CardHolder](client, config.CardHoldersCollection),
		Users:       NewFirestoreStore[models.UserProfile](client, config.UsersCollection),
		Categories:  NewFirestoreStore[models.ServiceCategory](client, config.CategoriesCollection),
	}
}

// NewMongoGateway returns a Gateway over collections of a Mongo database.
func NewMongoGateway(db *mongo.Database) *Gateway {
	return &Gateway{
		Helpers:     NewMongoStore[models.Helper](db, config.HelpersCollection),
		CardHolders: NewMongoStore[models.CardHolder](db, config.CardHoldersCollection),
		Users:       NewMongoStore[models.UserProfile](db, config.UsersCollection),
		Categories:  NewMongoStore[models.ServiceCategory](db, config.CategoriesCollection),
	}
}

// NewMemoryGateway returns a Gateway held entirely in process.
func NewMemoryGateway() *Gateway {
	return &Gateway{
		Helpers:     NewMemoryStore[models.Helper](),
		CardHolders: NewMemoryStore[models.CardHolder](),
		Users:       NewMemoryStore[models.UserProfile](),
		Categories:  NewMemoryStore[models.ServiceCategory](),
	}
}
