// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/app/store/oauthstate"
)

// DBDeps holds backend dependencies for the app. MongoClient and
// MongoDatabase stay nil on the memory backend; everything downstream
// goes through Stores.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Stores store.Stores
	States oauthstate.States
}
