package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Nombres de las colecciones de Mongo
const (
	ProductCollection    = "product"
	CollectionCollection = "collections"
	CartCollection       = "cart"
)

// Connect abre el cliente de Mongo y verifica la conexión con un ping
func Connect(ctx context.Context, uri, database string) (*mongo.Database, error) {
	if uri == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to MongoDB")
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "failed to ping MongoDB")
	}

	return client.Database(database), nil
}

// Disconnect cierra el cliente; acepta db nil
func Disconnect(ctx context.Context, db *mongo.Database) error {
	if db == nil {
		return nil
	}
	return db.Client().Disconnect(ctx)
}

// EnsureIndexes crea los índices que sostienen los invariantes del store:
// un carrito por session_id, slug único por colección y expiración de carritos.
func EnsureIndexes(ctx context.Context, db *mongo.Database, cartTTL time.Duration) error {
	cartIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if cartTTL > 0 {
		cartIndexes = append(cartIndexes, mongo.IndexModel{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(cartTTL.Seconds())),
		})
	}

	if _, err := db.Collection(CartCollection).Indexes().CreateMany(ctx, cartIndexes); err != nil {
		return errors.Wrap(err, "failed to create cart indexes")
	}

	_, err := db.Collection(CollectionCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "featured", Value: 1}},
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to create collection indexes")
	}

	_, err = db.Collection(ProductCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "featured", Value: 1}},
	})
	if err != nil {
		return errors.Wrap(err, "failed to create product indexes")
	}

	return nil
}
