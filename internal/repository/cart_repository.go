package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"provided-storefront/internal/database"
	"provided-storefront/internal/models"
)

type CartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	r := &CartRepository{}
	if db != nil {
		r.collection = db.Collection(database.CartCollection)
	}
	return r
}

// FindBySession devuelve el carrito de la sesión o models.ErrNotFound
func (r *CartRepository) FindBySession(ctx context.Context, sessionID string) (*models.CartDocument, error) {
	if r.collection == nil {
		return nil, models.ErrStoreUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var cart models.CartDocument
	if err := r.collection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&cart); err != nil {
		return nil, translate(err, "failed to get cart")
	}

	return &cart, nil
}

// Create inserta un carrito nuevo con versión 1.
// Devuelve ErrCartExists si el índice único de session_id lo rechaza.
func (r *CartRepository) Create(ctx context.Context, cart *models.CartDocument) error {
	if r.collection == nil {
		return models.ErrStoreUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	if !cart.Currency.Valid() {
		cart.Currency = models.DefaultCurrency
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	cart.Version = 1
	cart.CreatedAt = now
	cart.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, cart)
	if mongo.IsDuplicateKeyError(err) {
		return ErrCartExists
	}
	return translate(err, "failed to create cart")
}

// ReplaceItems reemplaza el arreglo de líneas completo solo si la versión
// leída sigue vigente; si otro escritor ganó devuelve ErrVersionConflict.
func (r *CartRepository) ReplaceItems(ctx context.Context, cart *models.CartDocument, items []models.CartItem) error {
	if r.collection == nil {
		return models.ErrStoreUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if items == nil {
		items = []models.CartItem{}
	}

	filter := bson.M{"_id": cart.ID, "version": versionFilter(cart.Version)}
	update := bson.M{
		"$set": bson.M{
			"items":      items,
			"updated_at": time.Now().UTC(),
		},
		"$inc": bson.M{"version": 1},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return translate(err, "failed to update cart")
	}

	if result.MatchedCount == 0 {
		return ErrVersionConflict
	}

	cart.Items = items
	cart.Version++
	return nil
}

// versionFilter: los carritos creados antes del control de versión no tienen el campo
func versionFilter(version int64) interface{} {
	if version == 0 {
		return bson.M{"$in": bson.A{0, nil}}
	}
	return version
}
