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

type CollectionRepository struct {
	collection *mongo.Collection
}

func NewCollectionRepository(db *mongo.Database) *CollectionRepository {
	r := &CollectionRepository{}
	if db != nil {
		r.collection = db.Collection(database.CollectionCollection)
	}
	return r
}

// ListFeatured lista las colecciones marcadas como destacadas
func (r *CollectionRepository) ListFeatured(ctx context.Context) ([]*models.CollectionDocument, error) {
	if r.collection == nil {
		return nil, models.ErrStoreUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"featured": true})
	if err != nil {
		return nil, translate(err, "failed to list collections")
	}
	defer cursor.Close(ctx)

	collections := make([]*models.CollectionDocument, 0)
	if err := cursor.All(ctx, &collections); err != nil {
		return nil, translate(err, "failed to decode collections")
	}

	return collections, nil
}

func (r *CollectionRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if r.collection == nil {
		return false, models.ErrStoreUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	n, err := r.collection.CountDocuments(ctx, bson.M{"slug": slug})
	if err != nil {
		return false, translate(err, "failed to count collections")
	}
	return n > 0, nil
}

func (r *CollectionRepository) Insert(ctx context.Context, c *models.CollectionDocument) error {
	if r.collection == nil {
		return models.ErrStoreUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, c)
	return translate(err, "failed to insert collection")
}
