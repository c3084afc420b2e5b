package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"provided-storefront/internal/database"
	"provided-storefront/internal/models"
)

// ProductListLimit es el tope fijo de documentos por listado
const ProductListLimit = 50

type ProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository acepta db nil: todas las operaciones devuelven ErrStoreUnavailable
func NewProductRepository(db *mongo.Database) *ProductRepository {
	r := &ProductRepository{}
	if db != nil {
		r.collection = db.Collection(database.ProductCollection)
	}
	return r
}

// List lista productos, filtrando por featured si viene informado
func (r *ProductRepository) List(ctx context.Context, featured *bool) ([]*models.ProductDocument, error) {
	if r.collection == nil {
		return nil, models.ErrStoreUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if featured != nil {
		filter["featured"] = *featured
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetLimit(ProductListLimit))
	if err != nil {
		return nil, translate(err, "failed to list products")
	}
	defer cursor.Close(ctx)

	products := make([]*models.ProductDocument, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, translate(err, "failed to decode products")
	}

	return products, nil
}

// FindByID obtiene un producto por ID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.ProductDocument, error) {
	objID, err := models.DecodeID(id)
	if err != nil {
		return nil, err
	}

	if r.collection == nil {
		return nil, models.ErrStoreUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var product models.ProductDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		return nil, translate(err, "failed to find product")
	}

	return &product, nil
}

// Count cuenta todos los productos
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	if r.collection == nil {
		return 0, models.ErrStoreUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	n, err := r.collection.CountDocuments(ctx, bson.M{})
	return n, translate(err, "failed to count products")
}

// InsertMany inserta productos nuevos y les asigna su ID
func (r *ProductRepository) InsertMany(ctx context.Context, products []*models.ProductDocument) error {
	if r.collection == nil {
		return models.ErrStoreUnavailable
	}
	if len(products) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, len(products))
	for i, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		docs[i] = p
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return translate(err, "failed to insert products")
}

// FeaturedIDs devuelve los IDs públicos de los productos destacados
func (r *ProductRepository) FeaturedIDs(ctx context.Context) ([]string, error) {
	if r.collection == nil {
		return nil, models.ErrStoreUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"featured": true}, opts)
	if err != nil {
		return nil, translate(err, "failed to list featured products")
	}
	defer cursor.Close(ctx)

	ids := make([]string, 0)
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, translate(err, "failed to decode product id")
		}
		ids = append(ids, models.EncodeID(doc.ID))
	}

	return ids, translate(cursor.Err(), "failed to iterate featured products")
}
