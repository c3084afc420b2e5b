package seed

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"provided-storefront/internal/models"
)

// FeaturedCollectionSlug identifica la colección demo
const FeaturedCollectionSlug = "aw-collection"

type ProductStore interface {
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, products []*models.ProductDocument) error
	FeaturedIDs(ctx context.Context) ([]string, error)
}

type CollectionStore interface {
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Insert(ctx context.Context, c *models.CollectionDocument) error
}

// Seeder carga el catálogo demo cuando el store está vacío
type Seeder struct {
	products    ProductStore
	collections CollectionStore
	logger      log.FieldLogger

	// OnChange se llama si se insertó algo (p. ej. para invalidar cachés)
	OnChange func()
}

func NewSeeder(products ProductStore, collections CollectionStore, logger log.FieldLogger) *Seeder {
	return &Seeder{
		products:    products,
		collections: collections,
		logger:      logger.WithField("component", "seed"),
	}
}

// Run es idempotente: cada paso se protege con una verificación de existencia
func (s *Seeder) Run(ctx context.Context) error {
	changed := false
	defer func() {
		if changed && s.OnChange != nil {
			s.OnChange()
		}
	}()

	count, err := s.products.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "count products")
	}

	if count == 0 {
		products := demoProducts()
		if err := s.products.InsertMany(ctx, products); err != nil {
			return errors.Wrap(err, "insert demo products")
		}
		changed = true
		s.logger.WithField("products", len(products)).Info("🌱 Demo products inserted")
	}

	exists, err := s.collections.ExistsBySlug(ctx, FeaturedCollectionSlug)
	if err != nil {
		return errors.Wrap(err, "check demo collection")
	}
	if exists {
		return nil
	}

	ids, err := s.products.FeaturedIDs(ctx)
	if err != nil {
		return errors.Wrap(err, "list featured products")
	}

	collection := demoCollection(ids)
	if err := s.collections.Insert(ctx, collection); err != nil {
		return errors.Wrap(err, "insert demo collection")
	}
	changed = true
	s.logger.WithField("slug", collection.Slug).Info("🌱 Demo collection inserted")

	return nil
}

// RunBestEffort nunca impide el arranque: cualquier error queda en una línea de log
func (s *Seeder) RunBestEffort(ctx context.Context) {
	if err := s.Run(ctx); err != nil {
		s.logger.WithError(err).Warn("⚠️ Demo data seeding skipped")
	}
}
