package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"provided-storefront/internal/cache"
	"provided-storefront/internal/models"
)

const (
	productKeyPrefix      = "product:"
	productListKeyPrefix  = "products:list:"
	collectionKeyPrefix   = "collections:"
	featuredCollectionKey = collectionKeyPrefix + "featured"
)

// CatalogService expone las lecturas del catálogo ya proyectadas
type CatalogService struct {
	products    ProductStore
	collections CollectionStore
	cache       *cache.Cache
	sfg         singleflight.Group
}

func NewCatalogService(products ProductStore, collections CollectionStore, c *cache.Cache) *CatalogService {
	return &CatalogService{
		products:    products,
		collections: collections,
		cache:       c,
	}
}

// ListProducts lista hasta 50 productos, filtrando por featured si viene informado
func (s *CatalogService) ListProducts(ctx context.Context, featured *bool) ([]*models.Product, error) {
	key := productListKeyPrefix + "all"
	if featured != nil {
		key = fmt.Sprintf("%sfeatured=%t", productListKeyPrefix, *featured)
	}

	v, err := s.cached(ctx, key, func(ctx context.Context) (interface{}, error) {
		docs, err := s.products.List(ctx, featured)
		if err != nil {
			return nil, err
		}

		products := make([]*models.Product, 0, len(docs))
		for _, d := range docs {
			products = append(products, d.Public())
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]*models.Product), nil
}

// GetProduct obtiene un producto por ID público
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	canonical, err := models.CanonicalID(id)
	if err != nil {
		return nil, err
	}

	v, err := s.cached(ctx, productKeyPrefix+canonical, func(ctx context.Context) (interface{}, error) {
		doc, err := s.products.FindByID(ctx, canonical)
		if err != nil {
			return nil, err
		}
		return doc.Public(), nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*models.Product), nil
}

// ListFeaturedCollections lista las colecciones destacadas
func (s *CatalogService) ListFeaturedCollections(ctx context.Context) ([]*models.Collection, error) {
	v, err := s.cached(ctx, featuredCollectionKey, func(ctx context.Context) (interface{}, error) {
		docs, err := s.collections.ListFeatured(ctx)
		if err != nil {
			return nil, err
		}

		collections := make([]*models.Collection, 0, len(docs))
		for _, d := range docs {
			collections = append(collections, d.Public())
		}
		return collections, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]*models.Collection), nil
}

// InvalidateCache descarta las lecturas del catálogo en caché (por ejemplo tras el seed)
func (s *CatalogService) InvalidateCache() {
	for _, prefix := range []string{productKeyPrefix, productListKeyPrefix, collectionKeyPrefix} {
		s.cache.DeleteByPrefix(prefix)
	}
}

// cached agrupa los misses concurrentes de una misma clave; los errores no se guardan.
// La carga compartida corre sin la cancelación de quien la inició: cada llamador
// deja de esperar con su propio ctx y el repositorio aplica su timeout.
func (s *CatalogService) cached(ctx context.Context, key string, load func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	if v, found := s.cache.GetValue(key); found {
		return v, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := s.sfg.DoChan(key, func() (interface{}, error) {
		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}
