package service

import (
	"context"

	"provided-storefront/internal/models"
)

// Las interfaces las define el consumidor; las implementa internal/repository

type ProductStore interface {
	List(ctx context.Context, featured *bool) ([]*models.ProductDocument, error)
	FindByID(ctx context.Context, id string) (*models.ProductDocument, error)
}

type CollectionStore interface {
	ListFeatured(ctx context.Context) ([]*models.CollectionDocument, error)
}

type CartStore interface {
	FindBySession(ctx context.Context, sessionID string) (*models.CartDocument, error)
	Create(ctx context.Context, cart *models.CartDocument) error
	ReplaceItems(ctx context.Context, cart *models.CartDocument, items []models.CartItem) error
}
