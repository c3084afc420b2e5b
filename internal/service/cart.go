package service

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"provided-storefront/internal/models"
	"provided-storefront/internal/repository"
)

// Intentos de lectura-modificación-escritura antes de rendirse ante escritores concurrentes
const maxCartWriteAttempts = 5

// CartService implementa el carrito por sesión. Cada escritura es un
// compare-and-swap sobre la versión del documento, así dos requests
// concurrentes de la misma sesión nunca pierden la línea del otro.
type CartService struct {
	store  CartStore
	logger log.FieldLogger
}

func NewCartService(store CartStore, logger log.FieldLogger) *CartService {
	return &CartService{
		store:  store,
		logger: logger.WithField("component", "cart"),
	}
}

// GetCart devuelve el carrito de la sesión; si no existe devuelve uno vacío
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*models.CartView, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}

	cart, err := s.store.FindBySession(ctx, sessionID)
	if errors.Is(err, models.ErrNotFound) {
		return models.EmptyCartView(), nil
	}
	if err != nil {
		return nil, err
	}

	return cart.Public(), nil
}

// AddItem agrega o fusiona una línea en el carrito de la sesión
func (s *CartService) AddItem(ctx context.Context, sessionID string, item models.CartItem) error {
	if err := validateSession(sessionID); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}

	// Validate ya garantizó un ID bien formado
	item.ProductID, _ = models.CanonicalID(item.ProductID)

	for attempt := 1; attempt <= maxCartWriteAttempts; attempt++ {
		cart, err := s.store.FindBySession(ctx, sessionID)
		if errors.Is(err, models.ErrNotFound) {
			err = s.store.Create(ctx, &models.CartDocument{
				SessionID: sessionID,
				Currency:  models.DefaultCurrency,
				Items:     []models.CartItem{item},
			})
			if errors.Is(err, repository.ErrCartExists) {
				s.logConflict(sessionID, attempt, err)
				continue
			}
			return err
		}
		if err != nil {
			return err
		}

		items, _ := models.MergeItem(cart.Items, item)
		err = s.store.ReplaceItems(ctx, cart, items)
		if errors.Is(err, repository.ErrVersionConflict) {
			s.logConflict(sessionID, attempt, err)
			continue
		}
		return err
	}

	return models.ErrCartConflict
}

// RemoveItem quita la línea (product_id, variant); sin carrito no hace nada
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID string, variant *string) error {
	if err := validateSession(sessionID); err != nil {
		return err
	}

	canonical, err := models.CanonicalID(productID)
	if err != nil {
		return &models.ValidationError{Field: "product_id", Message: "product_id must be a valid id"}
	}

	for attempt := 1; attempt <= maxCartWriteAttempts; attempt++ {
		cart, err := s.store.FindBySession(ctx, sessionID)
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		err = s.store.ReplaceItems(ctx, cart, models.RemoveItem(cart.Items, canonical, variant))
		if errors.Is(err, repository.ErrVersionConflict) {
			s.logConflict(sessionID, attempt, err)
			continue
		}
		return err
	}

	return models.ErrCartConflict
}

func (s *CartService) logConflict(sessionID string, attempt int, err error) {
	s.logger.WithFields(log.Fields{
		"session_id": sessionID,
		"attempt":    attempt,
	}).WithError(err).Debug("concurrent cart write, retrying")
}

func validateSession(sessionID string) error {
	if sessionID == "" {
		return &models.ValidationError{Field: "session_id", Message: "session_id is required"}
	}
	return nil
}
