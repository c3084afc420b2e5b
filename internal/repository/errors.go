package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"

	"provided-storefront/internal/models"
)

var (
	// ErrCartExists: otra request creó el carrito de la sesión primero
	ErrCartExists = errors.New("cart already exists for session")
	// ErrVersionConflict: el carrito cambió entre la lectura y la escritura
	ErrVersionConflict = errors.New("cart version conflict")
)

// translate convierte errores del driver a la taxonomía del dominio
func translate(err error, op string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.ErrNotFound
	case errors.Is(err, mongo.ErrClientDisconnected),
		errors.Is(err, context.Canceled),
		mongo.IsNetworkError(err),
		mongo.IsTimeout(err):
		return errors.Wrapf(models.ErrStoreUnavailable, "%s: %v", op, err)
	}

	return errors.Wrap(err, op)
}
