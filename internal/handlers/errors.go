package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"provided-storefront/internal/models"
)

// Estructuras para respuestas
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

var statusOK = StatusResponse{Status: "ok"}

// respondError traduce los errores de dominio a códigos HTTP
func respondError(c *gin.Context, err error) {
	var vErr *models.ValidationError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: vErr.Message, Field: vErr.Field})
	case errors.Is(err, models.ErrInvalidID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid id"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, models.ErrCartConflict):
		_ = c.Error(err)
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrStoreUnavailable):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Database unavailable"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// respondBindError responde 400 con el primer campo inválido del body
func respondBindError(c *gin.Context, err error) {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	fe := vErrs[0]
	field := fe.Field()

	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", field)
	case objectIDTag:
		msg = fmt.Sprintf("%s must be a valid id", field)
	default:
		msg = fmt.Sprintf("%s is invalid", field)
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Field: field})
}
