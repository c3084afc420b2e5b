package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"provided-storefront/internal/database"
)

type DiagnoseFunc func(ctx context.Context) database.Diagnostics

type SystemHandler struct {
	diagnose DiagnoseFunc
}

func NewSystemHandler(diagnose DiagnoseFunc) *SystemHandler {
	return &SystemHandler{diagnose: diagnose}
}

// GET /
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"brand":   "Provided",
		"message": "Luxury in quiet confidence.",
	})
}

// GET /test
func (h *SystemHandler) Diagnostics(c *gin.Context) {
	c.JSON(http.StatusOK, h.diagnose(c.Request.Context()))
}
