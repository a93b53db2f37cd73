package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/qkart/backend/api/http/presenter"
	"github.com/qkart/backend/pkg/product"
)

type ProductHandler struct {
	catalog product.Catalog
}

func NewProductHandler(catalog product.Catalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List returns the whole catalog.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.catalog.List(c.Context())
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, products)
}

// GetByID returns a single product.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid product id")
	}
	p, err := h.catalog.GetByID(c.Context(), id)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}
