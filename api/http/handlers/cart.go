package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/qkart/backend/api/http/presenter"
	"github.com/qkart/backend/api/http/validate"
	"github.com/qkart/backend/pkg/apperr"
	"github.com/qkart/backend/pkg/cart"
	"github.com/qkart/backend/pkg/security/token"
)

var errInvalidBody = apperr.InvalidArgument("invalid JSON payload")

type CartHandler struct {
	engine cart.Engine
}

func NewCartHandler(engine cart.Engine) *CartHandler {
	return &CartHandler{engine: engine}
}

type cartItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// Get returns the authenticated user's cart.
func (h *CartHandler) Get(c *fiber.Ctx) error {
	u, ok := token.UserFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "please authenticate")
	}
	crt, err := h.engine.Get(c.Context(), u)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, crt)
}

// AddItem adds a product to the cart, creating the cart if needed.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	u, ok := token.UserFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "please authenticate")
	}
	req, productID, err := h.parseItem(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	crt, err := h.engine.AddItem(c.Context(), u, productID, req.Quantity)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, crt)
}

// UpdateItem changes the quantity of a product already in the cart.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	u, ok := token.UserFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "please authenticate")
	}
	req, productID, err := h.parseItem(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	crt, err := h.engine.UpdateItem(c.Context(), u, productID, req.Quantity)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, crt)
}

// RemoveItem deletes a product from the cart.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	u, ok := token.UserFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "please authenticate")
	}
	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid product id")
	}
	crt, err := h.engine.RemoveItem(c.Context(), u, productID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, crt)
}

// Checkout settles the cart against the user's wallet.
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	u, ok := token.UserFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "please authenticate")
	}
	if err := h.engine.Checkout(c.Context(), u); err != nil {
		return presenter.FromError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *CartHandler) parseItem(c *fiber.Ctx) (cartItemRequest, uuid.UUID, error) {
	var req cartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return req, uuid.Nil, errInvalidBody
	}
	if err := validate.Struct(req); err != nil {
		return req, uuid.Nil, err
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return req, uuid.Nil, errInvalidBody
	}
	return req, productID, nil
}
