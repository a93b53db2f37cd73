package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/qkart/backend/api/http/presenter"
	"github.com/qkart/backend/api/http/validate"
	"github.com/qkart/backend/pkg/security/token"
	"github.com/qkart/backend/pkg/user"
)

type UserHandler struct {
	users user.Directory
}

func NewUserHandler(users user.Directory) *UserHandler {
	return &UserHandler{users: users}
}

type setAddressRequest struct {
	Address string `json:"address" validate:"required,min=20"`
}

// Get returns the authenticated user's own record. With ?q=address only
// the id/email/address projection is returned.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	authed, ok := token.UserFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "please authenticate")
	}
	id, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid user id")
	}
	if id != authed.ID {
		return presenter.Error(c, http.StatusForbidden, "forbidden")
	}

	if c.Query("q") == "address" {
		view, err := h.users.AddressByID(c.Context(), id)
		if err != nil {
			return presenter.FromError(c, err)
		}
		return presenter.JSON(c, http.StatusOK, view)
	}

	return presenter.JSON(c, http.StatusOK, authed)
}

// SetAddress updates the authenticated user's shipping address.
func (h *UserHandler) SetAddress(c *fiber.Ctx) error {
	authed, ok := token.UserFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "please authenticate")
	}
	id, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid user id")
	}
	if id != authed.ID {
		return presenter.Error(c, http.StatusForbidden, "forbidden")
	}

	var req setAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validate.Struct(req); err != nil {
		return presenter.FromError(c, err)
	}

	address, err := h.users.SetAddress(c.Context(), authed, req.Address)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"address": address})
}
