package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/qkart/backend/api/http/presenter"
	"github.com/qkart/backend/api/http/validate"
	"github.com/qkart/backend/pkg/auth"
	"github.com/qkart/backend/pkg/user"
)

type AuthHandler struct {
	useCase auth.UseCase
}

func NewAuthHandler(useCase auth.UseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles user registration.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validate.Struct(req); err != nil {
		return presenter.FromError(c, err)
	}

	result, err := h.useCase.Register(c.Context(), user.CreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return presenter.FromError(c, err)
	}

	return presenter.JSON(c, http.StatusCreated, authResponse(result))
}

// Login handles user login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validate.Struct(req); err != nil {
		return presenter.FromError(c, err)
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return presenter.FromError(c, err)
	}

	return presenter.JSON(c, http.StatusOK, authResponse(result))
}

func authResponse(r auth.Result) fiber.Map {
	return fiber.Map{
		"user": r.User,
		"tokens": fiber.Map{
			"access": r.Access,
		},
	}
}
