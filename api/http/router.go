package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qkart/backend/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app. authMW guards every
// route that needs a resolved user.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	users *handlers.UserHandler,
	products *handlers.ProductHandler,
	carts *handlers.CartHandler,
	health *handlers.HealthHandler,
	authMW fiber.Handler,
) {
	v1 := app.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)

	p := v1.Group("/products")
	p.Get("/", products.List)
	p.Get("/:productId", products.GetByID)

	u := v1.Group("/users", authMW)
	u.Get("/:userId", users.Get)
	u.Put("/:userId", users.SetAddress)

	crt := v1.Group("/cart", authMW)
	crt.Get("/", carts.Get)
	crt.Post("/", carts.AddItem)
	crt.Put("/checkout", carts.Checkout)
	crt.Put("/", carts.UpdateItem)
	crt.Delete("/:productId", carts.RemoveItem)
}
