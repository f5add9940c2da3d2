package routes

import (
	handlers "luax.health/handlers/public"

	"github.com/gofiber/fiber/v2"
)

func registerPublicRoutes(app *fiber.App, deps Dependencies) {
	h := handlers.NewPublicHandler(deps.Appointments)

	app.Get("/", h.ShowBookingForm)
	app.Post("/", h.Book)
	app.Get("/success", h.Success)
	app.Get("/check_status", h.CheckStatus)
	app.Post("/check_status", h.CheckStatus)
	app.Get("/health", h.Health)
}
