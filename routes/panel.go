package routes

import (
	handlers "luax.health/handlers/panel"
	"luax.health/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes registers the patient portal; logged-in patients only.
func registerPanelRoutes(app *fiber.App, deps Dependencies) {
	appointmentHandler := handlers.NewAppointmentHandler(deps.Appointments)

	panel := app.Group("/patients")
	panel.Get("/dashboard", middlewares.RequirePatient, appointmentHandler.Dashboard)
	panel.Post("/dashboard", middlewares.RequirePatient, appointmentHandler.Book)
	panel.Post("/cancel_appointment/:id", middlewares.RequirePatient, appointmentHandler.Cancel)
}
