package routes

import (
	handlers "luax.health/handlers/dashboard"
	"luax.health/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes registers the admin console; admin sessions only.
func registerDashboardRoutes(app *fiber.App, deps Dependencies) {
	appointmentHandler := handlers.NewAppointmentHandler(deps.Appointments, deps.Export)
	patientHandler := handlers.NewPatientHandler(deps.Patients, deps.Export)

	guard := []fiber.Handler{
		middlewares.RequireAdmin,
		middlewares.UnreadBadge(deps.Appointments),
	}
	with := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, guard...), h)
	}

	admin := app.Group("/admin")
	admin.Get("/", with(appointmentHandler.ListAppointments)...)
	admin.Post("/appointment/:id/update_status", with(appointmentHandler.UpdateStatus)...)
	admin.Post("/appointment/:id/delete", with(appointmentHandler.DeleteAppointment)...)
	admin.Get("/appointments/export", with(appointmentHandler.ExportAppointments)...)

	admin.Get("/patients", with(patientHandler.ListPatients)...)
	admin.Post("/patient/:nrc/delete", with(patientHandler.DeletePatient)...)
	admin.Get("/patients/export", with(patientHandler.ExportPatients)...)
}
