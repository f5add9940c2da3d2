package routes

import (
	dashboard_handlers "luax.health/handlers/dashboard"
	panel_handlers "luax.health/handlers/panel"
	"luax.health/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerAuthRoutes wires login, registration and logout for both roles.
// Guards are per route: /patients and /admin mix guest and protected pages.
func registerAuthRoutes(app *fiber.App, deps Dependencies) {
	patientAuth := panel_handlers.NewPatientAuthHandler(deps.Auth)
	adminAuth := dashboard_handlers.NewAuthHandler(deps.Auth)

	patientGuest := middlewares.GuestOnly(middlewares.PatientPrincipal)
	patients := app.Group("/patients")
	patients.Get("/register", patientGuest, patientAuth.ShowRegister)
	patients.Post("/register", patientGuest, patientAuth.Register)
	patients.Get("/login", patientGuest, patientAuth.ShowLogin)
	patients.Post("/login", patientGuest, patientAuth.Login)
	patients.Get("/logout", patientAuth.Logout)

	adminGuest := middlewares.GuestOnly(middlewares.AdminPrincipal)
	admin := app.Group("/admin")
	admin.Get("/login", adminGuest, adminAuth.ShowLogin)
	admin.Post("/login", adminGuest, adminAuth.Login)
	admin.Get("/logout", adminAuth.Logout)
}
