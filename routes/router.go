package routes

import (
	"luax.health/configs"
	"luax.health/middlewares"
	"luax.health/services"
	"luax.health/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

// Dependencies are the services and settings the HTTP layer is built from.
type Dependencies struct {
	Config       *configs.Config
	Clinic       *configs.Clinic
	Sessions     *session.Store
	Auth         services.IAuthService
	Appointments services.IAppointmentService
	Patients     services.IPatientService
	Export       services.IExportService
}

// SetupRoutes registers the shared middleware chain and every route group.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	app.Use(recoverMiddleware.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key:    deps.Config.CookieEncryptionKey(),
		Except: []string{configs.CSRFCookieName},
	}))
	if deps.Config.CSRFEnabled {
		app.Use(configs.SetupCSRF(deps.Config))
	}
	app.Use(initializeSessionAndLocals(deps.Sessions, deps.Clinic))
	app.Use(middlewares.Identify)

	registerPublicRoutes(app, deps)
	registerAuthRoutes(app, deps)
	registerPanelRoutes(app, deps)
	registerDashboardRoutes(app, deps)

	app.Use(notFoundHandler)
}

func initializeSessionAndLocals(store *session.Store, clinic *configs.Clinic) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(utils.LocalsSessionStore, store)
		c.Locals(utils.LocalsClinic, clinic)
		return c.Next()
	}
}

func notFoundHandler(c *fiber.Ctx) error {
	switch c.Accepts("text/html", "application/json") {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
			"Title":  "Page Not Found",
			"Clinic": c.Locals(utils.LocalsClinic),
		}, "layouts/error_layout")
	}
}
