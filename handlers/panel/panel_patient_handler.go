package handlers

import (
	"errors"

	"luax.health/configs/configslog"
	"luax.health/middlewares"
	"luax.health/pkg/flashmessages"
	"luax.health/pkg/renderer"
	"luax.health/services"
	"luax.health/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PatientAuthHandler handles patient registration, login and logout.
type PatientAuthHandler struct {
	auth services.IAuthService
}

func NewPatientAuthHandler(auth services.IAuthService) *PatientAuthHandler {
	return &PatientAuthHandler{auth: auth}
}

func (h *PatientAuthHandler) ShowRegister(c *fiber.Ctx) error {
	return renderer.Render(c, "panel/register", "layouts/public_layout", fiber.Map{
		"Title":    "Patient Registration",
		"FormData": flashmessages.GetFlashFormData(c),
	})
}

func (h *PatientAuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid form data.")
		return c.Redirect("/patients/register", fiber.StatusSeeOther)
	}

	if _, err := h.auth.Register(c.UserContext(), input); err != nil {
		var de *services.DomainError
		if !errors.As(err, &de) {
			configslog.Log.Error("Panel - Register Error", zap.String("nrc", input.NRC), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey,
			services.UserMessage(err, "Registration failed. Please try again."))
		_ = flashmessages.SetFlashFormData(c, input)
		return c.Redirect("/patients/register", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Account created successfully! Please login.")
	return c.Redirect(middlewares.PatientLoginPath, fiber.StatusSeeOther)
}

func (h *PatientAuthHandler) ShowLogin(c *fiber.Ctx) error {
	return renderer.Render(c, "panel/login", "layouts/public_layout", fiber.Map{
		"Title": "Patient Login",
	})
}

func (h *PatientAuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	patient, err := h.auth.Authenticate(c.UserContext(), email, c.FormValue("password"))
	if err != nil {
		if !errors.Is(err, services.ErrAuthentication) && !errors.Is(err, services.ErrNotFound) {
			configslog.Log.Error("Panel - Login Error", zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, services.UserMessage(err, "Login failed."))
		return c.Redirect(middlewares.PatientLoginPath, fiber.StatusSeeOther)
	}

	if err := utils.LoginPatient(c, patient.NRC, patient.Name, "Welcome, "+patient.Name+"!"); err != nil {
		configslog.Log.Error("Panel - Login session error", zap.String("nrc", patient.NRC), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Login failed. Please try again.")
		return c.Redirect(middlewares.PatientLoginPath, fiber.StatusSeeOther)
	}
	return c.Redirect(middlewares.PatientHomePath, fiber.StatusSeeOther)
}

func (h *PatientAuthHandler) Logout(c *fiber.Ctx) error {
	if err := utils.Logout(c, "Logged out successfully."); err != nil {
		configslog.Log.Warn("Panel - Logout session error", zap.Error(err))
	}
	return c.Redirect(middlewares.PatientLoginPath, fiber.StatusSeeOther)
}
