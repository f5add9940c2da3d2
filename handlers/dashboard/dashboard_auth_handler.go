package handlers

import (
	"luax.health/configs/configslog"
	"luax.health/middlewares"
	"luax.health/pkg/flashmessages"
	"luax.health/pkg/renderer"
	"luax.health/services"
	"luax.health/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles the shared-password admin login.
type AuthHandler struct {
	auth services.IAuthService
}

func NewAuthHandler(auth services.IAuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return renderer.Render(c, "dashboard/login", "layouts/public_layout", fiber.Map{
		"Title": "Admin Login",
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if !h.auth.AuthenticateAdmin(c.FormValue("password")) {
		configslog.Log.Info("Admin login rejected", zap.String("ip", c.IP()))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid password")
		return c.Redirect(middlewares.AdminLoginPath, fiber.StatusSeeOther)
	}
	if err := utils.LoginAdmin(c, "Logged in successfully!"); err != nil {
		configslog.Log.Error("Dashboard - Login session error", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Login failed. Please try again.")
		return c.Redirect(middlewares.AdminLoginPath, fiber.StatusSeeOther)
	}
	return c.Redirect(middlewares.AdminHomePath, fiber.StatusSeeOther)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := utils.Logout(c, "Logged out successfully."); err != nil {
		configslog.Log.Warn("Dashboard - Logout session error", zap.Error(err))
	}
	return c.Redirect(middlewares.AdminLoginPath, fiber.StatusSeeOther)
}
