package middlewares

import (
	"context"

	"luax.health/configs/configslog"
	"luax.health/pkg/flashmessages"
	"luax.health/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	PatientLoginPath = "/patients/login"
	PatientHomePath  = "/patients/dashboard"
	AdminLoginPath   = "/admin/login"
	AdminHomePath    = "/admin/"
)

// RequirePatient lets only logged-in patients through.
func RequirePatient(c *fiber.Ctx) error {
	if CurrentPrincipal(c).IsPatient() {
		return c.Next()
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Please log in to continue.")
	return c.Redirect(PatientLoginPath, fiber.StatusSeeOther)
}

// RequireAdmin lets only admin sessions through.
func RequireAdmin(c *fiber.Ctx) error {
	if CurrentPrincipal(c).IsAdmin() {
		return c.Next()
	}
	configslog.Log.Info("Admin area access denied", zap.String("path", c.Path()), zap.String("ip", c.IP()))
	return c.Redirect(AdminLoginPath, fiber.StatusSeeOther)
}

// GuestOnly sends principals of kind already logged in to their home page.
func GuestOnly(kind PrincipalKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentPrincipal(c).Kind != kind {
			return c.Next()
		}
		if kind == AdminPrincipal {
			return c.Redirect(AdminHomePath, fiber.StatusSeeOther)
		}
		return c.Redirect(PatientHomePath, fiber.StatusSeeOther)
	}
}

// UnreadCounter is satisfied by the appointment service.
type UnreadCounter interface {
	CountUnread(ctx context.Context) (int64, error)
}

// UnreadBadge stores the unread appointment count for admin pages. It runs
// one query per request and never blocks the page on failure.
func UnreadBadge(counter UnreadCounter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentPrincipal(c).IsAdmin() {
			return c.Next()
		}
		count, err := counter.CountUnread(c.UserContext())
		if err != nil {
			configslog.Log.Warn("Unread count failed", zap.Error(err))
			count = 0
		}
		c.Locals(utils.LocalsUnreadCount, count)
		return c.Next()
	}
}
