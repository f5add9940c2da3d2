package renderer

import (
	"net/http"

	"luax.health/configs"
	"luax.health/configs/configslog"
	"luax.health/pkg/flashmessages"
	"luax.health/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Template keys for flash messages.
const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
)

// SetFlashMessages copies pending flash messages into data, appending to any
// message the handler already set under the same key.
func SetFlashMessages(data fiber.Map, messages flashmessages.FlashMessages) {
	mergeMessage(data, FlashSuccessKeyView, messages.Success)
	mergeMessage(data, FlashErrorKeyView, messages.Error)
}

func mergeMessage(data fiber.Map, key, message string) {
	if message == "" {
		return
	}
	if existing, ok := data[key].(string); ok && existing != "" && existing != message {
		data[key] = existing + " " + message
		return
	}
	data[key] = message
}

// Render renders view inside layout with the data every page needs:
// clinic profile, csrf token, current principal and the admin unread badge.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, statusCode ...int) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["Clinic"]; !ok {
		data["Clinic"] = c.Locals(utils.LocalsClinic)
	}
	if _, ok := data["CsrfToken"]; !ok {
		token, _ := c.Locals(configs.CSRFContextKey).(string)
		data["CsrfToken"] = token
	}
	data["Principal"] = c.Locals(utils.LocalsPrincipal)
	data["UnreadCount"] = c.Locals(utils.LocalsUnreadCount)
	data["CurrentPath"] = c.Path()

	if messages, err := flashmessages.GetFlashMessages(c); err == nil {
		SetFlashMessages(data, messages)
	}

	status := http.StatusOK
	if len(statusCode) > 0 {
		status = statusCode[0]
	}

	if err := c.Status(status).Render(view, data, layout); err != nil {
		configslog.Log.Error("Template render failed", zap.String("view", view), zap.String("layout", layout), zap.Error(err))
		return err
	}
	return nil
}
