package flashmessages

import (
	"encoding/json"

	"luax.health/configs/configslog"
	"luax.health/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	FlashSuccessKey = utils.SessionFlashSuccess
	FlashErrorKey   = utils.SessionFlashError
	flashFormKey    = "flash_form"
)

// FlashMessages holds the one-shot messages of the previous request.
type FlashMessages struct {
	Success string
	Error   string
}

// SetFlashMessage stores message under key until the next GetFlashMessages.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		configslog.Log.Warn("Flash message could not be stored", zap.String("key", key), zap.Error(err))
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages reads and clears the pending messages.
func GetFlashMessages(c *fiber.Ctx) (FlashMessages, error) {
	var messages FlashMessages
	sess, err := utils.SessionStart(c)
	if err != nil {
		return messages, err
	}
	success, _ := sess.Get(FlashSuccessKey).(string)
	failure, _ := sess.Get(FlashErrorKey).(string)
	if success == "" && failure == "" {
		return messages, nil
	}
	messages.Success = success
	messages.Error = failure
	sess.Delete(FlashSuccessKey)
	sess.Delete(FlashErrorKey)
	return messages, sess.Save()
}

// SetFlashFormData keeps submitted form values so a re-rendered form can be
// refilled after a redirect. Passwords must not be passed in.
func SetFlashFormData(c *fiber.Ctx, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	sess, err := utils.SessionStart(c)
	if err != nil {
		return err
	}
	sess.Set(flashFormKey, string(raw))
	return sess.Save()
}

// GetFlashFormData returns and clears the saved form values, keyed by JSON name.
func GetFlashFormData(c *fiber.Ctx) map[string]any {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return nil
	}
	raw, _ := sess.Get(flashFormKey).(string)
	if raw == "" {
		return nil
	}
	sess.Delete(flashFormKey)
	if err := sess.Save(); err != nil {
		configslog.Log.Warn("Flash form data could not be cleared", zap.Error(err))
	}
	data := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}
	return data
}
