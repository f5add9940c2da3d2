package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Locals keys shared by routes, middlewares and the renderer.
const (
	LocalsSessionStore = "session_store"
	LocalsPrincipal    = "principal"
	LocalsClinic       = "clinic"
	LocalsUnreadCount  = "unread_count"
)

// Session keys.
const (
	SessionPatientNRC  = "patient_nrc"
	SessionPatientName = "patient_name"
	SessionIsAdmin     = "admin_logged_in"

	SessionFlashSuccess = "flash_success"
	SessionFlashError   = "flash_error"
)

var ErrSessionStoreMissing = errors.New("session store not found in context")

// SessionStart returns the request's session from the store placed in locals.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals(LocalsSessionStore).(*session.Store)
	if !ok || store == nil {
		return nil, ErrSessionStoreMissing
	}
	return store.Get(c)
}

// GetPatientFromSession returns the logged-in patient's nrc and display name.
func GetPatientFromSession(sess *session.Session) (nrc, name string, ok bool) {
	nrc, ok = sess.Get(SessionPatientNRC).(string)
	if !ok || nrc == "" {
		return "", "", false
	}
	name, _ = sess.Get(SessionPatientName).(string)
	return nrc, name, true
}

func IsAdminSession(sess *session.Session) bool {
	v, ok := sess.Get(SessionIsAdmin).(bool)
	return ok && v
}

// LoginPatient rotates the session id, stores the patient identity and
// queues welcome as the success flash. Store.Get keeps serving the pre-rotation
// id for the rest of the request, so the flash has to ride on this session.
func LoginPatient(c *fiber.Ctx, nrc, name, welcome string) error {
	sess, err := SessionStart(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Delete(SessionIsAdmin)
	sess.Set(SessionPatientNRC, nrc)
	sess.Set(SessionPatientName, name)
	sess.Set(SessionFlashSuccess, welcome)
	return sess.Save()
}

// LoginAdmin rotates the session id, sets the admin flag and queues welcome.
func LoginAdmin(c *fiber.Ctx, welcome string) error {
	sess, err := SessionStart(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Delete(SessionPatientNRC)
	sess.Delete(SessionPatientName)
	sess.Set(SessionIsAdmin, true)
	sess.Set(SessionFlashSuccess, welcome)
	return sess.Save()
}

// Logout drops every key of the session and starts a fresh one that carries
// only the goodbye flash.
func Logout(c *fiber.Ctx, goodbye string) error {
	sess, err := SessionStart(c)
	if err != nil {
		return err
	}
	if err := sess.Reset(); err != nil {
		return err
	}
	sess.Set(SessionFlashSuccess, goodbye)
	return sess.Save()
}
