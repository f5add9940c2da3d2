package middlewares

import (
	"luax.health/configs/configslog"
	"luax.health/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PrincipalKind is who is making the request.
type PrincipalKind int

const (
	Anonymous PrincipalKind = iota
	PatientPrincipal
	AdminPrincipal
)

func (k PrincipalKind) String() string {
	switch k {
	case PatientPrincipal:
		return "patient"
	case AdminPrincipal:
		return "admin"
	default:
		return "anonymous"
	}
}

// Principal is the authenticated identity of a request. NRC and Name are set
// only for patients.
type Principal struct {
	Kind PrincipalKind
	NRC  string
	Name string
}

func (p Principal) IsAnonymous() bool { return p.Kind == Anonymous }
func (p Principal) IsPatient() bool   { return p.Kind == PatientPrincipal }
func (p Principal) IsAdmin() bool     { return p.Kind == AdminPrincipal }

// CurrentPrincipal returns the principal placed by Identify, or Anonymous.
func CurrentPrincipal(c *fiber.Ctx) Principal {
	if p, ok := c.Locals(utils.LocalsPrincipal).(Principal); ok {
		return p
	}
	return Principal{Kind: Anonymous}
}

// Identify resolves the session into a Principal. Admin wins when both flags
// are somehow present.
func Identify(c *fiber.Ctx) error {
	principal := Principal{Kind: Anonymous}

	sess, err := utils.SessionStart(c)
	if err != nil {
		configslog.Log.Warn("Session could not be loaded", zap.String("path", c.Path()), zap.Error(err))
		c.Locals(utils.LocalsPrincipal, principal)
		return c.Next()
	}

	if utils.IsAdminSession(sess) {
		principal.Kind = AdminPrincipal
	} else if nrc, name, ok := utils.GetPatientFromSession(sess); ok {
		principal = Principal{Kind: PatientPrincipal, NRC: nrc, Name: name}
	}
	c.Locals(utils.LocalsPrincipal, principal)
	return c.Next()
}
