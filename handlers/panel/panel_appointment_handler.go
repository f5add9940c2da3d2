package handlers

import (
	"errors"
	"fmt"

	"luax.health/configs/configslog"
	"luax.health/middlewares"
	"luax.health/pkg/flashmessages"
	"luax.health/pkg/renderer"
	"luax.health/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AppointmentHandler serves the logged-in patient's dashboard.
type AppointmentHandler struct {
	service services.IAppointmentService
}

func NewAppointmentHandler(service services.IAppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// Dashboard lists upcoming and past appointments and the last visit date.
func (h *AppointmentHandler) Dashboard(c *fiber.Ctx) error {
	principal := middlewares.CurrentPrincipal(c)

	data := fiber.Map{
		"Title":    "My Appointments",
		"FormData": flashmessages.GetFlashFormData(c),
	}
	overview, err := h.service.PatientOverview(c.UserContext(), principal.NRC)
	if err != nil {
		configslog.Log.Error("Panel - Dashboard Error", zap.String("nrc", principal.NRC), zap.Error(err))
		data[renderer.FlashErrorKeyView] = "Your appointments could not be loaded."
		overview = &services.PatientOverview{}
	}
	data["Upcoming"] = overview.Upcoming
	data["Past"] = overview.Past
	data["LastVisit"] = overview.LastVisit

	return renderer.Render(c, "panel/dashboard", "layouts/panel_layout", data)
}

// Book creates an appointment linked to the logged-in patient.
func (h *AppointmentHandler) Book(c *fiber.Ctx) error {
	principal := middlewares.CurrentPrincipal(c)

	var input services.BookingInput
	if err := c.BodyParser(&input); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid form data.")
		return c.Redirect(middlewares.PatientHomePath, fiber.StatusSeeOther)
	}
	input.PatientNRC = principal.NRC

	appointment, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		if !errors.Is(err, services.ErrValidation) {
			configslog.Log.Error("Panel - Book Error", zap.String("nrc", principal.NRC), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey,
			services.UserMessage(err, "Your appointment could not be saved."))
		_ = flashmessages.SetFlashFormData(c, input)
		return c.Redirect(middlewares.PatientHomePath, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
		fmt.Sprintf("Appointment #%d booked. We will confirm it shortly.", appointment.ID))
	return c.Redirect(middlewares.PatientHomePath, fiber.StatusSeeOther)
}

// Cancel cancels one of the patient's own Pending appointments.
func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	principal := middlewares.CurrentPrincipal(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid appointment ID.")
		return c.Redirect(middlewares.PatientHomePath, fiber.StatusSeeOther)
	}

	if _, err := h.service.CancelByPatient(c.UserContext(), uint(id), principal.NRC); err != nil {
		var de *services.DomainError
		if !errors.As(err, &de) {
			configslog.Log.Error("Panel - Cancel Error", zap.Int("id", id), zap.String("nrc", principal.NRC), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey,
			services.UserMessage(err, "The appointment could not be cancelled."))
		return c.Redirect(middlewares.PatientHomePath, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Appointment cancelled.")
	return c.Redirect(middlewares.PatientHomePath, fiber.StatusSeeOther)
}
