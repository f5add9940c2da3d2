package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"luax.health/configs/configslog"
	"luax.health/models"
	"luax.health/pkg/flashmessages"
	"luax.health/pkg/renderer"
	"luax.health/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PublicHandler serves the anonymous booking pages.
type PublicHandler struct {
	appointments services.IAppointmentService
}

func NewPublicHandler(appointments services.IAppointmentService) *PublicHandler {
	return &PublicHandler{appointments: appointments}
}

// ShowBookingForm renders the home page with the booking form.
func (h *PublicHandler) ShowBookingForm(c *fiber.Ctx) error {
	return renderer.Render(c, "public/index", "layouts/public_layout", fiber.Map{
		"Title":    "Book an Appointment",
		"FormData": flashmessages.GetFlashFormData(c),
	})
}

// Book stores a walk-in booking and redirects to the success page.
func (h *PublicHandler) Book(c *fiber.Ctx) error {
	var input services.BookingInput
	if err := c.BodyParser(&input); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid form data.")
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	input.PatientNRC = ""

	appointment, err := h.appointments.Create(c.UserContext(), input)
	if err != nil {
		if !errors.Is(err, services.ErrValidation) {
			configslog.Log.Error("Public - Book Error", zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey,
			services.UserMessage(err, "Your appointment could not be saved. Please try again."))
		_ = flashmessages.SetFlashFormData(c, input)
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.Redirect(fmt.Sprintf("/success?appt_id=%d", appointment.ID), fiber.StatusSeeOther)
}

// Success shows the confirmation page, with the booking when appt_id resolves.
func (h *PublicHandler) Success(c *fiber.Ctx) error {
	var appointment *models.Appointment
	if id, err := strconv.ParseUint(c.Query("appt_id"), 10, 64); err == nil && id > 0 {
		appointment, err = h.appointments.Get(c.UserContext(), uint(id))
		if err != nil && !errors.Is(err, services.ErrNotFound) {
			configslog.Log.Error("Public - Success Error", zap.Uint64("id", id), zap.Error(err))
		}
	}
	return renderer.Render(c, "public/success", "layouts/public_layout", fiber.Map{
		"Title":       "Appointment Received",
		"Appointment": appointment,
	})
}

// CheckStatus looks a booking up by reference (query or form) or phone and
// shows the result or an inline error on the same page.
func (h *PublicHandler) CheckStatus(c *fiber.Ctx) error {
	data := fiber.Map{"Title": "Check Appointment Status"}

	var idText, phone string
	if c.Method() == fiber.MethodPost {
		idText = c.FormValue("appt_id")
		phone = c.FormValue("phone")
	} else {
		idText = c.Query("appt_id")
		if idText == "" {
			return renderer.Render(c, "public/check_status", "layouts/public_layout", data)
		}
	}

	appointment, err := h.appointments.Lookup(c.UserContext(), idText, phone)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) && !errors.Is(err, services.ErrValidation) {
			configslog.Log.Error("Public - CheckStatus Error", zap.Error(err))
		}
		data["LookupError"] = services.UserMessage(err, "No appointment found.")
		data["Query"] = fiber.Map{"appt_id": idText, "phone": phone}
		return renderer.Render(c, "public/check_status", "layouts/public_layout", data)
	}
	data["Appointment"] = appointment
	return renderer.Render(c, "public/check_status", "layouts/public_layout", data, http.StatusOK)
}

// Health reports liveness.
func (h *PublicHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
