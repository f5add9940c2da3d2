package handlers

import (
	"errors"
	"fmt"

	"luax.health/configs/configslog"
	"luax.health/middlewares"
	"luax.health/models"
	"luax.health/pkg/flashmessages"
	"luax.health/pkg/renderer"
	"luax.health/services"
	"luax.health/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AppointmentHandler is the admin view over every appointment.
type AppointmentHandler struct {
	service services.IAppointmentService
	export  services.IExportService
}

func NewAppointmentHandler(service services.IAppointmentService, export services.IExportService) *AppointmentHandler {
	return &AppointmentHandler{service: service, export: export}
}

// ListAppointments marks everything read, then lists all appointments.
func (h *AppointmentHandler) ListAppointments(c *fiber.Ctx) error {
	data := fiber.Map{
		"Title":    "Admin Dashboard",
		"Statuses": models.AppointmentStatuses,
	}
	appointments, err := h.service.AdminDashboard(c.UserContext())
	if err != nil {
		configslog.Log.Error("Dashboard - ListAppointments Error", zap.Error(err))
		data[renderer.FlashErrorKeyView] = "Appointments could not be loaded."
		appointments = []models.Appointment{}
	}
	data["Appointments"] = appointments
	// Everything on this page has just been read.
	c.Locals(utils.LocalsUnreadCount, int64(0))

	return renderer.Render(c, "dashboard/appointments", "layouts/dashboard_layout", data)
}

// UpdateStatus applies the admin's status choice and optional notification.
func (h *AppointmentHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid appointment ID.")
		return c.Redirect(middlewares.AdminHomePath, fiber.StatusSeeOther)
	}

	status := c.FormValue("status")
	notify := c.FormValue("notify_email")
	notice := services.StatusNotice{
		Notify:  notify == "on" || notify == "true" || notify == "1",
		Message: c.FormValue("custom_message"),
	}

	if _, err := h.service.UpdateStatus(c.UserContext(), uint(id), status, notice); err != nil {
		var de *services.DomainError
		if !errors.As(err, &de) {
			configslog.Log.Error("Dashboard - UpdateStatus Error", zap.Int("id", id), zap.String("status", status), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, services.UserMessage(err, "Status could not be updated."))
		return c.Redirect(middlewares.AdminHomePath, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
		fmt.Sprintf("Appointment #%d status updated to %s", id, status))
	return c.Redirect(middlewares.AdminHomePath, fiber.StatusSeeOther)
}

func (h *AppointmentHandler) DeleteAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid appointment ID.")
		return c.Redirect(middlewares.AdminHomePath, fiber.StatusSeeOther)
	}

	if err := h.service.Delete(c.UserContext(), uint(id)); err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			configslog.Log.Error("Dashboard - DeleteAppointment Error", zap.Int("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, services.UserMessage(err, "Appointment could not be deleted."))
		return c.Redirect(middlewares.AdminHomePath, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, fmt.Sprintf("Appointment #%d has been deleted.", id))
	return c.Redirect(middlewares.AdminHomePath, fiber.StatusSeeOther)
}

// ExportAppointments downloads every appointment as an xlsx workbook.
func (h *AppointmentHandler) ExportAppointments(c *fiber.Ctx) error {
	body, err := h.export.AppointmentsWorkbook(c.UserContext())
	if err != nil {
		configslog.Log.Error("Dashboard - ExportAppointments Error", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Export failed.")
		return c.Redirect(middlewares.AdminHomePath, fiber.StatusSeeOther)
	}
	return sendWorkbook(c, "appointments.xlsx", body)
}

func sendWorkbook(c *fiber.Ctx, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment(filename)
	return c.Send(body)
}
