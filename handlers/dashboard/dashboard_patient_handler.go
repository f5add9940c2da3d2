package handlers

import (
	"errors"
	"net/url"
	"strings"

	"luax.health/configs/configslog"
	"luax.health/models"
	"luax.health/pkg/flashmessages"
	"luax.health/pkg/renderer"
	"luax.health/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const patientsPath = "/admin/patients"

// PatientHandler lets the admin search and remove patient accounts.
type PatientHandler struct {
	service services.IPatientService
	export  services.IExportService
}

func NewPatientHandler(service services.IPatientService, export services.IExportService) *PatientHandler {
	return &PatientHandler{service: service, export: export}
}

func (h *PatientHandler) ListPatients(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("search"))
	data := fiber.Map{
		"Title":       "Patients",
		"SearchQuery": query,
	}
	patients, err := h.service.Search(c.UserContext(), query)
	if err != nil {
		configslog.Log.Error("Dashboard - ListPatients Error", zap.String("search", query), zap.Error(err))
		data[renderer.FlashErrorKeyView] = "Patients could not be loaded."
		patients = []models.Patient{}
	}
	data["Patients"] = patients
	return renderer.Render(c, "dashboard/patients", "layouts/dashboard_layout", data)
}

// DeletePatient removes the patient and all of their appointments.
func (h *PatientHandler) DeletePatient(c *fiber.Ctx) error {
	// NRCs contain slashes, so the segment arrives path-escaped.
	raw, err := url.PathUnescape(c.Params("nrc"))
	nrc := strings.TrimSpace(raw)
	if err != nil || nrc == "" {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid NRC.")
		return c.Redirect(patientsPath, fiber.StatusSeeOther)
	}

	if err := h.service.Delete(c.UserContext(), nrc); err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			configslog.Log.Error("Dashboard - DeletePatient Error", zap.String("nrc", nrc), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, services.UserMessage(err, "Patient could not be deleted."))
		return c.Redirect(patientsPath, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Patient "+nrc+" and their appointments have been deleted.")
	return c.Redirect(patientsPath, fiber.StatusSeeOther)
}

// ExportPatients downloads the (optionally filtered) patient list as xlsx.
func (h *PatientHandler) ExportPatients(c *fiber.Ctx) error {
	body, err := h.export.PatientsWorkbook(c.UserContext(), c.Query("search"))
	if err != nil {
		configslog.Log.Error("Dashboard - ExportPatients Error", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Export failed.")
		return c.Redirect(patientsPath, fiber.StatusSeeOther)
	}
	return sendWorkbook(c, "patients.xlsx", body)
}
