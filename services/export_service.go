package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var AppointmentExportHeader = []string{
	"ID", "Name", "Email", "Phone", "NRC", "Service", "Date", "Time", "Status", "Read", "Created",
}

var PatientExportHeader = []string{
	"NRC", "Name", "Email", "Phone", "Gender", "Date of Birth", "Blood Type",
	"Insurance Provider", "Policy Number", "Registered",
}

const exportTimeLayout = "2006-01-02 15:04"

// IExportService builds spreadsheet downloads for the admin console.
type IExportService interface {
	AppointmentsWorkbook(ctx context.Context) ([]byte, error)
	PatientsWorkbook(ctx context.Context, query string) ([]byte, error)
}

type ExportService struct {
	appointments IAppointmentService
	patients     IPatientService
}

func NewExportService(appointments IAppointmentService, patients IPatientService) *ExportService {
	return &ExportService{appointments: appointments, patients: patients}
}

func (s *ExportService) AppointmentsWorkbook(ctx context.Context) ([]byte, error) {
	list, err := s.appointments.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(list))
	for _, a := range list {
		nrc := ""
		if a.IsLinked() {
			nrc = *a.PatientNRC
		}
		read := "No"
		if a.IsRead {
			read = "Yes"
		}
		rows = append(rows, []any{
			a.ID, a.ContactName(), a.ContactEmail(), a.ContactPhone(), nrc, a.Service,
			a.DateString(), a.AppointmentTime, string(a.Status), read,
			a.CreatedAt.Format(exportTimeLayout),
		})
	}
	return buildWorkbook("Appointments", AppointmentExportHeader,
		[]float64{8, 24, 28, 16, 16, 26, 12, 10, 12, 8, 18}, rows)
}

func (s *ExportService) PatientsWorkbook(ctx context.Context, query string) ([]byte, error) {
	list, err := s.patients.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(list))
	for _, p := range list {
		rows = append(rows, []any{
			p.NRC, p.Name, p.Email, p.Phone, p.Gender, p.DOB, p.BloodType,
			p.InsuranceProvider, p.PolicyNumber, p.CreatedAt.Format(exportTimeLayout),
		})
	}
	return buildWorkbook("Patients", PatientExportHeader,
		[]float64{16, 24, 28, 16, 10, 14, 10, 22, 16, 18}, rows)
}

// buildWorkbook writes a single sheet with a styled, frozen header row.
func buildWorkbook(sheet string, headers []string, widths []float64, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		if col < len(widths) {
			name, _ := excelize.ColumnNumberToName(col + 1)
			if err := f.SetColWidth(sheet, name, name, widths[col]); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ IExportService = (*ExportService)(nil)

