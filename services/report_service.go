package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/anjiri1684/studio_tracker/models"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// ReportStore is the read side of storage.Storage used by reports.
type ReportStore interface {
	GetStudents(ctx context.Context, instructorID uuid.UUID) ([]models.StudentWithScheduleAndPayment, error)
	GetAttendanceRecords(ctx context.Context, instructorID uuid.UUID, startDate, endDate *models.Date) ([]models.AttendanceWithStudent, error)
	GetPaymentRecords(ctx context.Context, instructorID uuid.UUID) ([]models.PaymentWithStudent, error)
	GetDashboardMetrics(ctx context.Context, instructorID uuid.UUID) (*models.DashboardMetrics, error)
	Today() time.Time
}

type ReportService struct {
	store ReportStore
}

func NewReportService(store ReportStore) *ReportService {
	return &ReportService{store: store}
}

// Summary aggregates students, attendance and payments. The optional bounds
// restrict attendance by class date and payments by due date.
func (s *ReportService) Summary(ctx context.Context, instructorID uuid.UUID, startDate, endDate *models.Date) (*models.ReportSummary, error) {
	students, err := s.store.GetStudents(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	attendance, err := s.store.GetAttendanceRecords(ctx, instructorID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments(ctx, instructorID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	metrics, err := s.store.GetDashboardMetrics(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	summary := &models.ReportSummary{
		TotalStudents: len(students),
		TotalClasses:  len(attendance),
		Dashboard:     *metrics,
	}

	for _, st := range students {
		switch st.Status {
		case models.StudentActive:
			summary.Students.Active++
		case models.StudentTrial:
			summary.Students.Trial++
		default:
			summary.Students.Inactive++
		}
	}

	attended := 0
	for _, a := range attendance {
		if a.Status == models.AttendanceAttended {
			attended++
		}
	}
	if len(attendance) > 0 {
		summary.AttendanceRate = math.Round(float64(attended)/float64(len(attendance))*1000) / 10
	}

	today := models.DateOf(s.store.Today())
	for _, p := range payments {
		switch p.Status {
		case models.PaymentPaid:
			addTo(&summary.Payments.Paid, p.Amount)
		case models.PaymentPending:
			addTo(&summary.Payments.Pending, p.Amount)
			if p.IsOverdue(today) {
				addTo(&summary.Payments.Overdue, p.Amount)
			}
		}
	}
	summary.TotalRevenue = summary.Payments.Paid.Amount

	return summary, nil
}

func addTo(b *models.PaymentBucket, amount models.Amount) {
	b.Count++
	b.Amount = models.Amount{Decimal: b.Amount.Add(amount.Decimal)}
}

// ExportPayments writes the payment ledger to w as CSV or XLSX.
func (s *ReportService) ExportPayments(ctx context.Context, w io.Writer, instructorID uuid.UUID, format string, startDate, endDate *models.Date) error {
	payments, err := s.payments(ctx, instructorID, startDate, endDate)
	if err != nil {
		return err
	}
	rows := paymentRows(payments, models.DateOf(s.store.Today()))

	switch strings.ToLower(format) {
	case "", FormatCSV:
		return writeCSV(w, rows)
	case FormatXLSX:
		return writeXLSX(w, rows)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ContentType returns the MIME type of an export format.
func ContentType(format string) string {
	if strings.ToLower(format) == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

func (s *ReportService) payments(ctx context.Context, instructorID uuid.UUID, startDate, endDate *models.Date) ([]models.PaymentWithStudent, error) {
	payments, err := s.store.GetPaymentRecords(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	if startDate == nil && endDate == nil {
		return payments, nil
	}

	filtered := make([]models.PaymentWithStudent, 0, len(payments))
	for _, p := range payments {
		if startDate != nil && p.DueDate.Before(*startDate) {
			continue
		}
		if endDate != nil && endDate.Before(p.DueDate) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

var paymentHeaders = []string{"Student Name", "Amount", "Payment Date", "Due Date", "Status", "Payment Type", "Notes"}

func paymentRows(payments []models.PaymentWithStudent, today models.Date) [][]string {
	rows := make([][]string, 0, len(payments)+1)
	rows = append(rows, paymentHeaders)
	for _, p := range payments {
		status := p.Status
		if p.IsOverdue(today) {
			status = models.PaymentOverdue
		}
		notes := ""
		if p.Notes != nil {
			notes = *p.Notes
		}
		rows = append(rows, []string{
			p.Student.Name,
			p.Amount.String(),
			p.PaymentDate.String(),
			p.DueDate.String(),
			status,
			p.PaymentType,
			notes,
		})
	}
	return rows
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Payments"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
