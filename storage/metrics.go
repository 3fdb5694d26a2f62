package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/anjiri1684/studio_tracker/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func (s *DatabaseStorage) GetDashboardMetrics(ctx context.Context, instructorID uuid.UUID) (*models.DashboardMetrics, error) {
	db := s.db.WithContext(ctx)
	today := s.today()
	from, to := weekWindow(s.Today())

	var metrics models.DashboardMetrics

	if err := db.Model(&models.Student{}).
		Where("instructor_id = ? AND status = ?", instructorID, models.StudentActive).
		Count(&metrics.TotalStudents).Error; err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}

	week := func() *gorm.DB {
		return db.Model(&models.AttendanceRecord{}).
			Where("student_id IN (?)", s.ownedStudents(instructorID)).
			Where("class_date >= ? AND class_date <= ?", from, to)
	}
	if err := week().Count(&metrics.WeeklyAttendance.Total).Error; err != nil {
		return nil, fmt.Errorf("count weekly attendance: %w", err)
	}
	if err := week().Where("status = ?", models.AttendanceAttended).
		Count(&metrics.WeeklyAttendance.Attended).Error; err != nil {
		return nil, fmt.Errorf("count weekly attended: %w", err)
	}

	var pending struct{ Total decimal.NullDecimal }
	if err := db.Model(&models.PaymentRecord{}).
		Select("SUM(amount) AS total").
		Where("student_id IN (?) AND status = ?", s.ownedStudents(instructorID), models.PaymentPending).
		Scan(&pending).Error; err != nil {
		return nil, fmt.Errorf("sum pending payments: %w", err)
	}
	if pending.Total.Valid {
		metrics.PendingPayments = pending.Total.Decimal.Round(0).IntPart()
	}

	if err := db.Model(&models.PaymentRecord{}).
		Where("student_id IN (?) AND status = ? AND due_date < ?", s.ownedStudents(instructorID), models.PaymentPending, today).
		Count(&metrics.OverdueFees).Error; err != nil {
		return nil, fmt.Errorf("count overdue payments: %w", err)
	}

	return &metrics, nil
}

// weekWindow is the inclusive range [today-7d, today] used for weekly attendance.
func weekWindow(today time.Time) (models.Date, models.Date) {
	to := models.DateOf(today)
	return to.AddDays(-7), to
}
