package storage

import (
	"context"
	"fmt"

	"github.com/anjiri1684/studio_tracker/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (s *DatabaseStorage) GetPaymentRecords(ctx context.Context, instructorID uuid.UUID) ([]models.PaymentWithStudent, error) {
	query := s.db.WithContext(ctx).
		Where("student_id IN (?)", s.ownedStudents(instructorID))
	return s.paymentsWithStudent(ctx, query)
}

func (s *DatabaseStorage) GetStudentPayments(ctx context.Context, studentID, instructorID uuid.UUID) ([]models.PaymentRecord, error) {
	var payments []models.PaymentRecord
	err := s.db.WithContext(ctx).
		Where("student_id = ? AND student_id IN (?)", studentID, s.ownedStudents(instructorID)).
		Order("due_date desc").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("list student payments: %w", err)
	}
	return payments, nil
}

func (s *DatabaseStorage) CreatePaymentRecord(ctx context.Context, in models.PaymentInput, instructorID uuid.UUID) (*models.PaymentRecord, error) {
	db := s.db.WithContext(ctx)

	owned, err := s.ownsStudent(db, in.StudentID, instructorID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrNotFound
	}

	payment := in.ToModel()
	if err := db.Create(&payment).Error; err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return &payment, nil
}

func (s *DatabaseStorage) UpdatePaymentRecord(ctx context.Context, id uuid.UUID, patch models.PaymentPatch, instructorID uuid.UUID) (*models.PaymentRecord, error) {
	db := s.db.WithContext(ctx)

	if patch.StudentID != nil {
		owned, err := s.ownsStudent(db, *patch.StudentID, instructorID)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, ErrNotFound
		}
	}

	changes := patch.Changes()
	changes["updated_at"] = s.now()

	res := db.Model(&models.PaymentRecord{}).
		Where("id = ? AND student_id IN (?)", id, s.ownedStudents(instructorID)).
		Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("update payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var payment models.PaymentRecord
	if err := db.First(&payment, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &payment, nil
}

// GetOverduePayments returns pending payments whose due date is before today.
// A payment due today is not overdue yet.
func (s *DatabaseStorage) GetOverduePayments(ctx context.Context, instructorID uuid.UUID) ([]models.PaymentWithStudent, error) {
	query := s.db.WithContext(ctx).
		Where("student_id IN (?)", s.ownedStudents(instructorID)).
		Where("status = ? AND due_date < ?", models.PaymentPending, s.today())
	return s.paymentsWithStudent(ctx, query)
}

func (s *DatabaseStorage) paymentsWithStudent(ctx context.Context, query *gorm.DB) ([]models.PaymentWithStudent, error) {
	var payments []models.PaymentRecord
	if err := query.Order("due_date desc").Order("created_at desc").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(payments))
	for _, p := range payments {
		ids = append(ids, p.StudentID)
	}
	students, err := s.studentsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]models.PaymentWithStudent, 0, len(payments))
	for _, p := range payments {
		result = append(result, models.PaymentWithStudent{PaymentRecord: p, Student: students[p.StudentID]})
	}
	return result, nil
}
