package storage

import (
	"context"
	"fmt"

	"github.com/anjiri1684/studio_tracker/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStudents lists the instructor's students by name, each with its schedule
// and its most recent payment.
func (s *DatabaseStorage) GetStudents(ctx context.Context, instructorID uuid.UUID) ([]models.StudentWithScheduleAndPayment, error) {
	db := s.db.WithContext(ctx)

	var students []models.Student
	err := db.Preload("ClassSchedule").
		Where("instructor_id = ?", instructorID).
		Order("name asc").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	latest, err := s.latestPayments(db, studentIDs(students))
	if err != nil {
		return nil, err
	}

	result := make([]models.StudentWithScheduleAndPayment, 0, len(students))
	for _, st := range students {
		row := models.StudentWithScheduleAndPayment{Student: st}
		if p, ok := latest[st.ID]; ok {
			payment := p
			row.RecentPayment = &payment
		}
		result = append(result, row)
	}
	return result, nil
}

// latestPayments returns the newest payment per student. Ties on created_at
// are broken by id so the choice is stable.
func (s *DatabaseStorage) latestPayments(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]models.PaymentRecord, error) {
	latest := make(map[uuid.UUID]models.PaymentRecord, len(ids))
	if len(ids) == 0 {
		return latest, nil
	}

	var payments []models.PaymentRecord
	err := db.Raw(`
		SELECT id, student_id, amount, payment_date, due_date, status, payment_type, notes, created_at, updated_at
		FROM (
			SELECT payment_records.*,
				ROW_NUMBER() OVER (PARTITION BY student_id ORDER BY created_at DESC, id DESC) AS rn
			FROM payment_records
			WHERE student_id IN ?
		) ranked
		WHERE rn = 1
	`, ids).Scan(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("latest payments: %w", err)
	}

	for _, p := range payments {
		latest[p.StudentID] = p
	}
	return latest, nil
}

func (s *DatabaseStorage) GetStudent(ctx context.Context, id, instructorID uuid.UUID) (*models.StudentWithScheduleAndPayment, error) {
	db := s.db.WithContext(ctx)

	var student models.Student
	err := db.Preload("ClassSchedule").
		Where("id = ? AND instructor_id = ?", id, instructorID).
		First(&student).Error
	if err != nil {
		return nil, notFound(err)
	}

	row := &models.StudentWithScheduleAndPayment{Student: student}
	latest, err := s.latestPayments(db, []uuid.UUID{student.ID})
	if err != nil {
		return nil, err
	}
	if p, ok := latest[student.ID]; ok {
		row.RecentPayment = &p
	}
	return row, nil
}

// CreateStudent writes the student and its schedule in one transaction.
func (s *DatabaseStorage) CreateStudent(ctx context.Context, in models.StudentInput, schedule models.ScheduleInput, instructorID uuid.UUID) (*models.Student, error) {
	student := in.ToModel(instructorID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&student).Error; err != nil {
			return fmt.Errorf("insert student: %w", err)
		}
		cs := schedule.ToModel(student.ID)
		if err := tx.Create(&cs).Error; err != nil {
			return fmt.Errorf("insert class schedule: %w", err)
		}
		student.ClassSchedule = &cs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *DatabaseStorage) UpdateStudent(ctx context.Context, id uuid.UUID, patch models.StudentPatch, instructorID uuid.UUID) (*models.Student, error) {
	db := s.db.WithContext(ctx)

	changes := patch.Changes()
	changes["updated_at"] = s.now()

	res := db.Model(&models.Student{}).
		Where("id = ? AND instructor_id = ?", id, instructorID).
		Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("update student: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var student models.Student
	if err := db.Preload("ClassSchedule").First(&student, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &student, nil
}

// DeleteStudent removes the student together with its schedule, attendance
// and payment rows. Deleting an unknown id is a no-op.
func (s *DatabaseStorage) DeleteStudent(ctx context.Context, id, instructorID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Student{}).Where("id = ? AND instructor_id = ?", id, instructorID).Count(&count).Error; err != nil {
			return fmt.Errorf("find student: %w", err)
		}
		if count == 0 {
			return nil
		}

		for _, dependant := range []interface{}{&models.ClassSchedule{}, &models.AttendanceRecord{}, &models.PaymentRecord{}} {
			if err := tx.Where("student_id = ?", id).Delete(dependant).Error; err != nil {
				return fmt.Errorf("delete student dependants: %w", err)
			}
		}
		if err := tx.Where("id = ? AND instructor_id = ?", id, instructorID).Delete(&models.Student{}).Error; err != nil {
			return fmt.Errorf("delete student: %w", err)
		}
		return nil
	})
}

// ownsStudent reports whether studentID belongs to the instructor.
func (s *DatabaseStorage) ownsStudent(db *gorm.DB, studentID, instructorID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&models.Student{}).
		Where("id = ? AND instructor_id = ?", studentID, instructorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check student owner: %w", err)
	}
	return count > 0, nil
}

func studentIDs(students []models.Student) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.ID)
	}
	return ids
}
