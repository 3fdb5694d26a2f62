package storage

import (
	"context"
	"fmt"

	"github.com/anjiri1684/studio_tracker/models"
	"github.com/google/uuid"
)

func (s *DatabaseStorage) GetClassSchedule(ctx context.Context, studentID, instructorID uuid.UUID) (*models.ClassSchedule, error) {
	var schedule models.ClassSchedule
	err := s.db.WithContext(ctx).
		Where("student_id = ? AND student_id IN (?)", studentID, s.ownedStudents(instructorID)).
		First(&schedule).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &schedule, nil
}

func (s *DatabaseStorage) UpdateClassSchedule(ctx context.Context, studentID uuid.UUID, patch models.SchedulePatch, instructorID uuid.UUID) (*models.ClassSchedule, error) {
	db := s.db.WithContext(ctx)

	changes := patch.Changes()
	changes["updated_at"] = s.now()

	res := db.Model(&models.ClassSchedule{}).
		Where("student_id = ? AND student_id IN (?)", studentID, s.ownedStudents(instructorID)).
		Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("update class schedule: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetClassSchedule(ctx, studentID, instructorID)
}
