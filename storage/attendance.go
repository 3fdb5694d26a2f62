package storage

import (
	"context"
	"fmt"

	"github.com/anjiri1684/studio_tracker/models"
	"github.com/google/uuid"
)

// GetAttendanceRecords lists attendance for the instructor's students, newest
// class first. Each bound is inclusive and applied only when given.
func (s *DatabaseStorage) GetAttendanceRecords(ctx context.Context, instructorID uuid.UUID, startDate, endDate *models.Date) ([]models.AttendanceWithStudent, error) {
	query := s.db.WithContext(ctx).
		Where("student_id IN (?)", s.ownedStudents(instructorID))
	if startDate != nil {
		query = query.Where("class_date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("class_date <= ?", *endDate)
	}

	var records []models.AttendanceRecord
	if err := query.Order("class_date desc").Order("created_at desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	students, err := s.studentsByID(ctx, attendanceStudentIDs(records))
	if err != nil {
		return nil, err
	}

	result := make([]models.AttendanceWithStudent, 0, len(records))
	for _, r := range records {
		result = append(result, models.AttendanceWithStudent{AttendanceRecord: r, Student: students[r.StudentID]})
	}
	return result, nil
}

func (s *DatabaseStorage) GetStudentAttendance(ctx context.Context, studentID, instructorID uuid.UUID) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := s.db.WithContext(ctx).
		Where("student_id = ? AND student_id IN (?)", studentID, s.ownedStudents(instructorID)).
		Order("class_date desc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list student attendance: %w", err)
	}
	return records, nil
}

func (s *DatabaseStorage) CreateAttendanceRecord(ctx context.Context, in models.AttendanceInput, instructorID uuid.UUID) (*models.AttendanceRecord, error) {
	db := s.db.WithContext(ctx)

	owned, err := s.ownsStudent(db, in.StudentID, instructorID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrNotFound
	}

	record := in.ToModel()
	if err := db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("insert attendance: %w", err)
	}
	return &record, nil
}

func (s *DatabaseStorage) UpdateAttendanceRecord(ctx context.Context, id uuid.UUID, patch models.AttendancePatch, instructorID uuid.UUID) (*models.AttendanceRecord, error) {
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

	res := db.Model(&models.AttendanceRecord{}).
		Where("id = ? AND student_id IN (?)", id, s.ownedStudents(instructorID)).
		Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("update attendance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var record models.AttendanceRecord
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &record, nil
}

// GetTodaysClasses returns active students whose weekly slot falls on today,
// earliest start first, with today's attendance when it has been recorded.
func (s *DatabaseStorage) GetTodaysClasses(ctx context.Context, instructorID uuid.UUID) ([]models.TodaysClass, error) {
	db := s.db.WithContext(ctx)
	now := s.Today()
	today := models.DateOf(now)

	var students []models.Student
	err := db.Preload("ClassSchedule").
		Joins("JOIN class_schedules ON class_schedules.student_id = students.id").
		Where("students.instructor_id = ? AND students.status = ? AND class_schedules.day_of_week = ?",
			instructorID, models.StudentActive, int(now.Weekday())).
		Order("class_schedules.start_time asc").
		Order("students.name asc").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("list today's classes: %w", err)
	}

	attendance := make(map[uuid.UUID]models.AttendanceRecord, len(students))
	if len(students) > 0 {
		var records []models.AttendanceRecord
		err := db.Where("student_id IN ? AND class_date = ?", studentIDs(students), today).
			Order("created_at asc").
			Find(&records).Error
		if err != nil {
			return nil, fmt.Errorf("today's attendance: %w", err)
		}
		for _, r := range records {
			attendance[r.StudentID] = r
		}
	}

	result := make([]models.TodaysClass, 0, len(students))
	for _, st := range students {
		row := models.TodaysClass{Student: st}
		if r, ok := attendance[st.ID]; ok {
			record := r
			row.Attendance = &record
		}
		result = append(result, row)
	}
	return result, nil
}

func (s *DatabaseStorage) studentsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Student, error) {
	byID := make(map[uuid.UUID]models.Student, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	var students []models.Student
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&students).Error; err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}
	for _, st := range students {
		byID[st.ID] = st
	}
	return byID, nil
}

func attendanceStudentIDs(records []models.AttendanceRecord) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(records))
	ids := make([]uuid.UUID, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.StudentID]; ok {
			continue
		}
		seen[r.StudentID] = struct{}{}
		ids = append(ids, r.StudentID)
	}
	return ids
}
