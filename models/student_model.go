package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StudentActive   = "active"
	StudentInactive = "inactive"
	StudentTrial    = "trial"
)

type Student struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InstructorID uuid.UUID `gorm:"type:uuid;not null;index" json:"instructorId"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	Email        *string   `gorm:"size:255" json:"email"`
	Phone        *string   `gorm:"size:50" json:"phone"`
	Status       string    `gorm:"size:20;not null;default:'active'" json:"status"`
	Subject      *string   `gorm:"size:100" json:"subject"`
	Notes        *string   `gorm:"type:text" json:"notes"`

	ClassSchedule *ClassSchedule `gorm:"foreignKey:StudentID" json:"classSchedule,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = StudentActive
	}
	return nil
}

// StudentWithScheduleAndPayment is one row of the student list.
type StudentWithScheduleAndPayment struct {
	Student
	RecentPayment *PaymentRecord `json:"recentPayment,omitempty"`
}

// TodaysClass is an active student scheduled today, with today's attendance
// when it has been marked.
type TodaysClass struct {
	Student
	Attendance *AttendanceRecord `json:"attendance,omitempty"`
}

type StudentInput struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Email   *string `json:"email" validate:"omitempty,email,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Status  string  `json:"status" validate:"omitempty,oneof=active inactive trial"`
	Subject *string `json:"subject" validate:"omitempty,max=100"`
	Notes   *string `json:"notes"`
}

func (in StudentInput) ToModel(instructorID uuid.UUID) Student {
	status := in.Status
	if status == "" {
		status = StudentActive
	}
	return Student{
		InstructorID: instructorID,
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Status:       status,
		Subject:      in.Subject,
		Notes:        in.Notes,
	}
}

// CreateStudentRequest is the {student, schedule} body of POST /api/students.
type CreateStudentRequest struct {
	Student  *StudentInput  `json:"student" validate:"required"`
	Schedule *ScheduleInput `json:"schedule" validate:"required"`
}

type StudentPatch struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email   *string `json:"email" validate:"omitempty,email,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Status  *string `json:"status" validate:"omitempty,oneof=active inactive trial"`
	Subject *string `json:"subject" validate:"omitempty,max=100"`
	Notes   *string `json:"notes"`
}

// Changes returns the column updates for the fields present in the patch.
func (p StudentPatch) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Email != nil {
		changes["email"] = *p.Email
	}
	if p.Phone != nil {
		changes["phone"] = *p.Phone
	}
	if p.Status != nil {
		changes["status"] = *p.Status
	}
	if p.Subject != nil {
		changes["subject"] = *p.Subject
	}
	if p.Notes != nil {
		changes["notes"] = *p.Notes
	}
	return changes
}
