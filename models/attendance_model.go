package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AttendanceAttended    = "attended"
	AttendanceMissed      = "missed"
	AttendanceMakeupTaken = "makeup_taken"
	AttendanceCanceled    = "canceled"
)

type AttendanceRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"studentId"`
	ClassDate Date      `gorm:"not null;index" json:"classDate"`
	Status    string    `gorm:"size:20;not null" json:"status"`
	Notes     *string   `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *AttendanceRecord) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type AttendanceWithStudent struct {
	AttendanceRecord
	Student Student `json:"student"`
}

type AttendanceInput struct {
	StudentID uuid.UUID `json:"studentId" validate:"required"`
	ClassDate Date      `json:"classDate" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=attended missed makeup_taken canceled"`
	Notes     *string   `json:"notes"`
}

func (in AttendanceInput) ToModel() AttendanceRecord {
	return AttendanceRecord{
		StudentID: in.StudentID,
		ClassDate: in.ClassDate,
		Status:    in.Status,
		Notes:     in.Notes,
	}
}

type AttendancePatch struct {
	StudentID *uuid.UUID `json:"studentId"`
	ClassDate *Date      `json:"classDate"`
	Status    *string    `json:"status" validate:"omitempty,oneof=attended missed makeup_taken canceled"`
	Notes     *string    `json:"notes"`
}

func (p AttendancePatch) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.StudentID != nil {
		changes["student_id"] = *p.StudentID
	}
	if p.ClassDate != nil {
		changes["class_date"] = *p.ClassDate
	}
	if p.Status != nil {
		changes["status"] = *p.Status
	}
	if p.Notes != nil {
		changes["notes"] = *p.Notes
	}
	return changes
}
