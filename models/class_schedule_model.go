package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassSchedule is the weekly slot of a student. DayOfWeek is 0 for Sunday.
type ClassSchedule struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"studentId"`
	DayOfWeek int       `gorm:"not null" json:"dayOfWeek"`
	StartTime string    `gorm:"size:5;not null" json:"startTime"`
	Duration  int       `gorm:"not null" json:"duration"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (cs *ClassSchedule) BeforeCreate(tx *gorm.DB) error {
	if cs.ID == uuid.Nil {
		cs.ID = uuid.New()
	}
	return nil
}

type ScheduleInput struct {
	DayOfWeek *int   `json:"dayOfWeek" validate:"required,min=0,max=6"`
	StartTime string `json:"startTime" validate:"required,len=5,datetime=15:04"`
	Duration  int    `json:"duration" validate:"required,gt=0,lte=600"`
}

func (in ScheduleInput) ToModel(studentID uuid.UUID) ClassSchedule {
	return ClassSchedule{
		StudentID: studentID,
		DayOfWeek: *in.DayOfWeek,
		StartTime: in.StartTime,
		Duration:  in.Duration,
	}
}

type SchedulePatch struct {
	DayOfWeek *int    `json:"dayOfWeek" validate:"omitempty,min=0,max=6"`
	StartTime *string `json:"startTime" validate:"omitempty,len=5,datetime=15:04"`
	Duration  *int    `json:"duration" validate:"omitempty,gt=0,lte=600"`
}

func (p SchedulePatch) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.DayOfWeek != nil {
		changes["day_of_week"] = *p.DayOfWeek
	}
	if p.StartTime != nil {
		changes["start_time"] = *p.StartTime
	}
	if p.Duration != nil {
		changes["duration"] = *p.Duration
	}
	return changes
}
