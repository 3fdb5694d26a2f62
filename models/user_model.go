package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an instructor account. Students are scoped to it by InstructorID.
type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email           *string   `gorm:"size:255;uniqueIndex" json:"email"`
	FirstName       *string   `gorm:"size:255" json:"firstName"`
	LastName        *string   `gorm:"size:255" json:"lastName"`
	ProfileImageURL *string   `gorm:"size:512" json:"profileImageUrl"`

	Students []Student `gorm:"foreignKey:InstructorID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type UpdateProfileRequest struct {
	FirstName       *string `json:"firstName" validate:"omitempty,max=255"`
	LastName        *string `json:"lastName" validate:"omitempty,max=255"`
	ProfileImageURL *string `json:"profileImageUrl" validate:"omitempty,url,max=512"`
}

// Apply copies the set fields onto u.
func (r UpdateProfileRequest) Apply(u *User) {
	if r.FirstName != nil {
		u.FirstName = r.FirstName
	}
	if r.LastName != nil {
		u.LastName = r.LastName
	}
	if r.ProfileImageURL != nil {
		u.ProfileImageURL = r.ProfileImageURL
	}
}
