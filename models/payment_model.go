package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"

	// PaymentOverdue is never stored; it is derived from a pending record
	// whose due date has passed.
	PaymentOverdue = "overdue"
)

type PaymentRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID   uuid.UUID `gorm:"type:uuid;not null;index" json:"studentId"`
	Amount      Amount    `gorm:"not null" json:"amount"`
	PaymentDate Date      `gorm:"not null" json:"paymentDate"`
	DueDate     Date      `gorm:"not null;index" json:"dueDate"`
	Status      string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentType string    `gorm:"size:50;not null" json:"paymentType"`
	Notes       *string   `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *PaymentRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = PaymentPending
	}
	return nil
}

// IsOverdue reports whether the payment is still pending after its due date.
func (p PaymentRecord) IsOverdue(today Date) bool {
	return p.Status == PaymentPending && p.DueDate.Before(today)
}

type PaymentWithStudent struct {
	PaymentRecord
	Student Student `json:"student"`
}

type PaymentInput struct {
	StudentID   uuid.UUID `json:"studentId" validate:"required"`
	Amount      *Amount   `json:"amount" validate:"required,amount"`
	PaymentDate Date      `json:"paymentDate" validate:"required"`
	DueDate     Date      `json:"dueDate" validate:"required"`
	Status      string    `json:"status" validate:"omitempty,oneof=paid pending"`
	PaymentType string    `json:"paymentType" validate:"required,max=50"`
	Notes       *string   `json:"notes"`
}

func (in PaymentInput) ToModel() PaymentRecord {
	status := in.Status
	if status == "" {
		status = PaymentPending
	}
	return PaymentRecord{
		StudentID:   in.StudentID,
		Amount:      *in.Amount,
		PaymentDate: in.PaymentDate,
		DueDate:     in.DueDate,
		Status:      status,
		PaymentType: in.PaymentType,
		Notes:       in.Notes,
	}
}

type PaymentPatch struct {
	StudentID   *uuid.UUID `json:"studentId"`
	Amount      *Amount    `json:"amount" validate:"omitempty,amount"`
	PaymentDate *Date      `json:"paymentDate"`
	DueDate     *Date      `json:"dueDate"`
	Status      *string    `json:"status" validate:"omitempty,oneof=paid pending"`
	PaymentType *string    `json:"paymentType" validate:"omitempty,min=1,max=50"`
	Notes       *string    `json:"notes"`
}

func (p PaymentPatch) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.StudentID != nil {
		changes["student_id"] = *p.StudentID
	}
	if p.Amount != nil {
		changes["amount"] = *p.Amount
	}
	if p.PaymentDate != nil {
		changes["payment_date"] = *p.PaymentDate
	}
	if p.DueDate != nil {
		changes["due_date"] = *p.DueDate
	}
	if p.Status != nil {
		changes["status"] = *p.Status
	}
	if p.PaymentType != nil {
		changes["payment_type"] = *p.PaymentType
	}
	if p.Notes != nil {
		changes["notes"] = *p.Notes
	}
	return changes
}
