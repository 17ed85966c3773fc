package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Leave lifecycle. Decided applications are immutable.
const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

// Leave types and their yearly quotas.
const (
	LeaveTypeCasual = "casual"
	LeaveTypeSick   = "sick"
	LeaveTypeEarned = "earned"
)

var LeaveQuotas = map[string]int{
	LeaveTypeCasual: 12,
	LeaveTypeSick:   8,
	LeaveTypeEarned: 15,
}

// LeaveApplication is one request for a contiguous period off. ValidDates
// holds the actual chargeable days (Sundays and holidays inside the period
// excluded), precomputed at apply time so the grid and balance math agree.
type LeaveApplication struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	LeaveType string    `gorm:"type:varchar(30);not null" json:"leave_type"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	Reason    string    `gorm:"type:text" json:"reason"`

	// ValidDates is a JSON array of "YYYY-MM-DD" strings.
	ValidDates datatypes.JSON `gorm:"type:jsonb" json:"valid_dates"`

	Status       string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	DecidedBy    *uuid.UUID `gorm:"type:uuid" json:"decided_by,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
	DecisionNote string     `gorm:"type:text" json:"decision_note,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LeaveApplication) TableName() string {
	return "leave_applications"
}

func (m *LeaveApplication) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Decided reports whether the application has already been ruled on.
func (m *LeaveApplication) Decided() bool {
	return m.Status != LeaveStatusPending
}
