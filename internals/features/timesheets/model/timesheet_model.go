package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TimesheetModel is one submitted day of work. A user has at most one row
// per calendar day; submissions for an existing day overwrite it.
type TimesheetModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_timesheets_user_date" json:"user_id"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:idx_timesheets_user_date" json:"date"`

	HoursWorked   float64 `gorm:"not null;default:0" json:"hours_worked"`
	WorkCompleted string  `gorm:"type:text" json:"work_completed"`

	// Work holds the per-project line items as JSON ([]grid.WorkItem shape).
	Work datatypes.JSON `gorm:"type:jsonb" json:"work"`

	IsHalfDay bool `gorm:"not null;default:false" json:"is_half_day"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TimesheetModel) TableName() string {
	return "timesheets"
}

func (m *TimesheetModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
