package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HolidayModel is one company-observed holiday.
type HolidayModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Date time.Time `gorm:"type:date;not null;uniqueIndex" json:"date"`
	Name string    `gorm:"size:150;not null" json:"name"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HolidayModel) TableName() string {
	return "holidays"
}

func (m *HolidayModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ISODate is the canonical YYYY-MM-DD form used by the grid and the
// leave-date math.
func (m *HolidayModel) ISODate() string {
	return m.Date.UTC().Format("2006-01-02")
}
