package model

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffhub_backend/internals/constants"
)

// Validator instance
var validate = validator.New()

// UserModel represents the users table (every employee and admin account).
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName string    `gorm:"size:100;not null" json:"name" validate:"required,min=3,max=100"`
	Email    string    `gorm:"size:255;uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string    `gorm:"not null" json:"-" validate:"required,min=8"`
	GoogleID *string   `gorm:"size:255" json:"google_id,omitempty"`
	Role     string    `gorm:"type:varchar(20);not null;default:'emp'" json:"role"`

	Position string     `gorm:"size:100" json:"position,omitempty"`
	Phone    string     `gorm:"size:30" json:"phone,omitempty"`
	JoinedAt *time.Time `gorm:"type:date" json:"joined_at,omitempty"`

	// Profile picture, normalized to WebP on upload. Served via /users/dp/:id.
	DpImage       []byte `gorm:"type:bytea" json:"-"`
	DpContentType string `gorm:"size:50" json:"-"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate fills the UUID so the model works on any database backend.
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SetDefaultValues ensures defaults before validation.
func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = constants.RoleEmployee.String()
	}
}

// DpPath is the relative URL the SPA stores under its "dp" session key.
// Empty when no picture has been uploaded.
func (u *UserModel) DpPath() string {
	if len(u.DpImage) == 0 {
		return ""
	}
	return "/users/dp/" + u.ID.String()
}

// Validate checks the struct against its validate tags plus the role enum.
func (u *UserModel) Validate() error {
	u.SetDefaultValues()

	if !constants.Role(u.Role).Valid() {
		return errors.New("role must be one of: admin, emp")
	}
	if err := validate.Struct(u); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError flattens validator errors into one readable message.
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var sb strings.Builder
	for _, fieldErr := range validationErrs {
		if sb.Len() > 0 {
			sb.WriteString("; ")
		}
		switch fieldErr.Tag() {
		case "required":
			sb.WriteString(fieldErr.Field() + " is required")
		case "email":
			sb.WriteString("email format is not valid")
		case "min":
			sb.WriteString(fieldErr.Field() + " must be at least " + fieldErr.Param() + " characters")
		case "max":
			sb.WriteString(fieldErr.Field() + " must be under " + fieldErr.Param() + " characters")
		default:
			sb.WriteString(fieldErr.Field() + " has an invalid format")
		}
	}
	return errors.New(sb.String())
}
