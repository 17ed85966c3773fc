package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"staffhub_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// UpdateUserRequest uses pointers so only submitted fields are applied.
// Role and IsActive are admin fields; the controller enforces that.
type UpdateUserRequest struct {
	FullName *string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Position *string `json:"position,omitempty" validate:"omitempty,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	JoinedAt *string `json:"joinedAt,omitempty"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin emp"`
	IsActive *bool   `json:"isActive,omitempty"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.FullName != nil {
		v := strings.TrimSpace(*r.FullName)
		r.FullName = &v
	}
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &v
	}
	if r.Position != nil {
		v := strings.TrimSpace(*r.Position)
		r.Position = &v
	}
	if r.Phone != nil {
		v := strings.TrimSpace(*r.Phone)
		r.Phone = &v
	}
	if r.Role != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Role))
		r.Role = &v
	}
}

// TouchesAdminFields reports whether the request changes fields only
// admins may edit.
func (r *UpdateUserRequest) TouchesAdminFields() bool {
	return r.Role != nil || r.IsActive != nil || r.JoinedAt != nil
}

func (r *UpdateUserRequest) ApplyToModel(u *model.UserModel) error {
	if r.FullName != nil {
		u.FullName = *r.FullName
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.Position != nil {
		u.Position = *r.Position
	}
	if r.Phone != nil {
		u.Phone = *r.Phone
	}
	if r.JoinedAt != nil && strings.TrimSpace(*r.JoinedAt) != "" {
		t, err := time.Parse("2006-01-02", strings.TrimSpace(*r.JoinedAt))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "joinedAt must be YYYY-MM-DD")
		}
		u.JoinedAt = &t
	}
	if r.Role != nil {
		u.Role = *r.Role
	}
	if r.IsActive != nil {
		u.IsActive = *r.IsActive
	}
	return nil
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Position string `json:"position,omitempty"`
	Phone    string `json:"phone,omitempty"`
	JoinedAt string `json:"joinedAt,omitempty"`
	Dp       string `json:"dp,omitempty"`
	IsActive bool   `json:"isActive"`
}

func ToUserResponse(u *model.UserModel) UserResponse {
	resp := UserResponse{
		ID:       u.ID.String(),
		Name:     u.FullName,
		Email:    u.Email,
		Role:     u.Role,
		Position: u.Position,
		Phone:    u.Phone,
		Dp:       u.DpPath(),
		IsActive: u.IsActive,
	}
	if u.JoinedAt != nil {
		resp.JoinedAt = u.JoinedAt.UTC().Format("2006-01-02")
	}
	return resp
}
