package dto

import (
	"strings"

	"staffhub_backend/internals/constants"
	userModel "staffhub_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// RegisterRequest is how an admin creates an employee account.
type RegisterRequest struct {
	FullName string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin emp"`
	Position string `json:"position" validate:"omitempty,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

func (r *RegisterRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.Role = strings.TrimSpace(strings.ToLower(r.Role))
	r.Position = strings.TrimSpace(r.Position)
	r.Phone = strings.TrimSpace(r.Phone)
}

// ToModel builds the model. Password is hashed in the controller, not here.
func (r *RegisterRequest) ToModel() *userModel.UserModel {
	return &userModel.UserModel{
		FullName: r.FullName,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
		Position: r.Position,
		Phone:    r.Phone,
	}
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

// SessionResponse mirrors the browser session store keys
// (token, userId, role, name, dp) plus the landing route for the role.
type SessionResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	Dp     string `json:"dp,omitempty"`
	Home   string `json:"home"`
}

func NewSessionResponse(token string, u *userModel.UserModel) SessionResponse {
	return SessionResponse{
		Token:  token,
		UserID: u.ID.String(),
		Role:   u.Role,
		Name:   u.FullName,
		Dp:     u.DpPath(),
		Home:   constants.Role(u.Role).HomePath(),
	}
}
