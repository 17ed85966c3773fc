package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"staffhub_backend/internals/configs"
	authDTO "staffhub_backend/internals/features/users/auth/dto"
	authModel "staffhub_backend/internals/features/users/auth/model"
	authService "staffhub_backend/internals/features/users/auth/service"
	userModel "staffhub_backend/internals/features/users/user/model"
	helper "staffhub_backend/internals/helpers"
)

type AuthController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, validate: validator.New()}
}

/* ===================== LOGIN ===================== */
// POST /users/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("email = ?", req.Email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// same message as a bad password, do not leak which emails exist
			return helper.JsonError(c, fiber.StatusUnauthorized, "Email or password is incorrect")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if !authService.CheckPassword(user.Password, req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email or password is incorrect")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	token, err := authService.IssueAccessToken(&user)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[AUTH] login ok user=%s role=%s", user.ID, user.Role)
	return helper.JsonSuccess(c, "Login successful", authDTO.NewSessionResponse(token, &user))
}

/* ===================== GOOGLE LOGIN ===================== */
// POST /users/login_google
func (ctrl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req authDTO.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if configs.GoogleClientID == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Google sign-in is not configured")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google token could not be verified")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google token could not be decoded")
	}

	email := strings.ToLower(strings.TrimSpace(claimSet.Email))
	var user userModel.UserModel
	err = ctrl.DB.WithContext(c.UserContext()).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// accounts are provisioned by an admin; Google sign-in never self-registers
			return helper.JsonError(c, fiber.StatusUnauthorized, "No account exists for this Google identity")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	// remember the Google subject on first federated login
	if user.GoogleID == nil || *user.GoogleID == "" {
		sub := claimSet.Sub
		if err := ctrl.DB.Model(&user).Update("google_id", sub).Error; err != nil {
			log.Printf("[AUTH] could not persist google_id for %s: %v", user.ID, err)
		}
	}

	token, err := authService.IssueAccessToken(&user)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonSuccess(c, "Login successful", authDTO.NewSessionResponse(token, &user))
}

/* ===================== LOGOUT ===================== */
// POST /users/logout
// Blacklists the presented token. Idempotent: logging out twice is still 200,
// so the client can clear its session no matter what this call returns.
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	tokenString := helper.GetRawAccessToken(c)
	if tokenString == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "No token supplied")
	}

	expiredAt := time.Now().Add(24 * time.Hour)
	if claims, err := authService.ParseClaims(tokenString); err == nil {
		if exp := authService.TokenExpiry(claims); !exp.IsZero() {
			expiredAt = exp
		}
	}

	entry := authModel.TokenBlacklist{Token: tokenString, ExpiredAt: expiredAt}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&entry).Error; err != nil {
		var existing authModel.TokenBlacklist
		if lookupErr := ctrl.DB.Where("token = ?", tokenString).First(&existing).Error; lookupErr == nil {
			return helper.JsonSuccess(c, "Logged out", nil)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to revoke token")
	}

	return helper.JsonSuccess(c, "Logged out", nil)
}

/* ===================== REGISTER (admin) ===================== */
// POST /users/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	input := req.ToModel()
	if err := input.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	passwordHash, err := authService.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}
	input.Password = passwordHash

	if err := ctrl.DB.WithContext(c.UserContext()).Create(input).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "An account with this email already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	log.Printf("[AUTH] registered user=%s role=%s", input.ID, input.Role)
	return helper.JsonSuccessWithCode(c, fiber.StatusCreated, "Account created", fiber.Map{
		"userId": input.ID,
		"email":  input.Email,
		"role":   input.Role,
	})
}

/* ===================== ME ===================== */
// GET /users/me
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user userModel.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Account no longer exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return helper.JsonSuccess(c, "OK", fiber.Map{
		"userId":   user.ID,
		"name":     user.FullName,
		"email":    user.Email,
		"role":     user.Role,
		"position": user.Position,
		"dp":       user.DpPath(),
	})
}

/* ===================== CHANGE PASSWORD ===================== */
// POST /users/change_password
func (ctrl *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req authDTO.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if !authService.CheckPassword(user.Password, req.OldPassword) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Old password is incorrect")
	}

	newHash, err := authService.HashPassword(req.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}
	if err := ctrl.DB.Model(&user).Update("password", newHash).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return helper.JsonSuccess(c, "Password updated", nil)
}
