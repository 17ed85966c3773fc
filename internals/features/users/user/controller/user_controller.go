package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffhub_backend/internals/constants"
	"staffhub_backend/internals/features/users/user/dto"
	"staffhub_backend/internals/features/users/user/model"
	helper "staffhub_backend/internals/helpers"
)

type UserController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		DB:       db,
		validate: validator.New(),
	}
}

/* =======================================================
   READS
   ======================================================= */

// GetAll handles GET /users/get_all (admin only, paginated).
// ?search= matches name or email, ?role= and ?active= filter.
func (ctrl *UserController) GetAll(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.UserModel{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		if !constants.Role(role).Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "role must be one of: admin, emp")
		}
		q = q.Where("role = ?", role)
	}
	if active := strings.TrimSpace(c.Query("active")); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count users: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	var users []model.UserModel
	if err := q.Omit("dp_image").
		Order("full_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&users).Error; err != nil {
		log.Printf("[ERROR] list users: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.ToUserResponse(&users[i]))
	}

	return helper.JsonSuccess(c, "OK", fiber.Map{
		"users":      items,
		"pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// GetUser handles GET /users/get_user. Without ?userId it returns the
// caller's own profile; admins may pass another user's ID.
func (ctrl *UserController) GetUser(c *fiber.Ctx) error {
	targetID, err := helper.ResolveTargetUserID(c)
	if err != nil {
		return err
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Omit("dp_image").
		First(&user, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		log.Printf("[ERROR] get user: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	// Omit("dp_image") leaves DpPath blank, so check for a picture separately.
	// A failed check degrades to an empty dp instead of failing the profile.
	var hasDp int64
	if err := ctrl.DB.WithContext(c.UserContext()).Model(&model.UserModel{}).
		Where("id = ? AND dp_image IS NOT NULL AND length(dp_image) > 0", targetID).
		Count(&hasDp).Error; err != nil {
		log.Printf("[ERROR] dp lookup for %s: %v", targetID, err)
		hasDp = 0
	}
	resp := dto.ToUserResponse(&user)
	if hasDp > 0 {
		resp.Dp = "/users/dp/" + user.ID.String()
	}

	return helper.JsonSuccess(c, "OK", resp)
}

/* =======================================================
   MUTATIONS
   ======================================================= */

// Update handles PUT /users/update. Employees may edit their own contact
// fields; role, isActive and joinedAt changes require an admin.
func (ctrl *UserController) Update(c *fiber.Ctx) error {
	targetID, err := helper.ResolveTargetUserID(c)
	if err != nil {
		return err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctrl.validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.TouchesAdminFields() && role != constants.RoleAdmin {
		return helper.JsonError(c, fiber.StatusForbidden, "Only admins may change role, status or joining date")
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Omit("dp_image").
		First(&user, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		log.Printf("[ERROR] load user: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}

	if err := req.ApplyToModel(&user); err != nil {
		return err
	}

	err = ctrl.DB.WithContext(c.UserContext()).Model(&model.UserModel{}).
		Where("id = ?", targetID).
		Updates(map[string]interface{}{
			"full_name": user.FullName,
			"email":     user.Email,
			"position":  user.Position,
			"phone":     user.Phone,
			"joined_at": user.JoinedAt,
			"role":      user.Role,
			"is_active": user.IsActive,
		}).Error
	if err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return helper.JsonError(c, fiber.StatusConflict, "Email is already in use")
		}
		log.Printf("[ERROR] update user: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}

	return helper.JsonSuccess(c, "User updated", dto.ToUserResponse(&user))
}

// Delete handles DELETE /users/delete?userId= (admin only). Accounts are
// deactivated, never removed, so timesheet and leave history stays intact.
func (ctrl *UserController) Delete(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("userId"))
	if raw == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "userId is required")
	}
	targetID, err := uuid.Parse(raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "userId must be a valid UUID")
	}

	selfID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	if targetID == selfID {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "You cannot deactivate your own account")
	}

	res := ctrl.DB.WithContext(c.UserContext()).Model(&model.UserModel{}).
		Where("id = ? AND is_active = ?", targetID, true).
		Update("is_active", false)
	if res.Error != nil {
		log.Printf("[ERROR] deactivate user: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to deactivate user")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Active user not found")
	}

	return helper.JsonSuccess(c, "User deactivated", nil)
}

/* =======================================================
   PROFILE PICTURE
   ======================================================= */

// UploadDp handles POST /users/upload_dp (multipart field "dp").
// The image is normalized to a 256x256 WebP before storage.
func (ctrl *UserController) UploadDp(c *fiber.Ctx) error {
	targetID, err := helper.ResolveTargetUserID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("dp")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Multipart field 'dp' is required")
	}

	webpBytes, err := helper.ConvertProfileImageToWebP(fileHeader)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	res := ctrl.DB.WithContext(c.UserContext()).Model(&model.UserModel{}).
		Where("id = ?", targetID).
		Updates(map[string]interface{}{
			"dp_image":        webpBytes,
			"dp_content_type": "image/webp",
		})
	if res.Error != nil {
		log.Printf("[ERROR] store dp: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store profile picture")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	return helper.JsonSuccess(c, "Profile picture updated", fiber.Map{
		"dp": "/users/dp/" + targetID.String(),
	})
}

// ServeDp handles GET /users/dp/:id and streams the stored WebP.
func (ctrl *UserController) ServeDp(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id must be a valid UUID")
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Select("id", "dp_image", "dp_content_type").
		First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		log.Printf("[ERROR] load dp: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load profile picture")
	}
	if len(user.DpImage) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "No profile picture uploaded")
	}

	contentType := user.DpContentType
	if contentType == "" {
		contentType = "image/webp"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "private, max-age=300")
	return c.Send(user.DpImage)
}
