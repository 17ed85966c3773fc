package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffhub_backend/internals/features/projects/dto"
	"staffhub_backend/internals/features/projects/model"
	userModel "staffhub_backend/internals/features/users/user/model"
	helper "staffhub_backend/internals/helpers"
)

type ProjectController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewProjectController(db *gorm.DB) *ProjectController {
	return &ProjectController{
		DB:       db,
		validate: validator.New(),
	}
}

func parseProjectID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query("projectId"))
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "projectId is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "projectId must be a valid UUID")
	}
	return id, nil
}

// memberNames batch-resolves user full names so the response can carry
// them without N+1 lookups.
func (ctrl *ProjectController) memberNames(c *fiber.Ctx, projects []model.ProjectModel) (map[string]string, error) {
	idSet := map[uuid.UUID]struct{}{}
	for i := range projects {
		for j := range projects[i].Members {
			idSet[projects[i].Members[j].UserID] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return map[string]string{}, nil
	}
	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var users []userModel.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Select("id", "full_name").
		Where("id IN ?", ids).
		Find(&users).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for i := range users {
		names[users[i].ID.String()] = users[i].FullName
	}
	return names, nil
}

/* =======================================================
   PROJECT CRUD
   ======================================================= */

// Create handles POST /projects/create (admin only).
func (ctrl *ProjectController) Create(c *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctrl.validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	project, err := req.ToModel()
	if err != nil {
		return err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(project).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return helper.JsonError(c, fiber.StatusConflict, "A project with that name already exists")
		}
		log.Printf("[ERROR] create project: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create project")
	}

	return helper.JsonSuccessWithCode(c, fiber.StatusCreated, "Project created", dto.ToProjectResponse(project, nil))
}

// GetAll handles GET /projects/get_all with pagination.
func (ctrl *ProjectController) GetAll(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.ProjectModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count projects: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch projects")
	}

	var projects []model.ProjectModel
	if err := q.Preload("Members").
		Order("created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&projects).Error; err != nil {
		log.Printf("[ERROR] list projects: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch projects")
	}

	names, err := ctrl.memberNames(c, projects)
	if err != nil {
		log.Printf("[ERROR] resolve member names: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch projects")
	}

	items := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		items = append(items, dto.ToProjectResponse(&projects[i], names))
	}

	return helper.JsonSuccess(c, "OK", fiber.Map{
		"projects":   items,
		"pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// GetProject handles GET /projects/get_project?projectId=...
func (ctrl *ProjectController) GetProject(c *fiber.Ctx) error {
	id, err := parseProjectID(c)
	if err != nil {
		return err
	}

	var project model.ProjectModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Preload("Members").
		First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Project not found")
		}
		log.Printf("[ERROR] get project: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch project")
	}

	names, err := ctrl.memberNames(c, []model.ProjectModel{project})
	if err != nil {
		log.Printf("[ERROR] resolve member names: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch project")
	}

	return helper.JsonSuccess(c, "OK", dto.ToProjectResponse(&project, names))
}

// Update handles PUT /projects/update?projectId=... (admin only).
func (ctrl *ProjectController) Update(c *fiber.Ctx) error {
	id, err := parseProjectID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctrl.validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var project model.ProjectModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Project not found")
		}
		log.Printf("[ERROR] load project: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update project")
	}

	if err := req.ApplyToModel(&project); err != nil {
		return err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&project).Error; err != nil {
		log.Printf("[ERROR] save project: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update project")
	}

	return helper.JsonSuccess(c, "Project updated", dto.ToProjectResponse(&project, nil))
}

// Delete handles DELETE /projects/delete?projectId=... (admin only).
// Member rows go with the project.
func (ctrl *ProjectController) Delete(c *fiber.Ctx) error {
	id, err := parseProjectID(c)
	if err != nil {
		return err
	}

	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&model.ProjectMemberModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.ProjectModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Project not found")
		}
		log.Printf("[ERROR] delete project: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete project")
	}

	return helper.JsonSuccess(c, "Project deleted", nil)
}

/* =======================================================
   MEMBERSHIP
   ======================================================= */

// AddMember handles POST /projects/add_member?projectId=... (admin only).
func (ctrl *ProjectController) AddMember(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return err
	}

	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "userId must be a valid UUID")
	}

	db := ctrl.DB.WithContext(c.UserContext())

	var project model.ProjectModel
	if err := db.Select("id").First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Project not found")
		}
		log.Printf("[ERROR] load project: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to add member")
	}

	var user userModel.UserModel
	if err := db.Select("id", "is_active").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		log.Printf("[ERROR] load user: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to add member")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Cannot assign a deactivated user")
	}

	member := model.ProjectMemberModel{
		ProjectID:      projectID,
		UserID:         userID,
		AdditionalInfo: req.InfoAsJSONMap(),
	}
	if err := db.Create(&member).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return helper.JsonError(c, fiber.StatusConflict, "User is already a member of this project")
		}
		log.Printf("[ERROR] add member: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to add member")
	}

	return helper.JsonSuccessWithCode(c, fiber.StatusCreated, "Member added", fiber.Map{
		"projectId": projectID.String(),
		"userId":    userID.String(),
	})
}

// RemoveMember handles DELETE /projects/remove_member?projectId=...&userId=... (admin only).
func (ctrl *ProjectController) RemoveMember(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return err
	}
	rawUser := strings.TrimSpace(c.Query("userId"))
	if rawUser == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "userId is required")
	}
	userID, err := uuid.Parse(rawUser)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "userId must be a valid UUID")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&model.ProjectMemberModel{})
	if res.Error != nil {
		log.Printf("[ERROR] remove member: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to remove member")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Membership not found")
	}

	return helper.JsonSuccess(c, "Member removed", nil)
}
