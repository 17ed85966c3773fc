package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"staffhub_backend/internals/features/projects/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateProjectRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=150"`
	Description string  `json:"description" validate:"omitempty,max=4000"`
	Status      string  `json:"status" validate:"omitempty,oneof=active on-hold completed"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
}

func (r *CreateProjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Status = strings.TrimSpace(strings.ToLower(r.Status))
}

func parseOptionalDate(raw *string, field string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(*raw))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, field+" must be YYYY-MM-DD")
	}
	return &t, nil
}

func (r *CreateProjectRequest) ToModel() (*model.ProjectModel, error) {
	start, err := parseOptionalDate(r.StartDate, "startDate")
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate(r.EndDate, "endDate")
	if err != nil {
		return nil, err
	}

	status := r.Status
	if status == "" {
		status = model.ProjectStatusActive
	}
	return &model.ProjectModel{
		Name:        r.Name,
		Description: r.Description,
		Status:      status,
		StartDate:   start,
		EndDate:     end,
	}, nil
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=4000"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=active on-hold completed"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
}

func (r *UpdateProjectRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.Description != nil {
		v := strings.TrimSpace(*r.Description)
		r.Description = &v
	}
	if r.Status != nil {
		v := strings.TrimSpace(strings.ToLower(*r.Status))
		r.Status = &v
	}
}

// ApplyToModel writes present fields onto the loaded project.
func (r *UpdateProjectRequest) ApplyToModel(m *model.ProjectModel) error {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.Status != nil {
		m.Status = *r.Status
	}
	start, err := parseOptionalDate(r.StartDate, "startDate")
	if err != nil {
		return err
	}
	if start != nil {
		m.StartDate = start
	}
	end, err := parseOptionalDate(r.EndDate, "endDate")
	if err != nil {
		return err
	}
	if end != nil {
		m.EndDate = end
	}
	return nil
}

// AddMemberRequest carries a typed key/value mapping for the assignment,
// validated before it hits storage.
type AddMemberRequest struct {
	UserID         string            `json:"userId" validate:"required,uuid4"`
	AdditionalInfo map[string]string `json:"additionalInfo" validate:"omitempty,max=20,dive,keys,min=1,max=50,endkeys,max=500"`
}

func (r *AddMemberRequest) InfoAsJSONMap() datatypes.JSONMap {
	if len(r.AdditionalInfo) == 0 {
		return datatypes.JSONMap{}
	}
	m := make(datatypes.JSONMap, len(r.AdditionalInfo))
	for k, v := range r.AdditionalInfo {
		m[k] = v
	}
	return m
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type ProjectMemberResponse struct {
	UserID         string            `json:"userId"`
	UserName       string            `json:"userName,omitempty"`
	AdditionalInfo map[string]string `json:"additionalInfo,omitempty"`
}

type ProjectResponse struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Status      string                  `json:"status"`
	StartDate   string                  `json:"startDate,omitempty"`
	EndDate     string                  `json:"endDate,omitempty"`
	Members     []ProjectMemberResponse `json:"members,omitempty"`
}

func ToProjectResponse(m *model.ProjectModel, names map[string]string) ProjectResponse {
	resp := ProjectResponse{
		ID:          m.ID.String(),
		Name:        m.Name,
		Description: m.Description,
		Status:      m.Status,
	}
	if m.StartDate != nil {
		resp.StartDate = m.StartDate.UTC().Format("2006-01-02")
	}
	if m.EndDate != nil {
		resp.EndDate = m.EndDate.UTC().Format("2006-01-02")
	}
	for i := range m.Members {
		member := ProjectMemberResponse{
			UserID:   m.Members[i].UserID.String(),
			UserName: names[m.Members[i].UserID.String()],
		}
		if len(m.Members[i].AdditionalInfo) > 0 {
			member.AdditionalInfo = make(map[string]string, len(m.Members[i].AdditionalInfo))
			for k, v := range m.Members[i].AdditionalInfo {
				if s, ok := v.(string); ok {
					member.AdditionalInfo[k] = s
				}
			}
		}
		resp.Members = append(resp.Members, member)
	}
	return resp
}
