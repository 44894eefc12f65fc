package dto

import (
	"time"

	"github.com/prosync/prosync-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	OwnerID     uint64    `json:"owner_id"`
	OwnerName   string    `json:"owner_name,omitempty"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Technology  string    `json:"technology,omitempty"`
	ArchiveURL  string    `json:"archive_url,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
	IsPrivate   bool      `json:"is_private"`
	IsPinned    bool      `json:"is_pinned"`
	CreatedAt   time.Time `json:"created_at"`
}

// CollaborationDTO represents a project collaborator in API responses
type CollaborationDTO struct {
	ProjectID uint64    `json:"project_id"`
	UserID    uint64    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		OwnerID:     project.OwnerID,
		OwnerName:   project.Owner.Username,
		Name:        project.Name,
		Slug:        project.Slug,
		Description: project.Description,
		Technology:  project.Technology,
		ArchiveURL:  project.ArchiveURL,
		CoverURL:    project.CoverURL,
		IsPrivate:   project.IsPrivate,
		IsPinned:    project.IsPinned,
		CreatedAt:   project.CreatedAt,
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}

// ToCollaborationDTO converts a Collaboration model to CollaborationDTO
func ToCollaborationDTO(collaboration models.Collaboration) CollaborationDTO {
	return CollaborationDTO{
		ProjectID: collaboration.ProjectID,
		UserID:    collaboration.UserID,
		Username:  collaboration.User.Username,
		Role:      collaboration.Role,
		JoinedAt:  collaboration.JoinedAt,
	}
}
