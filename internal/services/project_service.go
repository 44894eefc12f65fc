package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prosync/prosync-api/internal/models"
	"github.com/prosync/prosync-api/internal/repository"
	"github.com/prosync/prosync-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidProjectName = errors.New("project name cannot be empty")
	ErrNotProjectOwner    = errors.New("only the project owner can perform this action")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	OwnerID     uint64
	Name        string
	Description string
	Technology  string
	ArchiveURL  string
	CoverURL    string
	IsPrivate   bool
}

// CreateProject creates a project with a unique slug derived from its name.
// The slug never changes afterwards.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidProjectName
	}

	slug := utils.Slugify(input.Name)
	if slug == "" {
		slug = utils.UniqueSlug("")
	}
	taken, err := s.projectRepo.SlugExists(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		slug = utils.UniqueSlug(slug)
	}

	project := &models.Project{
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		Technology:  input.Technology,
		ArchiveURL:  input.ArchiveURL,
		CoverURL:    input.CoverURL,
		IsPrivate:   input.IsPrivate,
	}

	if err := s.projectRepo.Create(project); err != nil {
		// Slug collision under concurrency; retry once with a random suffix.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			project.Slug = utils.UniqueSlug(slug)
			if err := s.projectRepo.Create(project); err != nil {
				return nil, fmt.Errorf("failed to create project: %w", err)
			}
			return project, nil
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetProject returns a project by ID.
func (s *ProjectService) GetProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// GetProjectBySlug returns a project by its slug.
func (s *ProjectService) GetProjectBySlug(slug string) (*models.Project, error) {
	project, err := s.projectRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// ListMine lists the caller's own projects, pinned first.
func (s *ProjectService) ListMine(ownerID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Search lists public projects matching the query.
func (s *ProjectService) Search(query string, offset, limit int) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.Search(query, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search projects: %w", err)
	}
	return projects, total, nil
}

// UpdateProjectInput represents a partial project update. The slug is
// immutable and deliberately absent.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Technology  *string
	ArchiveURL  *string
	CoverURL    *string
	IsPrivate   *bool
	IsPinned    *bool
}

// UpdateProject applies a partial update after verifying ownership.
func (s *ProjectService) UpdateProject(projectID, actorID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != actorID {
		return nil, ErrNotProjectOwner
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidProjectName
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Technology != nil {
		project.Technology = *input.Technology
	}
	if input.ArchiveURL != nil {
		project.ArchiveURL = *input.ArchiveURL
	}
	if input.CoverURL != nil {
		project.CoverURL = *input.CoverURL
	}
	if input.IsPrivate != nil {
		project.IsPrivate = *input.IsPrivate
	}
	if input.IsPinned != nil {
		project.IsPinned = *input.IsPinned
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes a project and everything attached to it.
func (s *ProjectService) DeleteProject(projectID, actorID uint64) error {
	project, err := s.GetProject(projectID)
	if err != nil {
		return err
	}
	if project.OwnerID != actorID {
		return ErrNotProjectOwner
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// ListCollaborators lists the collaborations of a project.
func (s *ProjectService) ListCollaborators(projectID uint64) ([]models.Collaboration, error) {
	if _, err := s.GetProject(projectID); err != nil {
		return nil, err
	}

	collaborations, err := s.projectRepo.ListCollaborators(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collaborators: %w", err)
	}
	return collaborations, nil
}

// AddCollaborator lets the owner attach a user to the project directly,
// bypassing the invitation workflow. Get-or-create semantics; adding an
// existing collaborator is not an error.
func (s *ProjectService) AddCollaborator(projectID, actorID, userID uint64, role string) (bool, error) {
	project, err := s.GetProject(projectID)
	if err != nil {
		return false, err
	}
	if project.OwnerID != actorID {
		return false, ErrNotProjectOwner
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("failed to find user: %w", err)
	}

	created, err := s.projectRepo.GetOrCreateCollaboration(projectID, userID, role)
	if err != nil {
		return false, fmt.Errorf("failed to add collaborator: %w", err)
	}
	return created, nil
}
