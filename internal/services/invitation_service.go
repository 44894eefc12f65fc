package services

import (
	"errors"
	"fmt"

	"github.com/prosync/prosync-api/internal/constants"
	"github.com/prosync/prosync-api/internal/models"
	"github.com/prosync/prosync-api/internal/repository"
	"gorm.io/gorm"
)

// InvitationOutcome describes what an invite call did; repeats are not errors.
type InvitationOutcome string

const (
	OutcomeInvited          InvitationOutcome = "INVITED"
	OutcomeInvitationExists InvitationOutcome = "ALREADY_SENT"
)

var (
	ErrInvitationNotFound    = errors.New("invitation not found")
	ErrNotInvitationReceiver = errors.New("only the invited user can respond to this invitation")
	ErrInvitationNotPending  = errors.New("invitation is no longer pending")
)

// InvitationService manages the project-invitation workflow. Acceptance has a
// side effect: the receiver becomes a collaborator on the project, created
// atomically with the status transition.
type InvitationService struct {
	invitationRepo      repository.InvitationRepository
	projectRepo         repository.ProjectRepository
	userRepo            repository.UserRepository
	notificationService *NotificationService
}

// NewInvitationService creates a new InvitationService
func NewInvitationService(
	invitationRepo repository.InvitationRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	notificationService *NotificationService,
) *InvitationService {
	return &InvitationService{
		invitationRepo:      invitationRepo,
		projectRepo:         projectRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

// Invite creates an invitation from the project owner to receiver. At most
// one invitation exists per (project, receiver); a repeat call surfaces the
// existing one. A rejected invitation is reopened so the owner can invite
// again later.
func (s *InvitationService) Invite(actorID, projectID, receiverID uint64) (*models.Invitation, InvitationOutcome, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrProjectNotFound
		}
		return nil, "", fmt.Errorf("failed to find project: %w", err)
	}

	if project.OwnerID != actorID {
		return nil, "", ErrNotProjectOwner
	}

	if _, err := s.userRepo.FindByID(receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	existing, err := s.invitationRepo.FindByProjectAndReceiver(projectID, receiverID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check existing invitation: %w", err)
	}

	if existing != nil {
		if existing.Status == models.StatusRejected {
			existing.Status = models.StatusPending
			if err := s.invitationRepo.Update(existing); err != nil {
				return nil, "", fmt.Errorf("failed to reopen invitation: %w", err)
			}
			s.notifyInvitation(actorID, receiverID, project)
			return existing, OutcomeInvited, nil
		}
		return existing, OutcomeInvitationExists, nil
	}

	invitation := &models.Invitation{
		ProjectID:  projectID,
		ReceiverID: receiverID,
		Status:     models.StatusPending,
	}
	if err := s.invitationRepo.Create(invitation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, findErr := s.invitationRepo.FindByProjectAndReceiver(projectID, receiverID)
			if findErr != nil {
				return nil, "", fmt.Errorf("failed to resolve duplicate invitation: %w", findErr)
			}
			return existing, OutcomeInvitationExists, nil
		}
		return nil, "", fmt.Errorf("failed to create invitation: %w", err)
	}

	s.notifyInvitation(actorID, receiverID, project)

	return invitation, OutcomeInvited, nil
}

func (s *InvitationService) notifyInvitation(actorID, receiverID uint64, project *models.Project) {
	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return
	}
	s.notificationService.RecordQuietly(
		actorID, receiverID,
		fmt.Sprintf("%s invited you to collaborate on %s", actor.Username, project.Name),
		nil, &project.ID,
	)
}

// Respond applies the receiver's decision. Accepting marks the invitation
// accepted and ensures the collaboration exists in the same transaction,
// then notifies the project owner; rejecting retains the row as REJECTED.
func (s *InvitationService) Respond(invitationID, actorID uint64, decision models.WorkflowDecision) (*models.Invitation, error) {
	invitation, err := s.invitationRepo.FindByID(invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}

	if invitation.ReceiverID != actorID {
		return nil, ErrNotInvitationReceiver
	}
	if invitation.Status != models.StatusPending {
		return nil, ErrInvitationNotPending
	}

	switch decision {
	case models.DecisionAccept:
		if err := s.invitationRepo.AcceptWithCollaboration(invitation, constants.DefaultCollaboratorRole); err != nil {
			return nil, fmt.Errorf("failed to accept invitation: %w", err)
		}

		actor, err := s.userRepo.FindByID(actorID)
		if err == nil {
			s.notificationService.RecordQuietly(
				actorID, invitation.Project.OwnerID,
				fmt.Sprintf("%s accepted your invitation to %s", actor.Username, invitation.Project.Name),
				nil, &invitation.ProjectID,
			)
		}
		return invitation, nil
	case models.DecisionReject:
		invitation.Status = models.StatusRejected
		if err := s.invitationRepo.Update(invitation); err != nil {
			return nil, fmt.Errorf("failed to reject invitation: %w", err)
		}
		return invitation, nil
	default:
		return nil, ErrInvalidDecision
	}
}

// ListPending lists the pending invitations addressed to a user.
func (s *InvitationService) ListPending(receiverID uint64) ([]models.Invitation, error) {
	invitations, err := s.invitationRepo.ListPendingForReceiver(receiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}
