package services

import (
	"errors"
	"fmt"

	"github.com/prosync/prosync-api/internal/models"
	"github.com/prosync/prosync-api/internal/repository"
	"gorm.io/gorm"
)

// ConnectionOutcome describes what a connect call did, since repeat calls are
// not errors.
type ConnectionOutcome string

const (
	OutcomeRequested        ConnectionOutcome = "REQUESTED"
	OutcomeAlreadyConnected ConnectionOutcome = "ALREADY_CONNECTED"
	OutcomeAlreadySent      ConnectionOutcome = "ALREADY_SENT"
	OutcomeRespondInstead   ConnectionOutcome = "RESPOND_INSTEAD"
)

// ConnectionStatus classifies the relationship between an observer and
// another user.
type ConnectionStatus string

const (
	ConnectionSelf            ConnectionStatus = "SELF"
	ConnectionConnected       ConnectionStatus = "CONNECTED"
	ConnectionPendingSent     ConnectionStatus = "PENDING_SENT"
	ConnectionPendingReceived ConnectionStatus = "PENDING_RECEIVED"
	ConnectionNone            ConnectionStatus = "NONE"
)

var (
	ErrSelfConnection     = errors.New("cannot connect to yourself")
	ErrRequestNotFound    = errors.New("connection request not found")
	ErrNotRequestReceiver = errors.New("only the receiver can respond to this request")
	ErrRequestNotPending  = errors.New("connection request is no longer pending")
	ErrInvalidDecision    = errors.New("decision must be ACCEPT or REJECT")
)

// ConnectionService manages the bilateral connection-request workflow between
// two users: PENDING, then ACCEPTED or REJECTED, both terminal.
type ConnectionService struct {
	connectionRepo      repository.ConnectionRepository
	userRepo            repository.UserRepository
	notificationService *NotificationService
}

// NewConnectionService creates a new ConnectionService
func NewConnectionService(
	connectionRepo repository.ConnectionRepository,
	userRepo repository.UserRepository,
	notificationService *NotificationService,
) *ConnectionService {
	return &ConnectionService{
		connectionRepo:      connectionRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

// Connect issues a connection request from sender to receiver. At most one
// request exists per unordered pair; when one is already there the existing
// record is surfaced with an outcome instead of an error. A rejected request
// is reopened rather than duplicated, so a pair can reconnect later.
func (s *ConnectionService) Connect(senderID, receiverID uint64) (*models.ConnectionRequest, ConnectionOutcome, error) {
	if senderID == receiverID {
		return nil, "", ErrSelfConnection
	}

	if _, err := s.userRepo.FindByID(receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	existing, err := s.connectionRepo.FindBetween(senderID, receiverID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check existing request: %w", err)
	}

	if existing != nil {
		return s.classifyExisting(existing, senderID, receiverID)
	}

	request := &models.ConnectionRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.StatusPending,
	}
	if err := s.connectionRepo.Create(request); err != nil {
		// A concurrent connect between the same pair beat us to the
		// constraint; classify whatever row won.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, findErr := s.connectionRepo.FindBetween(senderID, receiverID)
			if findErr != nil {
				return nil, "", fmt.Errorf("failed to resolve duplicate request: %w", findErr)
			}
			return s.classifyExisting(existing, senderID, receiverID)
		}
		return nil, "", fmt.Errorf("failed to create connection request: %w", err)
	}

	s.notifyRequest(senderID, receiverID)

	return request, OutcomeRequested, nil
}

func (s *ConnectionService) classifyExisting(existing *models.ConnectionRequest, senderID, receiverID uint64) (*models.ConnectionRequest, ConnectionOutcome, error) {
	switch existing.Status {
	case models.StatusAccepted:
		return existing, OutcomeAlreadyConnected, nil
	case models.StatusPending:
		if existing.SenderID == senderID {
			return existing, OutcomeAlreadySent, nil
		}
		return existing, OutcomeRespondInstead, nil
	case models.StatusRejected:
		// Reopen under the current sender instead of growing a second row
		// for the pair.
		existing.SenderID = senderID
		existing.ReceiverID = receiverID
		existing.Status = models.StatusPending
		if err := s.connectionRepo.Update(existing); err != nil {
			return nil, "", fmt.Errorf("failed to reopen connection request: %w", err)
		}
		s.notifyRequest(senderID, receiverID)
		return existing, OutcomeRequested, nil
	default:
		return nil, "", fmt.Errorf("connection request %d has unknown status %q", existing.ID, existing.Status)
	}
}

func (s *ConnectionService) notifyRequest(senderID, receiverID uint64) {
	sender, err := s.userRepo.FindByID(senderID)
	if err != nil {
		return
	}
	s.notificationService.RecordQuietly(
		senderID, receiverID,
		fmt.Sprintf("%s sent you a connection request", sender.Username),
		nil, nil,
	)
}

// Respond applies the receiver's decision to a pending request. Accepting
// notifies the original sender; rejecting retains the row in its terminal
// state so history survives.
func (s *ConnectionService) Respond(requestID, actorID uint64, decision models.WorkflowDecision) (*models.ConnectionRequest, error) {
	request, err := s.connectionRepo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to find connection request: %w", err)
	}

	if request.ReceiverID != actorID {
		return nil, ErrNotRequestReceiver
	}
	if request.Status != models.StatusPending {
		return nil, ErrRequestNotPending
	}

	switch decision {
	case models.DecisionAccept:
		request.Status = models.StatusAccepted
		if err := s.connectionRepo.Update(request); err != nil {
			return nil, fmt.Errorf("failed to accept connection request: %w", err)
		}

		actor, err := s.userRepo.FindByID(actorID)
		if err == nil {
			s.notificationService.RecordQuietly(
				actorID, request.SenderID,
				fmt.Sprintf("%s accepted your connection request", actor.Username),
				nil, nil,
			)
		}
		return request, nil
	case models.DecisionReject:
		request.Status = models.StatusRejected
		if err := s.connectionRepo.Update(request); err != nil {
			return nil, fmt.Errorf("failed to reject connection request: %w", err)
		}
		return request, nil
	default:
		return nil, ErrInvalidDecision
	}
}

// Status classifies the relationship between observer and other. An
// anonymous observer gets an empty status.
func (s *ConnectionService) Status(observerID, otherID uint64) (ConnectionStatus, error) {
	if observerID == 0 {
		return "", nil
	}
	if observerID == otherID {
		return ConnectionSelf, nil
	}

	request, err := s.connectionRepo.FindBetween(observerID, otherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConnectionNone, nil
		}
		return "", fmt.Errorf("failed to find connection request: %w", err)
	}

	switch request.Status {
	case models.StatusAccepted:
		return ConnectionConnected, nil
	case models.StatusPending:
		if request.SenderID == observerID {
			return ConnectionPendingSent, nil
		}
		return ConnectionPendingReceived, nil
	default:
		// A rejected pair can request again, so it reads as no relationship.
		return ConnectionNone, nil
	}
}

// ListPending lists the pending requests addressed to a user.
func (s *ConnectionService) ListPending(receiverID uint64) ([]models.ConnectionRequest, error) {
	requests, err := s.connectionRepo.ListPendingForReceiver(receiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list connection requests: %w", err)
	}
	return requests, nil
}
