package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/prosync/prosync-api/internal/models"
	"github.com/prosync/prosync-api/internal/repository"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService is the append-only event log behind every
// state-changing interaction. Records are immutable except for the read flag.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
	}
}

// Record appends a notification addressed to receiverID.
func (s *NotificationService) Record(senderID, receiverID uint64, message string, postID, projectID *uint64) error {
	notification := &models.Notification{
		SenderID:   senderID,
		ReceiverID: receiverID,
		PostID:     postID,
		ProjectID:  projectID,
		Message:    message,
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}
	return nil
}

// RecordQuietly appends a notification and only logs on failure. Triggering
// operations must not fail because their notification could not be written.
func (s *NotificationService) RecordQuietly(senderID, receiverID uint64, message string, postID, projectID *uint64) {
	if err := s.Record(senderID, receiverID, message, postID, projectID); err != nil {
		log.Printf("notification dropped: %v", err)
	}
}

// Feed lists a user's notifications, newest first.
func (s *NotificationService) Feed(receiverID uint64, unreadOnly bool, offset, limit int) ([]models.Notification, int64, error) {
	notifications, total, err := s.notificationRepo.ListByReceiver(receiverID, unreadOnly, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

// MarkRead marks one of the receiver's notifications as read. A notification
// addressed to someone else reads as absent.
func (s *NotificationService) MarkRead(id, receiverID uint64) error {
	if err := s.notificationRepo.MarkRead(id, receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks all of the receiver's notifications as read.
func (s *NotificationService) MarkAllRead(receiverID uint64) error {
	return s.notificationRepo.MarkAllRead(receiverID)
}
