package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prosync/prosync-api/internal/models"
	"github.com/prosync/prosync-api/internal/repository"
	"gorm.io/gorm"
)

var ErrEmptyMessage = errors.New("message cannot be empty")

// ChatService handles direct messages between users.
type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
}

// NewChatService creates a new ChatService.
func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
	}
}

// Send appends a message from sender to receiver.
func (s *ChatService) Send(senderID, receiverID uint64, text string) (*models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	if _, err := s.userRepo.FindByID(receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	message := &models.ChatMessage{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    text,
	}
	if err := s.chatRepo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	return message, nil
}

// Conversation replays the messages between the caller and another user,
// oldest first, marking everything addressed to the caller as read.
func (s *ChatService) Conversation(userID, otherID uint64) ([]models.ChatMessage, error) {
	if err := s.chatRepo.MarkConversationRead(userID, otherID); err != nil {
		return nil, fmt.Errorf("failed to mark conversation read: %w", err)
	}

	messages, err := s.chatRepo.Conversation(userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return messages, nil
}

// Inbox lists everything the caller has sent or received, newest first.
func (s *ChatService) Inbox(userID uint64) ([]models.ChatMessage, error) {
	messages, err := s.chatRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}
