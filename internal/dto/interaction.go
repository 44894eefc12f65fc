package dto

import (
	"time"

	"github.com/prosync/prosync-api/internal/models"
)

// ConnectionRequestDTO represents a connection request in API responses
type ConnectionRequestDTO struct {
	ID           uint64                `json:"id"`
	SenderID     uint64                `json:"sender_id"`
	SenderName   string                `json:"sender_name,omitempty"`
	ReceiverID   uint64                `json:"receiver_id"`
	ReceiverName string                `json:"receiver_name,omitempty"`
	Status       models.WorkflowStatus `json:"status"`
	CreatedAt    time.Time             `json:"created_at"`
}

// InvitationDTO represents a project invitation in API responses
type InvitationDTO struct {
	ID          uint64                `json:"id"`
	ProjectID   uint64                `json:"project_id"`
	ProjectName string                `json:"project_name,omitempty"`
	SenderName  string                `json:"sender_name,omitempty"`
	ReceiverID  uint64                `json:"receiver_id"`
	Status      models.WorkflowStatus `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
}

// NotificationDTO represents a notification in API responses
type NotificationDTO struct {
	ID         uint64    `json:"id"`
	SenderID   uint64    `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	PostID     *uint64   `json:"post_id"`
	ProjectID  *uint64   `json:"project_id"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChatMessageDTO represents a chat message in API responses
type ChatMessageDTO struct {
	ID           uint64    `json:"id"`
	SenderID     uint64    `json:"sender_id"`
	SenderName   string    `json:"sender_name,omitempty"`
	ReceiverID   uint64    `json:"receiver_id"`
	ReceiverName string    `json:"receiver_name,omitempty"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToConnectionRequestDTO converts a ConnectionRequest model
func ToConnectionRequestDTO(request models.ConnectionRequest) ConnectionRequestDTO {
	return ConnectionRequestDTO{
		ID:           request.ID,
		SenderID:     request.SenderID,
		SenderName:   request.Sender.Username,
		ReceiverID:   request.ReceiverID,
		ReceiverName: request.Receiver.Username,
		Status:       request.Status,
		CreatedAt:    request.CreatedAt,
	}
}

// ToInvitationDTO converts an Invitation model
func ToInvitationDTO(invitation models.Invitation) InvitationDTO {
	return InvitationDTO{
		ID:          invitation.ID,
		ProjectID:   invitation.ProjectID,
		ProjectName: invitation.Project.Name,
		SenderName:  invitation.Project.Owner.Username,
		ReceiverID:  invitation.ReceiverID,
		Status:      invitation.Status,
		CreatedAt:   invitation.CreatedAt,
	}
}

// ToNotificationDTO converts a Notification model
func ToNotificationDTO(notification models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:         notification.ID,
		SenderID:   notification.SenderID,
		SenderName: notification.Sender.Username,
		PostID:     notification.PostID,
		ProjectID:  notification.ProjectID,
		Message:    notification.Message,
		IsRead:     notification.IsRead,
		CreatedAt:  notification.CreatedAt,
	}
}

// ToChatMessageDTO converts a ChatMessage model
func ToChatMessageDTO(message models.ChatMessage) ChatMessageDTO {
	return ChatMessageDTO{
		ID:           message.ID,
		SenderID:     message.SenderID,
		SenderName:   message.Sender.Username,
		ReceiverID:   message.ReceiverID,
		ReceiverName: message.Receiver.Username,
		Message:      message.Message,
		IsRead:       message.IsRead,
		CreatedAt:    message.CreatedAt,
	}
}
