package constants

import "time"

// ContextKeyUserID is the gin context key holding the authenticated user ID.
const ContextKeyUserID = "user_id"

const (
	MinPasswordLength = 8
	MinUsernameLength = 3
)

// OTP settings for the password-reset flow. Expiry is evaluated lazily when
// the code is used; nothing expires codes in the background.
const (
	OTPLength = 6
	OTPTTL    = 10 * time.Minute
)

const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DefaultCollaboratorRole is assigned when an invitation is accepted.
const DefaultCollaboratorRole = "Collaborator"
