package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prosync/prosync-api/internal/constants"
	"github.com/prosync/prosync-api/internal/models"
	"github.com/prosync/prosync-api/internal/repository"
	"github.com/prosync/prosync-api/internal/token"
	"github.com/prosync/prosync-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrAccountDeactivated   = errors.New("this account has been deactivated")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUsernameTooShort     = errors.New("username too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrInvalidOTP           = errors.New("invalid OTP")
	ErrOTPExpired           = errors.New("OTP has expired")
	ErrMailDeliveryFailed   = errors.New("failed to send email")
)

// AuthService handles signup, signin and the OTP password-reset flow.
type AuthService struct {
	userRepo      repository.UserRepository
	profileRepo   repository.ProfileRepository
	mailer        Mailer
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	mailer Mailer,
	jwtSecret string,
	tokenDuration time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		mailer:        mailer,
		jwtSecret:     jwtSecret,
		tokenDuration: tokenDuration,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// Signup creates a new user along with their profile in one transaction.
// There is no other path that creates a user, so a user without a profile is
// never observable.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if len(username) < constants.MinUsernameLength {
		return nil, fmt.Errorf("%w: must be at least %d characters", ErrUsernameTooShort, constants.MinUsernameLength)
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}
	profile := &models.Profile{
		FullName: input.FullName,
	}

	if err := s.userRepo.CreateWithProfile(user, profile); err != nil {
		// The signup pre-checks race against concurrent signups; the unique
		// constraints have the final say.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to complete signup: %w", err)
	}

	return user, nil
}

// SigninInput holds the credentials for authentication.
type SigninInput struct {
	Username string
	Password string
}

// Signin verifies credentials and returns the user and a signed bearer token.
func (s *AuthService) Signin(input SigninInput) (*models.User, string, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", ErrAccountDeactivated
	}

	signed, err := token.Sign(s.jwtSecret, user.ID, s.tokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, signed, nil
}

// ForgotPassword stores a fresh OTP on the user's profile and mails it.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	profile, err := s.profileRepo.FindByUserID(user.ID)
	if err != nil {
		return fmt.Errorf("failed to find profile: %w", err)
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	now := time.Now()
	profile.OTP = otp
	profile.OTPCreatedAt = &now
	if err := s.profileRepo.Update(profile); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	subject := "Password Reset OTP for ProSync"
	body := fmt.Sprintf("Your OTP for password reset is: %s. It will expire in %d minutes.",
		otp, int(constants.OTPTTL.Minutes()))
	if err := s.mailer.Send(user.Email, subject, body); err != nil {
		return ErrMailDeliveryFailed
	}

	return nil
}

// ResetPassword verifies the OTP and replaces the user's password. OTP expiry
// is checked lazily here; nothing expires codes in the background.
func (s *AuthService) ResetPassword(email, otp, newPassword string) error {
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	profile, err := s.profileRepo.FindByUserID(user.ID)
	if err != nil {
		return fmt.Errorf("failed to find profile: %w", err)
	}

	if profile.OTP == "" || profile.OTP != otp {
		return ErrInvalidOTP
	}
	if profile.OTPCreatedAt == nil || time.Now().After(profile.OTPCreatedAt.Add(constants.OTPTTL)) {
		return ErrOTPExpired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	user.PasswordHash = string(hashedPassword)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	profile.OTP = ""
	profile.OTPCreatedAt = nil
	if err := s.profileRepo.Update(profile); err != nil {
		return fmt.Errorf("failed to clear OTP: %w", err)
	}

	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
