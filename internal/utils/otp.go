package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/prosync/prosync-api/internal/constants"
)

// GenerateOTP generates a random numeric one-time code for password resets
func GenerateOTP() (string, error) {
	bytes := make([]byte, constants.OTPLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	digits := make([]byte, constants.OTPLength)
	for i, b := range bytes {
		digits[i] = '0' + b%10
	}
	return string(digits), nil
}
