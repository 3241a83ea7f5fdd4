package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
)

// NormalizeEmail trims the address and checks that it is a bare mailbox.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", domainErrors.ErrValidation)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return "", fmt.Errorf("%w: invalid email %q", domainErrors.ErrValidation, email)
	}
	return email, nil
}
