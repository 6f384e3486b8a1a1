package services

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type CredentialMode string

const (
	// CredentialModePlaintext stores and compares passwords verbatim. It is the
	// default only because existing fixture data is plaintext.
	CredentialModePlaintext CredentialMode = "plaintext"
	CredentialModeBcrypt    CredentialMode = "bcrypt"
)

// CredentialChecker turns a submitted password into its stored form and
// compares a submitted password against a stored one.
type CredentialChecker interface {
	Mode() CredentialMode
	Prepare(password string) (string, error)
	Matches(stored, given string) bool
}

func NewCredentialChecker(mode string) (CredentialChecker, error) {
	switch CredentialMode(strings.ToLower(strings.TrimSpace(mode))) {
	case "", CredentialModePlaintext:
		return plaintextCredentials{}, nil
	case CredentialModeBcrypt:
		return bcryptCredentials{cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown CREDENTIAL_MODE %q (allowed: %q, %q)", mode, CredentialModePlaintext, CredentialModeBcrypt)
	}
}

type plaintextCredentials struct{}

func (plaintextCredentials) Mode() CredentialMode { return CredentialModePlaintext }

func (plaintextCredentials) Prepare(password string) (string, error) { return password, nil }

func (plaintextCredentials) Matches(stored, given string) bool { return stored == given }

type bcryptCredentials struct {
	cost int
}

func (bcryptCredentials) Mode() CredentialMode { return CredentialModeBcrypt }

func (b bcryptCredentials) Prepare(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (bcryptCredentials) Matches(stored, given string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
}
