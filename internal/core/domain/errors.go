package domain

import "errors"

var (
	// ErrInvalidSignature rejects a webhook whose HMAC does not match. No side
	// effects may occur after this error.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrClientExists signals the email uniqueness constraint fired. Treated by
	// the orchestrator as "already provisioned", not a failure.
	ErrClientExists = errors.New("client already exists")

	ErrClientNotFound      = errors.New("client not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrDeliverableNotFound = errors.New("deliverable not found")

	// ErrInvalidCredentials covers unknown username, wrong password, and
	// non-active account alike so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUnauthenticated = errors.New("authentication required")
	ErrTokenExpired    = errors.New("session expired")
	ErrForbidden       = errors.New("access forbidden")
)
