package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	tempPasswordLength  = 16
	tempPasswordCharset = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Credentials is the output of provisioning credential issuance. The temporary
// password exists in plaintext only here and in the one-time welcome
// notification; it must never be logged.
type Credentials struct {
	ClientID     string
	ProjectID    string
	Username     string
	TempPassword string
}

// CredentialIssuer derives identifiers and a temporary password for a newly
// booked client. It is stateless and performs no I/O.
type CredentialIssuer struct{}

func NewCredentialIssuer() *CredentialIssuer {
	return &CredentialIssuer{}
}

// Issue generates globally unique identifiers and a crypto-random temporary
// password. The client's email doubles as the portal username.
func (i *CredentialIssuer) Issue(email string) (*Credentials, error) {
	clientID, err := randomClientID()
	if err != nil {
		return nil, fmt.Errorf("issue credentials: %w", err)
	}

	password, err := randomPassword(tempPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("issue credentials: %w", err)
	}

	return &Credentials{
		ClientID:     clientID,
		ProjectID:    "PRJ-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12]),
		Username:     strings.ToLower(strings.TrimSpace(email)),
		TempPassword: password,
	}, nil
}

// randomClientID returns an identifier of the form EDIS-XXXXXXXXXXXX with 48
// bits of entropy, enough to make collisions negligible across any plausible
// client count.
func randomClientID() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "EDIS-" + strings.ToUpper(hex.EncodeToString(b)), nil
}

// randomPassword draws n characters from a mixed alphanumeric charset with
// visually ambiguous characters removed. Rejection sampling keeps the draw
// uniform over the charset.
func randomPassword(n int) (string, error) {
	out := make([]byte, 0, n)
	buf := make([]byte, n*2)
	max := byte(256 - (256 % len(tempPasswordCharset)))

	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= max {
				continue
			}
			out = append(out, tempPasswordCharset[int(b)%len(tempPasswordCharset)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
