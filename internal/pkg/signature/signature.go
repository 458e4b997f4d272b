// Package signature verifies that inbound webhook payloads originate from the
// CRM provider. The provider signs the exact raw request body with
// HMAC-SHA256 and sends the hex digest in a header.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Verify reports whether providedHex is a valid HMAC-SHA256 hex signature of
// payload under secret. The comparison is constant-time; any decode failure or
// length mismatch returns false rather than an error.
func Verify(payload []byte, providedHex, secret string) bool {
	provided, err := hex.DecodeString(providedHex)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := mac.Sum(nil)

	return hmac.Equal(provided, expected)
}

// Sign returns the hex HMAC-SHA256 signature of payload under secret. Used by
// tests and by outbound integrations that mirror the CRM's scheme.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
