// Package guestid derives a stable correlation key for an unauthenticated
// guest. The key is only ever used as the conflict target of the response
// upsert; no account is created for guests.
package guestid

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Namespacing salt: keys are not guessable from the raw identifier alone.
// Changing it orphans every stored guest_key, so never rotate it casually.
const salt = "rsvplink/guestid/v1"

// Identifier picks the strongest contact point: email, else phone, else
// name scoped by event so contactless guests stay unique per event.
func Identifier(email, phone, name, eventID string) string {
	if strings.TrimSpace(email) != "" {
		return email
	}
	if strings.TrimSpace(phone) != "" {
		return phone
	}
	return name + ":" + eventID
}

// Derive returns a deterministic fixed-length hex key for an identifier.
// Input is trimmed and lowercased first, so " Jane@Example.com " and
// "jane@example.com" collapse to the same key.
func Derive(identifier string) string {
	norm := strings.ToLower(strings.TrimSpace(identifier))
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(norm))
	return hex.EncodeToString(mac.Sum(nil))
}
