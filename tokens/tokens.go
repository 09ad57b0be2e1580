// Package tokens mints and verifies the signed tokens the service hands out:
// signup invitations, auth/refresh sessions and booking lookup links. All
// kinds share one HS256 secret and carry a type discriminant that is checked
// on verification so a token can never be replayed as another kind.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/tobiasmeier/timeslot_booking/scheduling"
)

const (
	TypeSignup        = "signup"
	TypeAuth          = "auth"
	TypeRefresh       = "refresh"
	TypeBookingLookup = "booking"
)

const (
	SignupTTL  = 3 * 24 * time.Hour
	AuthTTL    = time.Hour
	RefreshTTL = 30 * 24 * time.Hour
)

// ErrTokenInvalid covers every verification failure: bad signature, expiry,
// malformed claims, wrong type. Callers log the wrapped cause but expose only
// this sentinel.
var ErrTokenInvalid = errors.New("token invalid or expired")

// Minted is a freshly signed token with its lifetime bounds.
type Minted struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func sign(secret []byte, kind string, claims jwt.MapClaims, ttl time.Duration, now time.Time) (Minted, error) {
	expiresAt := now.Add(ttl)
	claims["type"] = kind
	claims["iat"] = now.Unix()
	claims["exp"] = expiresAt.Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return Minted{}, fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return Minted{Token: signed, CreatedAt: now, ExpiresAt: expiresAt}, nil
}

// Verify parses a token, checks signature and expiry, and requires the type
// discriminant to match kind before trusting the claims.
func Verify(secret []byte, kind, token string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if tokenType, _ := claims["type"].(string); tokenType != kind {
		return nil, fmt.Errorf("%w: type mismatch", ErrTokenInvalid)
	}
	return claims, nil
}

// SignupToken invites an email address to create an account.
func SignupToken(secret []byte, email string, now time.Time) (Minted, error) {
	return sign(secret, TypeSignup, jwt.MapClaims{"email": email}, SignupTTL, now)
}

// AuthToken is the short-lived session token.
func AuthToken(secret []byte, username, role string, now time.Time) (Minted, error) {
	return sign(secret, TypeAuth, jwt.MapClaims{"username": username, "role": role}, AuthTTL, now)
}

// RefreshToken is the long-lived session token; jti makes every refresh token
// distinct.
func RefreshToken(secret []byte, username string, now time.Time) (Minted, error) {
	claims := jwt.MapClaims{"username": username, "jti": uuid.New().String()}
	return sign(secret, TypeRefresh, claims, RefreshTTL, now)
}

// BookingLookupToken lets a booking holder retrieve and verify their bookings
// by email. Its lifetime is data-dependent: it lasts exactly until the end of
// the nearest upcoming occurrence of the booked weekday, so the link dies
// together with the occurrence it confirms.
func BookingLookupToken(secret []byte, email, weekdayName string, endHours, endMinutes int, now time.Time) (Minted, error) {
	end := scheduling.NextOccurrenceEnd(weekdayName, endHours, endMinutes, now)
	return sign(secret, TypeBookingLookup, jwt.MapClaims{"email": email}, end.Sub(now), now)
}
