package token

import (
	"errors"
	"testing"
	"time"
)

func TestIssuer_RoundTrip(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	raw, err := iss.Issue("user_1", "manager")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := iss.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user_1" {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
	if claims.Role != "manager" {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestIssuer_WrongSecret(t *testing.T) {
	raw, err := NewIssuer("secret-a", time.Hour).Issue("user_1", "employee")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewIssuer("secret-b", time.Hour).Verify(raw); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestIssuer_Garbage(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	if _, err := iss.Verify("not-a-token"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestIssuer_ExpiryBoundary(t *testing.T) {
	iss := NewIssuer("secret", time.Minute)
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	iss.now = func() time.Time { return issued }
	raw, err := iss.Issue("user_1", "employee")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// One instant before expiration the token still verifies.
	iss.now = func() time.Time { return issued.Add(time.Minute - time.Second) }
	if _, err := iss.Verify(raw); err != nil {
		t.Fatalf("expected valid just before expiry, got %v", err)
	}

	// At or past the expiration instant it fails with ErrExpired.
	iss.now = func() time.Time { return issued.Add(time.Minute + time.Second) }
	if _, err := iss.Verify(raw); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}
