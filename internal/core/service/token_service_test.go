package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, exp, err := svc.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if time.Until(exp) <= 0 || time.Until(exp) > time.Hour {
		t.Fatalf("unexpected expiry %v", exp)
	}

	id, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if id != "user-1" {
		t.Fatalf("expected user-1, got %q", id)
	}
}

func TestTokenService_PayloadShape(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, _, err := svc.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		t.Fatalf("parse: %v", err)
	}
	user, ok := claims["user"].(map[string]any)
	if !ok || user["id"] != "user-42" {
		t.Fatalf("expected user.id claim, got %v", claims["user"])
	}
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, _, _ := svc.Issue("user-1")

	expired := NewTokenService("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _, _ := expired.Issue("user-1")

	other := NewTokenService("other-secret", time.Hour)

	tests := []struct {
		name  string
		token string
		svc   *TokenService
		kind  domain.AuthErrorKind
	}{
		{name: "missing", token: "", svc: svc, kind: domain.AuthMissing},
		{name: "garbage", token: "not-a-token", svc: svc, kind: domain.AuthInvalid},
		{name: "tampered", token: token + "x", svc: svc, kind: domain.AuthInvalid},
		{name: "wrong secret", token: token, svc: other, kind: domain.AuthInvalid},
		{name: "expired", token: stale, svc: svc, kind: domain.AuthInvalid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.svc.Verify(tc.token)
			var authErr *domain.AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("expected AuthError, got %v", err)
			}
			if authErr.Kind != tc.kind {
				t.Fatalf("expected kind %v, got %v", tc.kind, authErr.Kind)
			}
		})
	}
}
