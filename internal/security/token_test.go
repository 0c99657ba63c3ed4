package security

import (
	"testing"
	"time"
)

func TestTokenIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("uid-123", "player@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}

	uid, email, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if uid != "uid-123" {
		t.Errorf("uid = %q, want uid-123", uid)
	}
	if email != "player@example.com" {
		t.Errorf("email = %q, want player@example.com", email)
	}
}

func TestTokenVerifyRejectsBadTokens(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "garbage token",
			token: "not.a.token",
		},
		{
			name:  "empty token",
			token: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := issuer.Verify(tt.token); err == nil {
				t.Error("Verify() accepted an invalid token")
			}
		})
	}

	// Token signed with a different secret
	other := NewTokenIssuer("other-secret", time.Hour)
	token, err := other.Issue("uid-123", "player@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, _, err := issuer.Verify(token); err == nil {
		t.Error("Verify() accepted a token signed with the wrong secret")
	}
}

func TestTokenVerifyRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue("uid-123", "player@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, _, err := issuer.Verify(token); err == nil {
		t.Error("Verify() accepted an expired token")
	}
}

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Fatalf("request %d should have been allowed", i+1)
		}
	}
	if limiter.Allow("10.0.0.1") {
		t.Error("request over the budget should have been rejected")
	}

	// A different IP has its own budget
	if !limiter.Allow("10.0.0.2") {
		t.Error("fresh IP should be allowed")
	}
}
