package auth

import (
	"testing"
	"time"
)

func TestIssueAndVerifyAdminToken(t *testing.T) {
	svc := NewTokenService("test-secret", "mexicantrain")

	token, err := svc.IssueAdminToken("admin-1", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}

	adminID, err := svc.VerifyAdminToken(token)
	if err != nil {
		t.Fatalf("unexpected error verifying token: %v", err)
	}
	if adminID != "admin-1" {
		t.Fatalf("expected admin-1, got %s", adminID)
	}
}

func TestVerifyAdminTokenRejectsExpired(t *testing.T) {
	svc := NewTokenService("test-secret", "mexicantrain")
	token, err := svc.IssueAdminToken("admin-1", -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}
	if _, err := svc.VerifyAdminToken(token); err == nil {
		t.Fatalf("expected an expired token to fail verification")
	}
}

func TestVerifyAdminTokenRejectsWrongSecret(t *testing.T) {
	a := NewTokenService("secret-a", "mexicantrain")
	b := NewTokenService("secret-b", "mexicantrain")

	token, _ := a.IssueAdminToken("admin-1", time.Minute)
	if _, err := b.VerifyAdminToken(token); err == nil {
		t.Fatalf("expected verification with a different secret to fail")
	}
}
