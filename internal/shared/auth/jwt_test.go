package auth

import (
	"testing"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	signer := NewSigner("test-secret")
	token, err := signer.Sign("user-1", "ahmed", "موظف")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected sub user-1, got %q", claims.Subject)
	}
	if claims.Username != "ahmed" {
		t.Fatalf("expected username ahmed, got %q", claims.Username)
	}
	if claims.Role != "موظف" {
		t.Fatalf("expected role to round-trip, got %q", claims.Role)
	}
}

func TestSignRequiresUserID(t *testing.T) {
	signer := NewSigner("test-secret")
	if _, err := signer.Sign("", "ahmed", ""); err == nil {
		t.Fatal("expected error for empty user id")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewSigner("secret-a").Sign("user-1", "ahmed", "")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := NewSigner("secret-b").Verify(token); err == nil {
		t.Fatal("expected verification failure with different secret")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := NewSigner("s").Verify("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
