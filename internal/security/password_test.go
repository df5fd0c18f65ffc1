package security

import (
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Error("hash should not equal the plaintext password")
	}

	if !CheckPassword("correct horse battery staple", hash) {
		t.Error("CheckPassword() should accept the original password")
	}
	if CheckPassword("wrong password", hash) {
		t.Error("CheckPassword() should reject a different password")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	raw, err := MakeAccessToken("user-1", "caretaker", secret, 5*time.Minute)
	if err != nil {
		t.Fatalf("MakeAccessToken() error = %v", err)
	}

	claims, err := ParseAccessToken(raw, secret)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %v, want user-1", claims.UserID)
	}
	if claims.Role != "caretaker" {
		t.Errorf("Role = %v, want caretaker", claims.Role)
	}

	if _, err := ParseAccessToken(raw, "other-secret"); err == nil {
		t.Error("ParseAccessToken() should reject a token signed with another secret")
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	raw, hash, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}
	if raw == "" || hash == "" {
		t.Fatal("GenerateRefreshToken() returned empty values")
	}
	if raw == hash {
		t.Error("stored hash must differ from the raw token")
	}
	if HashRefreshToken(raw) != hash {
		t.Error("HashRefreshToken(raw) should reproduce the stored hash")
	}

	raw2, _, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}
	if raw == raw2 {
		t.Error("two generated tokens should not collide")
	}
}
