package config

import "testing"

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate with empty JWT secret: got nil, want error")
	}

	cfg.JWTSecret = "a-real-secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate with JWT secret set: got %v, want nil", err)
	}
}
