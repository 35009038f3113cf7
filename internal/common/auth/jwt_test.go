package auth

import (
	"testing"
	"time"

	"github.com/FleetGate/FleetGate/internal/common/config"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	cfg := config.AuthConfig{
		Enabled:   true,
		JWTSecret: "test-secret",
		Issuer:    "fleetgate",
		Audience:  "fleetgate",
	}

	token, exp, err := GenerateAccessToken(cfg, "u-1", "Jane HR", []string{"hr"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if exp.Before(time.Now()) {
		t.Fatalf("expected exp in future")
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Subject != "u-1" {
		t.Fatalf("subject mismatch: %s", claims.Subject)
	}
	if claims.Name != "Jane HR" {
		t.Fatalf("name mismatch: %s", claims.Name)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "hr" {
		t.Fatalf("roles mismatch: %#v", claims.Roles)
	}
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	cfg := config.AuthConfig{JWTSecret: "test-secret", Issuer: "fleetgate"}
	token, _, err := GenerateAccessToken(cfg, "u-1", "", nil, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := config.AuthConfig{JWTSecret: "test-secret", Issuer: "someone-else"}
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatalf("expected issuer mismatch to fail")
	}
}

func TestParseAccessTokenRejectsBadSignature(t *testing.T) {
	cfg := config.AuthConfig{JWTSecret: "test-secret"}
	token, _, err := GenerateAccessToken(cfg, "u-1", "", nil, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := ParseAccessToken(config.AuthConfig{JWTSecret: "wrong"}, token); err == nil {
		t.Fatalf("expected signature mismatch to fail")
	}
}
