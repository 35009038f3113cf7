package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/FleetGate/FleetGate/internal/common/auth"
	"github.com/FleetGate/FleetGate/internal/common/config"
	"github.com/gin-gonic/gin"
)

func newAuthTestRouter(cfg config.AuthConfig, required ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/", JWTAuth(cfg, nil), RequireRoles(cfg, required...))
	grp.GET("/protected", func(c *gin.Context) {
		ai, ok := AuthFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "missing auth info"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"subject": ai.Subject, "name": ai.Name})
	})
	return r
}

func TestJWTAuthAndRequireRoles(t *testing.T) {
	cfg := config.AuthConfig{
		Enabled:   true,
		JWTSecret: "test-secret",
		Issuer:    "fleetgate",
		Audience:  "fleetgate",
	}

	token, _, err := auth.GenerateAccessToken(cfg, "u-1", "Jane HR", []string{"hr"}, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	r := newAuthTestRouter(cfg, "hr", "admin")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestJWTAuthMissingToken(t *testing.T) {
	cfg := config.AuthConfig{Enabled: true, JWTSecret: "test-secret"}
	r := newAuthTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireRolesRejectsWrongRole(t *testing.T) {
	cfg := config.AuthConfig{Enabled: true, JWTSecret: "test-secret"}
	token, _, err := auth.GenerateAccessToken(cfg, "u-2", "Viewer", []string{"viewer"}, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	r := newAuthTestRouter(cfg, "admin")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestHasAnyRole(t *testing.T) {
	if !hasAnyRole([]string{"user", "Admin"}, []string{"admin"}) {
		t.Fatalf("expected case-insensitive role match")
	}
	if hasAnyRole([]string{"user"}, []string{"admin"}) {
		t.Fatalf("expected no match")
	}
	if hasAnyRole(nil, []string{"admin"}) {
		t.Fatalf("expected no match for empty roles")
	}
}
