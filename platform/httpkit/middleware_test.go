package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type testJWTConfig struct {
	secret string
}

func (c testJWTConfig) GetJWTSecret() string { return c.secret }

func signTestToken(t *testing.T, secret string, userID uuid.UUID, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"type": "access",
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func newAuthTestRouter(cfg testJWTConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	engine.GET("/public", AuthOptional(cfg), func(c *gin.Context) {
		id := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": id.IsAuthenticated()})
	})
	engine.GET("/private", AuthRequired(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	engine.GET("/admin-only", AuthRequired(cfg), RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return engine
}

func doRequest(engine *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthOptional_GarbledTokenDegradesToAnonymous(t *testing.T) {
	cfg := testJWTConfig{secret: "test-secret"}
	engine := newAuthTestRouter(cfg)

	rec := doRequest(engine, "/public", "not-a-jwt-at-all")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for garbled token on optional route, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"authenticated":false}` {
		t.Fatalf("expected anonymous identity, got %s", body)
	}
}

func TestAuthOptional_MissingTokenIsAnonymous(t *testing.T) {
	cfg := testJWTConfig{secret: "test-secret"}
	engine := newAuthTestRouter(cfg)

	rec := doRequest(engine, "/public", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 without token, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"authenticated":false}` {
		t.Fatalf("expected anonymous identity, got %s", body)
	}
}

func TestAuthOptional_ValidTokenResolvesIdentity(t *testing.T) {
	cfg := testJWTConfig{secret: "test-secret"}
	engine := newAuthTestRouter(cfg)

	token := signTestToken(t, cfg.secret, uuid.New(), "user")
	rec := doRequest(engine, "/public", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"authenticated":true}` {
		t.Fatalf("expected authenticated identity, got %s", body)
	}
}

func TestAuthRequired_MissingTokenIs401(t *testing.T) {
	cfg := testJWTConfig{secret: "test-secret"}
	engine := newAuthTestRouter(cfg)

	rec := doRequest(engine, "/private", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestAuthRequired_InvalidSignatureIs401(t *testing.T) {
	cfg := testJWTConfig{secret: "test-secret"}
	engine := newAuthTestRouter(cfg)

	token := signTestToken(t, "some-other-secret", uuid.New(), "user")
	rec := doRequest(engine, "/private", token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong signature, got %d", rec.Code)
	}
}

func TestAuthRequired_ExpiredTokenIs401(t *testing.T) {
	cfg := testJWTConfig{secret: "test-secret"}
	engine := newAuthTestRouter(cfg)

	claims := jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": "user",
		"type": "access",
		"exp":  time.Now().Add(-time.Hour).Unix(),
		"iat":  time.Now().Add(-2 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := doRequest(engine, "/private", token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
}

func TestAuthRequired_ValidTokenPasses(t *testing.T) {
	cfg := testJWTConfig{secret: "test-secret"}
	engine := newAuthTestRouter(cfg)

	token := signTestToken(t, cfg.secret, uuid.New(), "user")
	rec := doRequest(engine, "/private", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}
}

func TestRequireRole_NonAdminIs403(t *testing.T) {
	cfg := testJWTConfig{secret: "test-secret"}
	engine := newAuthTestRouter(cfg)

	token := signTestToken(t, cfg.secret, uuid.New(), "user")
	rec := doRequest(engine, "/admin-only", token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
}

func TestRequireRole_AdminPasses(t *testing.T) {
	cfg := testJWTConfig{secret: "test-secret"}
	engine := newAuthTestRouter(cfg)

	token := signTestToken(t, cfg.secret, uuid.New(), "admin")
	rec := doRequest(engine, "/admin-only", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}
}
