package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/rahulpatwa/bookbazaar-backend/pkg/auth"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/config"
)

func authTestConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "bookbazaar-test",
		ExpirationMinutes: 15,
	}
}

func TestAuthSeedsContextFromBearerToken(t *testing.T) {
	cfg := authTestConfig()
	userID := uuid.New()
	libraryID := uuid.New()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:    userID,
		LibraryID: &libraryID,
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	var gotUser, gotLibrary uuid.UUID
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotLibrary = LibraryIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUser != userID {
		t.Fatalf("user id not propagated: %s", gotUser)
	}
	if gotLibrary != libraryID {
		t.Fatalf("library id not propagated: %s", gotLibrary)
	}
}

func TestAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	cfg := authTestConfig()
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without valid credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: expected 401, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", rec.Code)
	}
}
