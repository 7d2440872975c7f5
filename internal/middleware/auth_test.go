package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pliu/parley/internal/auth"
	"github.com/pliu/parley/internal/models"
	"github.com/pliu/parley/internal/store/sqlstore"
)

const testSecret = "test-secret"

func setupAuthTest(t *testing.T) (*sqlstore.SQLStore, *models.User) {
	t.Helper()
	s, err := sqlstore.New("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	user := &models.User{Username: "ripley", Email: "ripley@example.com", PasswordHash: "hash"}
	require.NoError(t, s.CreateUser(user))
	return s, user
}

func TestRequireUserValidToken(t *testing.T) {
	s, user := setupAuthTest(t)

	token, err := auth.GenerateAccessToken(user.ID, testSecret, time.Minute)
	require.NoError(t, err)

	var seen *models.User
	handler := RequireUser(s, testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFrom(r.Context())
	}))

	req := httptest.NewRequest("GET", "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, seen)
	assert.Equal(t, user.ID, seen.ID)
	assert.Equal(t, "ripley", seen.Username)
}

func TestRequireUserMissingHeader(t *testing.T) {
	s, _ := setupAuthTest(t)

	handler := RequireUser(s, testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest("GET", "/users/me", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	var body map[string]map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "unauthenticated", body["detail"]["type"])
}

func TestRequireUserBadToken(t *testing.T) {
	s, _ := setupAuthTest(t)

	handler := RequireUser(s, testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest("GET", "/users/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireUserUnknownUser(t *testing.T) {
	s, _ := setupAuthTest(t)

	token, err := auth.GenerateAccessToken(9999, testSecret, time.Minute)
	require.NoError(t, err)

	handler := RequireUser(s, testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest("GET", "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	var got string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = RequestIDFrom(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.NotEmpty(t, got)
	assert.Equal(t, got, rr.Header().Get("X-Request-Id"))
}

func TestRequestIDPreservesIncoming(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get("X-Request-Id"))
}
