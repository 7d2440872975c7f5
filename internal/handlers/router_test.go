package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/pliu/parley/internal/config"
	"github.com/pliu/parley/internal/store/sqlstore"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	cfg := config.Config{
		Env:            "dev",
		JWTSecret:      "test-secret",
		AccessTokenTTL: time.Minute,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
	s, err := sqlstore.New("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewRouter(cfg, s)
}

func itoa(i int) string { return strconv.Itoa(i) }

// doJSON performs a request with an optional bearer token and decodes
// the JSON response body.
func doJSON(t *testing.T, r *mux.Router, method, path, token string, payload any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var decoded map[string]any
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decoded))
	}
	return rr, decoded
}

// registerAndLogin creates a user and returns its id and access token.
func registerAndLogin(t *testing.T, r *mux.Router, username string) (int, string) {
	t.Helper()

	rr, body := doJSON(t, r, "POST", "/auth/registration", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password",
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	user := body["user"].(map[string]any)
	id := int(user["id"].(float64))

	rr, body = doJSON(t, r, "POST", "/auth/token", "", map[string]string{
		"username": username,
		"password": "password",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	return id, body["access_token"].(string)
}

func TestHealthzIsOpen(t *testing.T) {
	r := newTestRouter(t)

	rr, body := doJSON(t, r, "GET", "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", body["status"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/users", "/chats", "/users/me"} {
		rr, body := doJSON(t, r, "GET", path, "", nil)
		require.Equal(t, http.StatusUnauthorized, rr.Code, path)
		detail := body["detail"].(map[string]any)
		require.Equal(t, "unauthenticated", detail["type"])
	}
}
