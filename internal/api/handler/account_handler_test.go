package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirenow/hirenow-server/internal/api/domain"
	"github.com/hirenow/hirenow-server/internal/api/dto"
	"github.com/hirenow/hirenow-server/internal/api/model"
	"github.com/hirenow/hirenow-server/internal/auth"
)

func newAccountHandler(users *fakeUserStore) *AccountHandler {
	return NewAccountHandler(&Dependencies{
		Logger: discardLogger(),
		Tokens: auth.NewTokenService("test-secret"),
		Users:  users,
	})
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAccountHandler_IssueToken(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	h := NewAccountHandler(&Dependencies{
		Logger: discardLogger(),
		Tokens: tokens,
		Users:  newFakeUserStore(),
	})
	r := newTestEngine()
	r.POST("/token", h.IssueToken)

	w := postJSON(r, "/token", `{"email": "seeker@hirenow.dev"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	email, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "seeker@hirenow.dev", email)
}

func TestAccountHandler_IssueToken_MissingEmail(t *testing.T) {
	h := newAccountHandler(newFakeUserStore())
	r := newTestEngine()
	r.POST("/token", h.IssueToken)

	w := postJSON(r, "/token", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountHandler_Register(t *testing.T) {
	users := newFakeUserStore()
	h := newAccountHandler(users)
	r := newTestEngine()
	r.POST("/auth/register", h.Register)

	body := `{"email": "boss@acme.dev", "role": "employer", "name": "Boss", "companyName": "Acme"}`

	t.Run("new account", func(t *testing.T) {
		w := postJSON(r, "/auth/register", body)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.RegisterResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Created)
		assert.NotEmpty(t, resp.InsertedID)

		stored, ok := users.users["boss@acme.dev"]
		require.True(t, ok)
		assert.Equal(t, domain.RoleEmployer, stored.Role)
		assert.Equal(t, "Acme", stored.CompanyName)
	})

	t.Run("repeat registration is a no-op success", func(t *testing.T) {
		firstID := users.users["boss@acme.dev"].UserID

		w := postJSON(r, "/auth/register", body)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.RegisterResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Created)
		assert.Equal(t, "user already registered", resp.Message)
		assert.Empty(t, resp.InsertedID)

		// The stored account is untouched.
		assert.Equal(t, firstID, users.users["boss@acme.dev"].UserID)
		assert.Len(t, users.users, 1)
	})
}

func TestAccountHandler_Me(t *testing.T) {
	users := newFakeUserStore()
	users.users["seeker@hirenow.dev"] = model.User{
		UserID:    uuid.New().String(),
		Email:     "seeker@hirenow.dev",
		Role:      domain.RoleJobSeeker,
		Name:      "Sam",
		CreatedAt: time.Now(),
	}

	h := newAccountHandler(users)

	t.Run("returns the profile without the internal id", func(t *testing.T) {
		r := newTestEngine()
		r.POST("/auth/me", withClaim("seeker@hirenow.dev"), h.Me)

		w := postJSON(r, "/auth/me", `{"email": "seeker@hirenow.dev"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		assert.Equal(t, "seeker@hirenow.dev", raw["email"])
		assert.Equal(t, domain.RoleJobSeeker, raw["role"])
		assert.NotContains(t, raw, "id")
		assert.NotContains(t, raw, "userId")
	})

	t.Run("mismatched email is forbidden", func(t *testing.T) {
		r := newTestEngine()
		r.POST("/auth/me", withClaim("seeker@hirenow.dev"), h.Me)

		w := postJSON(r, "/auth/me", `{"email": "other@hirenow.dev"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown claim email is 404", func(t *testing.T) {
		r := newTestEngine()
		r.POST("/auth/me", withClaim("ghost@hirenow.dev"), h.Me)

		w := postJSON(r, "/auth/me", `{"email": "ghost@hirenow.dev"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
