package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t, "owner", true, true)
	env.createAdmin(t, "retired", false, false)

	t.Run("username", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/admin/auth/login", map[string]string{
			"login": "owner", "password": testPassword,
		}, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp struct {
			AccessToken string         `json:"access_token"`
			TokenType   string         `json:"token_type"`
			Admin       map[string]any `json:"admin"`
		}
		decodeBody(t, rec, &resp)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "owner", resp.Admin["username"])
		assert.NotContains(t, resp.Admin, "password_hash")
		assert.NotNil(t, resp.Admin["last_login"])

		stored, err := env.db.AdminUserRepo().FindByID(context.Background(), admin.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLogin)
	})

	t.Run("email alias", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/admin/auth/login", map[string]string{
			"username": "OWNER@example.com", "password": testPassword,
		}, "")
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/admin/auth/login", map[string]string{
			"login": "owner", "password": "nope-nope-nope",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/admin/auth/login", map[string]string{
			"login": "ghost", "password": testPassword,
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("inactive", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/admin/auth/login", map[string]string{
			"login": "retired", "password": testPassword,
		}, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing login", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/admin/auth/login", map[string]string{
			"password": testPassword,
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/me", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var me map[string]any
	decodeBody(t, rec, &me)
	assert.Equal(t, "admin", me["username"])
	assert.Equal(t, true, me["is_staff"])
}

func TestAdminUsers(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)
	env.createAdmin(t, "editor", false, true)
	editorToken := env.login(t, "editor")

	rec := env.do(t, http.MethodGet, "/api/v1/admin/admin-users", nil, editorToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/admin-users", map[string]any{
		"username": "writer", "email": "writer@example.com", "password": "short",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/admin-users", map[string]any{
		"username": "writer", "email": "writer@example.com",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/admin-users", map[string]any{
		"username": "writer", "email": "writer@example.com", "password": "a-long-enough-password",
		"first_name": "Wendy",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID       string `json:"id"`
		IsActive bool   `json:"is_active"`
	}
	decodeBody(t, rec, &created)
	assert.True(t, created.IsActive)

	writerToken := env.loginWith(t, "writer", "a-long-enough-password")
	assert.NotEmpty(t, writerToken)

	rec = env.do(t, http.MethodPut, "/api/v1/admin/admin-users/"+created.ID, map[string]any{
		"department": "Content",
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated map[string]any
	decodeBody(t, rec, &updated)
	assert.Equal(t, "Content", updated["department"])
	assert.Equal(t, "Wendy", updated["first_name"])

	// password untouched by a partial update
	assert.NotEmpty(t, env.loginWith(t, "writer", "a-long-enough-password"))

	rec = env.do(t, http.MethodGet, "/api/v1/admin/admin-users?search=writ", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []map[string]any
	decodeBody(t, rec, &users)
	require.Len(t, users, 1)
	assert.Equal(t, "writer", users[0]["username"])

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/admin-users/"+created.ID, nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/admin-users/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteOwnAdminAccount(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t, "solo", true, true)
	token := env.login(t, "solo")

	rec := env.do(t, http.MethodDelete, "/api/v1/admin/admin-users/"+admin.ID.String(), nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
