package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-cms-backend/auth"
	"github.com/rpupo63/portfolio-cms-backend/config"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/services"
	"github.com/rpupo63/portfolio-cms-backend/storage"
	"github.com/rpupo63/portfolio-cms-backend/testkit"
	"github.com/stretchr/testify/require"
)

const (
	testSiteURL  = "http://localhost:8000"
	testPassword = "correct-horse-battery"
)

// recordingNotifier collects notifications so tests can wait for the detached send.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []services.Notification
	done chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}, 16)}
}

func (n *recordingNotifier) Name() string { return "recording" }

func (n *recordingNotifier) Notify(_ context.Context, msg services.Notification) error {
	n.mu.Lock()
	n.sent = append(n.sent, msg)
	n.mu.Unlock()
	n.done <- struct{}{}
	return nil
}

type testEnv struct {
	router   http.Handler
	db       database.Database
	store    *storage.Local
	notifier *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := storage.NewLocal(t.TempDir(), testSiteURL+"/media/")
	require.NoError(t, err)
	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	cfg := config.AppConfig{
		Environment:     "test",
		SiteURL:         testSiteURL,
		MediaURL:        "/media/",
		AcceptedOrigins: []string{"http://localhost:3000"},
	}
	env := &testEnv{
		db:       database.New(testkit.OpenTestDB(t)),
		store:    store,
		notifier: newRecordingNotifier(),
	}
	env.router = newRouter(Dependencies{
		Database: env.db,
		Storage:  store,
		Tokens:   tokens,
		Notifier: env.notifier,
	}, withConfig(cfg), withStartupTime(time.Now()))
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// createAdmin stores an account with testPassword directly through the repository.
func (e *testEnv) createAdmin(t *testing.T, username string, superAdmin, active bool) *models.AdminUser {
	t.Helper()

	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	user := &models.AdminUser{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		IsSuperAdmin: superAdmin,
		IsActive:     active,
	}
	require.NoError(t, e.db.AdminUserRepo().Add(context.Background(), user))
	return user
}

func (e *testEnv) login(t *testing.T, username string) string {
	t.Helper()
	return e.loginWith(t, username, testPassword)
}

func (e *testEnv) loginWith(t *testing.T, username, password string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/v1/admin/auth/login", map[string]string{
		"login":    username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

// adminToken creates a super admin and logs in.
func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	e.createAdmin(t, "admin", true, true)
	return e.login(t, "admin")
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}
