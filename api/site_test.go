package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/test/ping", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ping":"pong"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/public/projects", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/public/projects", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubmitContact(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.do(t, http.MethodPost, "/api/v1/public/contact", map[string]any{
		"name": "Sam", "email": "not-an-email", "subject": "Hi", "message": "Hello",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/public/contact", map[string]any{
		"name": "Sam", "email": "sam@example.com", "subject": "Project", "message": "Let's talk",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Message sent successfully!"}`, rec.Body.String())

	select {
	case <-env.notifier.done:
	case <-time.After(5 * time.Second):
		t.Fatal("notification was not sent")
	}
	env.notifier.mu.Lock()
	require.Len(t, env.notifier.sent, 1)
	assert.Contains(t, env.notifier.sent[0].Subject, "Project")
	env.notifier.mu.Unlock()

	rec = env.do(t, http.MethodGet, "/api/v1/admin/contact-messages?status=new", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"items"`
	}
	decodeBody(t, rec, &page)
	require.Len(t, page.Items, 1)

	rec = env.do(t, http.MethodPut, "/api/v1/admin/contact-messages/"+page.Items[0].ID, map[string]any{
		"status": "replied",
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var message map[string]any
	decodeBody(t, rec, &message)
	assert.Equal(t, "replied", message["status"])
	assert.NotNil(t, message["replied_at"])
	assert.Equal(t, "Let's talk", message["message"])
}

func TestDemoSessions(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/projects", map[string]any{
		"title": "Chat App", "short_description": "Realtime chat", "demo_type": "live",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var project idResponse
	decodeBody(t, rec, &project)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/demos", map[string]any{
		"project_id": project.ID, "instance_url": "https://chat.example.com", "admin_password": "s3cret",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var demo idResponse
	decodeBody(t, rec, &demo)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/demos", map[string]any{
		"project_id": project.ID, "check_interval": 5,
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// offline demos cannot be used
	rec = env.do(t, http.MethodPost, "/api/v1/public/demos/"+demo.ID+"/sessions", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/v1/admin/demos/"+demo.ID, map[string]any{"status": "online"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/public/demos", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "s3cret")
	assert.Contains(t, rec.Body.String(), "https://chat.example.com")

	rec = env.do(t, http.MethodPost, "/api/v1/public/demos/"+demo.ID+"/sessions", nil, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var session struct {
		SessionID string `json:"session_id"`
	}
	decodeBody(t, rec, &session)
	require.NotEmpty(t, session.SessionID)

	rec = env.do(t, http.MethodPost, "/api/v1/public/demos/"+demo.ID+"/sessions/"+session.SessionID+"/end",
		map[string]any{"actions_count": 7}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var stat struct {
		EndTime      *time.Time `json:"end_time"`
		Duration     *int       `json:"duration"`
		ActionsCount int        `json:"actions_count"`
	}
	decodeBody(t, rec, &stat)
	assert.NotNil(t, stat.EndTime)
	assert.NotNil(t, stat.Duration)
	assert.Equal(t, 7, stat.ActionsCount)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/demos/"+demo.ID+"/stats", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		Total int `json:"total"`
	}
	decodeBody(t, rec, &stats)
	assert.Equal(t, 1, stats.Total)
}

func TestSiteSettings(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.do(t, http.MethodGet, "/api/v1/public/settings", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var public map[string]any
	decodeBody(t, rec, &public)
	assert.Equal(t, "DevPortfolio", public["site_name"])

	rec = env.do(t, http.MethodPut, "/api/v1/admin/settings", map[string]any{
		"primary_color": "blue",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/v1/admin/settings", map[string]any{
		"site_name":           "Rafael Builds",
		"maintenance_mode":    true,
		"maintenance_message": "Back soon",
		"logo":                "site/logo.png",
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/public/settings/maintenance", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"maintenance_mode":true,"maintenance_message":"Back soon","site_name":"Rafael Builds"}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/public/settings/theme", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var theme map[string]any
	decodeBody(t, rec, &theme)
	assert.Equal(t, testSiteURL+"/media/site/logo.png", theme["logo"])

	count, err := env.db.SiteSettingsRepo().Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestMediaUpload(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("folder", "projects"))
	part, err := form.CreateFormFile("file", "My Screenshot.PNG")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/media", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var uploaded uploadResponse
	decodeBody(t, rec, &uploaded)
	assert.Regexp(t, `^projects/[0-9A-Za-z]{27}-my-screenshot\.png$`, uploaded.Path)
	assert.Equal(t, testSiteURL+"/media/"+uploaded.Path, uploaded.URL)
	assert.EqualValues(t, len("png-bytes"), uploaded.Size)

	rec = env.do(t, http.MethodGet, "/media/"+uploaded.Path, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/media?path="+uploaded.Path, nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/media?path="+uploaded.Path, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/media?path=../secret", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordVisit(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.do(t, http.MethodPost, "/api/v1/public/analytics/visits", map[string]any{
		"page_visited": "/projects",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var visit visitResponse
	decodeBody(t, rec, &visit)
	require.NotEmpty(t, visit.SessionID)

	rec = env.do(t, http.MethodPost, "/api/v1/public/analytics/visits", map[string]any{
		"session_id": visit.SessionID, "page_visited": "/about", "is_bounce": false, "time_on_page": 42,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/v1/public/analytics/visits", map[string]any{}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/analytics/visits?session_id="+visit.SessionID, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Total int `json:"total"`
		Items []struct {
			PageVisited string `json:"page_visited"`
			IsBounce    bool   `json:"is_bounce"`
		} `json:"items"`
	}
	decodeBody(t, rec, &page)
	assert.Equal(t, 2, page.Total)
}
