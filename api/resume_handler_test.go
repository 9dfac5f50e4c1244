package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakePDF = "%PDF-1.4 fake resume"

func (e *testEnv) storeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, e.store.Save(context.Background(), name, strings.NewReader(content), int64(len(content)), ""))
}

func TestResumeLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.do(t, http.MethodGet, "/api/v1/public/about/cv", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))

	rec = env.do(t, http.MethodPost, "/api/v1/admin/resumes", map[string]any{
		"title": "Missing", "file": "resumes/missing.pdf",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env.storeFile(t, "resumes/cv.pdf", fakePDF)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/resumes", map[string]any{
		"title": "Wrong type", "file": "resumes/cv.pdf", "file_type": "docx",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/experiences", map[string]any{
		"position": "Engineer", "company": "Acme", "start_date": "2020-01-01",
		"end_date": "2021-01-01", "is_current": true,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var experience struct {
		ID      string  `json:"id"`
		EndDate *string `json:"end_date"`
	}
	decodeBody(t, rec, &experience)
	assert.Nil(t, experience.EndDate)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/resumes", map[string]any{
		"title":          "Main CV",
		"file":           "resumes/cv.pdf",
		"is_primary":     true,
		"experience_ids": []string{experience.ID},
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resume struct {
		ID       string `json:"id"`
		FileSize int64  `json:"file_size"`
	}
	decodeBody(t, rec, &resume)
	assert.EqualValues(t, len(fakePDF), resume.FileSize)

	t.Run("primary and cv", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/public/resumes/primary", nil, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var primary struct {
			ID          string           `json:"id"`
			File        string           `json:"file"`
			DownloadURL string           `json:"download_url"`
			PreviewURL  *string          `json:"preview_url"`
			Experiences []map[string]any `json:"experiences"`
		}
		decodeBody(t, rec, &primary)
		assert.Equal(t, resume.ID, primary.ID)
		assert.Equal(t, testSiteURL+"/media/resumes/cv.pdf", primary.File)
		assert.Equal(t, testSiteURL+"/api/v1/public/resumes/"+resume.ID+"/download", primary.DownloadURL)
		assert.NotNil(t, primary.PreviewURL)
		assert.Len(t, primary.Experiences, 1)

		rec = env.do(t, http.MethodGet, "/api/v1/public/about/cv", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), resume.ID)
	})

	t.Run("download counts", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/public/resumes/"+resume.ID+"/download", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, fakePDF, rec.Body.String())
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), "attachment"))

		rec = env.do(t, http.MethodGet, "/api/v1/public/resumes/"+resume.ID+"/preview", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), "inline"))

		rec = env.do(t, http.MethodPost, "/api/v1/public/resumes/"+resume.ID+"/view", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var views map[string]int
		decodeBody(t, rec, &views)
		assert.Equal(t, 2, views["view_count"])

		rec = env.do(t, http.MethodGet, "/api/v1/admin/resumes/"+resume.ID, nil, token)
		require.Equal(t, http.StatusOK, rec.Code)
		var stored struct {
			DownloadCount int `json:"download_count"`
			ViewCount     int `json:"view_count"`
		}
		decodeBody(t, rec, &stored)
		assert.Equal(t, 1, stored.DownloadCount)
		assert.Equal(t, 2, stored.ViewCount)
	})

	t.Run("second primary replaces the first", func(t *testing.T) {
		env.storeFile(t, "resumes/short.pdf", fakePDF)
		rec := env.do(t, http.MethodPost, "/api/v1/admin/resumes", map[string]any{
			"title": "Short CV", "file": "resumes/short.pdf", "resume_type": "concise",
		}, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var second idResponse
		decodeBody(t, rec, &second)

		rec = env.do(t, http.MethodPost, "/api/v1/admin/resumes/"+second.ID+"/primary", nil, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = env.do(t, http.MethodGet, "/api/v1/public/resumes/primary", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), second.ID)
	})

	t.Run("private resumes are hidden", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/v1/admin/resumes/"+resume.ID, map[string]any{"is_public": false}, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = env.do(t, http.MethodGet, "/api/v1/public/resumes/"+resume.ID+"/download", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/resumes/"+resume.ID, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	exists, err := env.store.Exists(context.Background(), "resumes/cv.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestResumePreviewRejectsNonPDF(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)
	env.storeFile(t, "resumes/cv.txt", "plain text resume")

	rec := env.do(t, http.MethodPost, "/api/v1/admin/resumes", map[string]any{
		"title": "Text CV", "file": "resumes/cv.txt", "file_type": "txt",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resume idResponse
	decodeBody(t, rec, &resume)

	rec = env.do(t, http.MethodGet, "/api/v1/public/resumes/"+resume.ID+"/preview", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/public/resumes/"+resume.ID+"/download", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "plain text resume", rec.Body.String())
}
