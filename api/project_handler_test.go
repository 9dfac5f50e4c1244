package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idResponse struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

func TestProjectLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/technologies", map[string]any{
		"name": "Go", "type": "language", "proficiency": 90, "is_featured": true,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var tech idResponse
	decodeBody(t, rec, &tech)
	assert.Equal(t, "go", tech.Slug)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/categories", map[string]any{"name": "Web Applications"}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var category idResponse
	decodeBody(t, rec, &category)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/projects", map[string]any{
		"title":             "Weather API",
		"short_description": "Forecasts over HTTP",
		"category_id":       category.ID,
		"technology_ids":    []string{tech.ID},
		"tags":              []string{"api", "weather"},
		"start_date":        "2024-01-01",
		"completion_date":   "2024-03-01",
		"featured_image":    "projects/weather.png",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var project struct {
		ID            string           `json:"id"`
		Slug          string           `json:"slug"`
		IsPublic      bool             `json:"is_public"`
		Status        string           `json:"status"`
		StartDate     string           `json:"start_date"`
		FeaturedImage string           `json:"featured_image"`
		Technologies  []map[string]any `json:"technologies"`
	}
	decodeBody(t, rec, &project)
	assert.Equal(t, "weather-api", project.Slug)
	assert.True(t, project.IsPublic)
	assert.Equal(t, "completed", project.Status)
	assert.Equal(t, "2024-01-01", project.StartDate)
	assert.Equal(t, "projects/weather.png", project.FeaturedImage)
	require.Len(t, project.Technologies, 1)

	t.Run("public detail by slug", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/public/projects/weather-api", nil, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var detail map[string]any
		decodeBody(t, rec, &detail)
		assert.Equal(t, "Weather API", detail["title"])
		assert.Equal(t, []any{"api", "weather"}, detail["tags"])
		assert.Equal(t, "2024-01-01", detail["start_date"])
		assert.Equal(t, "2024-03-01", detail["completion_date"])
		assert.EqualValues(t, 60, detail["duration_days"])
		assert.Equal(t, testSiteURL+"/media/projects/weather.png", detail["featured_image"])
	})

	t.Run("partial update keeps links", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/v1/admin/projects/"+project.ID, map[string]any{
			"is_featured": true,
		}, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var updated struct {
			Title        string           `json:"title"`
			IsFeatured   bool             `json:"is_featured"`
			Technologies []map[string]any `json:"technologies"`
		}
		decodeBody(t, rec, &updated)
		assert.Equal(t, "Weather API", updated.Title)
		assert.True(t, updated.IsFeatured)
		assert.Len(t, updated.Technologies, 1)
	})

	t.Run("unknown technology", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/v1/admin/projects/"+project.ID, map[string]any{
			"technology_ids": []string{"3f1c1a34-2a7e-4a8b-9a55-0e6f1f7f0c11"},
		}, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("images and snippets", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/admin/projects/"+project.ID+"/images", map[string]any{
			"image": "projects/shot.png", "caption": "Dashboard",
		}, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec = env.do(t, http.MethodPost, "/api/v1/admin/projects/"+project.ID+"/snippets", map[string]any{
			"title": "Client", "code": "print('hi')",
		}, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var snippet map[string]any
		decodeBody(t, rec, &snippet)
		assert.Equal(t, "python", snippet["language"])

		rec = env.do(t, http.MethodGet, "/api/v1/admin/projects/"+project.ID+"/images", nil, token)
		require.Equal(t, http.StatusOK, rec.Code)
		var images []map[string]any
		decodeBody(t, rec, &images)
		assert.Len(t, images, 1)
	})

	t.Run("hidden from public", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/v1/admin/projects/"+project.ID, map[string]any{"is_public": false}, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = env.do(t, http.MethodGet, "/api/v1/public/projects/weather-api", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = env.do(t, http.MethodGet, "/api/v1/public/projects", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var page struct {
			Items []map[string]any `json:"items"`
			Total int              `json:"total"`
		}
		decodeBody(t, rec, &page)
		assert.Empty(t, page.Items)
		assert.Zero(t, page.Total)
	})

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/projects/"+project.ID, nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodGet, "/api/v1/admin/projects/"+project.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublicProjectPagination(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	for i := 0; i < 15; i++ {
		rec := env.do(t, http.MethodPost, "/api/v1/admin/projects", map[string]any{
			"title":             fmt.Sprintf("Project %02d", i),
			"short_description": "Something useful",
		}, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := env.do(t, http.MethodGet, "/api/v1/public/projects?page=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items       []map[string]any `json:"items"`
		Total       int              `json:"total"`
		Page        int              `json:"page"`
		PageSize    int              `json:"page_size"`
		TotalPages  int              `json:"total_pages"`
		HasNext     bool             `json:"has_next"`
		HasPrevious bool             `json:"has_previous"`
	}
	decodeBody(t, rec, &page)
	assert.Equal(t, 15, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 12, page.PageSize)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 3)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrevious)

	rec = env.do(t, http.MethodGet, "/api/v1/public/projects?page=0&page_size=-4", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &page)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 12, page.PageSize)
}

func TestPublicTechnologies(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	for _, body := range []map[string]any{
		{"name": "Go", "type": "language"},
		{"name": "PostgreSQL", "type": "database"},
	} {
		rec := env.do(t, http.MethodPost, "/api/v1/admin/technologies", body, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := env.do(t, http.MethodPost, "/api/v1/admin/technologies", map[string]any{"name": "Go"}, token)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/public/technologies?type=database", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var techs []map[string]any
	decodeBody(t, rec, &techs)
	require.Len(t, techs, 1)
	assert.Equal(t, "PostgreSQL", techs[0]["name"])
}
