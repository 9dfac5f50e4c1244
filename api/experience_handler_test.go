package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type experienceItem struct {
	ID             string  `json:"id"`
	Position       string  `json:"position"`
	Company        string  `json:"company"`
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date"`
	IsCurrent      bool    `json:"is_current"`
	Duration       string  `json:"duration"`
	DurationMonths int     `json:"duration_months"`
}

type experiencePage struct {
	Items      []experienceItem `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
	HasNext    bool             `json:"has_next"`
}

func (e *testEnv) createExperience(t *testing.T, token string, body map[string]any) experienceItem {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/admin/experiences", body, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created experienceItem
	decodeBody(t, rec, &created)
	return created
}

func TestPublicExperiences(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	acme := env.createExperience(t, token, map[string]any{
		"position": "Backend Engineer", "company": "Acme Robotics", "experience_type": "contract",
		"start_date": "2020-01-31", "end_date": "2021-04-30", "is_featured": true,
	})
	assert.Equal(t, "2020-01-31", acme.StartDate)
	require.NotNil(t, acme.EndDate)
	assert.Equal(t, "2021-04-30", *acme.EndDate)

	for i := 0; i < 5; i++ {
		env.createExperience(t, token, map[string]any{
			"position": fmt.Sprintf("Engineer %d", i), "company": "Globex",
			"start_date": fmt.Sprintf("201%d-01-01", i), "end_date": fmt.Sprintf("201%d-06-01", i),
			"is_featured": true,
		})
	}
	env.createExperience(t, token, map[string]any{
		"position": "Staff Engineer", "company": "Initech", "start_date": "2022-01-01", "is_current": true,
	})

	list := func(t *testing.T, query string) experiencePage {
		t.Helper()
		rec := env.do(t, http.MethodGet, "/api/v1/public/experiences"+query, nil, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var page experiencePage
		decodeBody(t, rec, &page)
		return page
	}

	t.Run("type filter with derived fields", func(t *testing.T) {
		page := list(t, "?experience_type=contract")
		require.Equal(t, 1, page.Total)
		item := page.Items[0]
		assert.Equal(t, "Acme Robotics", item.Company)
		assert.Equal(t, "2020-01-31", item.StartDate)
		assert.Equal(t, "1 yr 3 mo", item.Duration)
		assert.Equal(t, 15, item.DurationMonths)
	})

	t.Run("current positions", func(t *testing.T) {
		page := list(t, "?is_current=true")
		require.Equal(t, 1, page.Total)
		assert.Equal(t, "Staff Engineer", page.Items[0].Position)
		assert.Nil(t, page.Items[0].EndDate)
		assert.NotEmpty(t, page.Items[0].Duration)
	})

	t.Run("case insensitive search", func(t *testing.T) {
		page := list(t, "?search=ACME")
		require.Equal(t, 1, page.Total)
		assert.Equal(t, acme.ID, page.Items[0].ID)
	})

	t.Run("featured pagination", func(t *testing.T) {
		page := list(t, "?is_featured=true&page=2&page_size=4")
		assert.Equal(t, 6, page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 4, page.PageSize)
		assert.Equal(t, 2, page.TotalPages)
		assert.Len(t, page.Items, 2)
		assert.False(t, page.HasNext)

		page = list(t, "")
		assert.Equal(t, 7, page.Total)
		assert.Equal(t, 10, page.PageSize)
		assert.Equal(t, "Staff Engineer", page.Items[0].Position)
	})

	t.Run("invalid boolean", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/public/experiences?is_current=sometimes", nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("about page keeps five", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/public/about/experience", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var items []experienceItem
		decodeBody(t, rec, &items)
		assert.Len(t, items, 5)
	})

	t.Run("detail", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/public/experiences/"+acme.ID, nil, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var item experienceItem
		decodeBody(t, rec, &item)
		assert.Equal(t, "1 yr 3 mo", item.Duration)

		rec = env.do(t, http.MethodGet, "/api/v1/public/experiences/3f1c1a34-2a7e-4a8b-9a55-0e6f1f7f0c11", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = env.do(t, http.MethodGet, "/api/v1/public/experiences/not-a-uuid", nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminExperiences(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/experiences", map[string]any{
		"position": "Engineer", "company": "Acme",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/experiences", map[string]any{
		"position": "Engineer", "company": "Acme", "start_date": "2022-01-01", "end_date": "2021-01-01",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/experiences", map[string]any{
		"position": "Engineer", "company": "Acme", "start_date": "2021-01-01", "experience_type": "gig",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	created := env.createExperience(t, token, map[string]any{
		"position": "Engineer", "company": "Acme", "start_date": "2021-01-01", "end_date": "2022-01-01",
	})

	rec = env.do(t, http.MethodPut, "/api/v1/admin/experiences/"+created.ID, map[string]any{"is_current": true}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated experienceItem
	decodeBody(t, rec, &updated)
	assert.Equal(t, "Engineer", updated.Position)
	assert.Equal(t, "2021-01-01", updated.StartDate)
	assert.True(t, updated.IsCurrent)
	assert.Nil(t, updated.EndDate)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/experiences?search=acme", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var page experiencePage
	decodeBody(t, rec, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "2021-01-01", page.Items[0].StartDate)

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/experiences/"+created.ID, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodGet, "/api/v1/admin/experiences/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
