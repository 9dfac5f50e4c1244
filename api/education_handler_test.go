package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type educationItem struct {
	ID             string  `json:"id"`
	Institution    string  `json:"institution"`
	Degree         string  `json:"degree"`
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date"`
	DurationYears  *int    `json:"duration_years"`
	FormattedGrade *string `json:"formatted_grade"`
}

func (e *testEnv) createEducation(t *testing.T, token string, body map[string]any) educationItem {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/admin/education", body, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created educationItem
	decodeBody(t, rec, &created)
	return created
}

func TestPublicEducation(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	degree := env.createEducation(t, token, map[string]any{
		"institution": "State University", "degree": "BSc", "field_of_study": "Computer Science",
		"start_date": "2016-09-01", "end_date": "2020-06-30",
		"grade_type": "gpa", "grade_value": 3.8, "grade_scale": 4, "is_featured": true,
	})
	env.createEducation(t, token, map[string]any{
		"institution": "Online Academy", "degree": "Go Bootcamp", "education_type": "bootcamp",
		"start_date": "2021-01-01", "end_date": "2021-03-01",
		"grade_type": "percentage", "grade_value": 95, "is_featured": true,
	})
	env.createEducation(t, token, map[string]any{
		"institution": "Night School", "degree": "MSc", "education_type": "masters", "start_date": "2023-09-01",
	})
	for i := 0; i < 4; i++ {
		env.createEducation(t, token, map[string]any{
			"institution": fmt.Sprintf("Course Provider %d", i), "degree": "Short course", "education_type": "course",
			"start_date": fmt.Sprintf("201%d-02-01", i), "end_date": fmt.Sprintf("201%d-05-01", i), "is_featured": true,
		})
	}

	list := func(t *testing.T, query string) []educationItem {
		t.Helper()
		rec := env.do(t, http.MethodGet, "/api/v1/public/education"+query, nil, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var page struct {
			Items []educationItem `json:"items"`
			Total int             `json:"total"`
		}
		decodeBody(t, rec, &page)
		require.Len(t, page.Items, page.Total)
		return page.Items
	}

	t.Run("grade and duration", func(t *testing.T) {
		items := list(t, "?education_type=bachelors")
		require.Len(t, items, 1)
		assert.Equal(t, "2016-09-01", items[0].StartDate)
		require.NotNil(t, items[0].DurationYears)
		assert.Equal(t, 3, *items[0].DurationYears)
		require.NotNil(t, items[0].FormattedGrade)
		assert.Equal(t, "3.80/4.00 GPA", *items[0].FormattedGrade)

		items = list(t, "?education_type=bootcamp")
		require.Len(t, items, 1)
		require.NotNil(t, items[0].DurationYears)
		assert.Zero(t, *items[0].DurationYears)
		require.NotNil(t, items[0].FormattedGrade)
		assert.Equal(t, "95.00 %", *items[0].FormattedGrade)
	})

	t.Run("open ended without grade", func(t *testing.T) {
		items := list(t, "?education_type=masters")
		require.Len(t, items, 1)
		assert.Nil(t, items[0].EndDate)
		assert.Nil(t, items[0].DurationYears)
		assert.Nil(t, items[0].FormattedGrade)
	})

	t.Run("search and featured", func(t *testing.T) {
		items := list(t, "?search=computer")
		require.Len(t, items, 1)
		assert.Equal(t, degree.ID, items[0].ID)

		assert.Len(t, list(t, "?is_featured=true"), 6)
		assert.Len(t, list(t, "?is_featured=false"), 1)
	})

	t.Run("about page keeps five", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/public/about/education", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var items []educationItem
		decodeBody(t, rec, &items)
		assert.Len(t, items, 5)
	})

	t.Run("detail", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/public/education/"+degree.ID, nil, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var item educationItem
		decodeBody(t, rec, &item)
		assert.Equal(t, "State University", item.Institution)

		rec = env.do(t, http.MethodGet, "/api/v1/public/education/3f1c1a34-2a7e-4a8b-9a55-0e6f1f7f0c11", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = env.do(t, http.MethodGet, "/api/v1/public/education/42", nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminEducation(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	for name, body := range map[string]map[string]any{
		"grade above scale": {"institution": "Uni", "degree": "BA", "start_date": "2015-09-01",
			"grade_type": "gpa", "grade_value": 5, "grade_scale": 4},
		"unknown grade type": {"institution": "Uni", "degree": "BA", "start_date": "2015-09-01", "grade_type": "stars"},
		"missing start date": {"institution": "Uni", "degree": "BA"},
		"inverted dates":     {"institution": "Uni", "degree": "BA", "start_date": "2019-09-01", "end_date": "2015-06-01"},
	} {
		rec := env.do(t, http.MethodPost, "/api/v1/admin/education", body, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}

	created := env.createEducation(t, token, map[string]any{
		"institution": "Uni", "degree": "BA", "start_date": "2015-09-01", "end_date": "2019-06-01",
	})
	assert.Equal(t, "2015-09-01", created.StartDate)

	rec := env.do(t, http.MethodPut, "/api/v1/admin/education/"+created.ID, map[string]any{"degree": "BA (Hons)"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated educationItem
	decodeBody(t, rec, &updated)
	assert.Equal(t, "BA (Hons)", updated.Degree)
	assert.Equal(t, "Uni", updated.Institution)
	require.NotNil(t, updated.EndDate)
	assert.Equal(t, "2019-06-01", *updated.EndDate)

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/education/"+created.ID, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodGet, "/api/v1/admin/education/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
