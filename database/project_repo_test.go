package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func boolPtr(b bool) *bool { return &b }

func newProject(title string, public bool) *models.Project {
	return &models.Project{
		Title:            title,
		ShortDescription: "Short description of " + title,
		Status:           models.ProjectCompleted,
		DemoType:         models.DemoNone,
		IsPublic:         public,
		Tags:             datatypes.JSONSlice[string]{},
		Features:         datatypes.JSONSlice[string]{},
	}
}

func TestProjectRepo_FindPublicBySlug(t *testing.T) {
	ctx := context.Background()
	d := New(testkit.OpenTestDB(t))
	repo := d.ProjectRepo()

	visible := newProject("Weather API", true)
	hidden := newProject("Secret Tool", false)
	require.NoError(t, repo.Save(ctx, visible, true, nil))
	require.NoError(t, repo.Save(ctx, hidden, true, nil))
	assert.Equal(t, "weather-api", visible.Slug)

	got, err := repo.FindPublicBySlug(ctx, "weather-api")
	require.NoError(t, err)
	assert.Equal(t, visible.ID, got.ID)

	_, err = repo.FindPublicBySlug(ctx, "secret-tool")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = repo.FindPublicBySlug(ctx, "missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestProjectRepo_Pagination(t *testing.T) {
	ctx := context.Background()
	d := New(testkit.OpenTestDB(t))
	repo := d.ProjectRepo()

	for i := 0; i < 25; i++ {
		require.NoError(t, repo.Save(ctx, newProject(fmt.Sprintf("Project %02d", i), true), true, nil))
	}

	page, err := repo.FindPage(ctx, ProjectFilter{Public: boolPtr(true)}, PageRequest{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 5)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrevious)

	page, err = repo.FindPage(ctx, ProjectFilter{Public: boolPtr(true)}, PageRequest{Page: 9, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Len(t, page.Items, 5)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrevious)

	empty, err := repo.FindPage(ctx, ProjectFilter{Search: "no such project"}, PageRequest{Page: 4, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Equal(t, 4, empty.Page)
	assert.Zero(t, empty.TotalPages)

	page, err = repo.FindPage(ctx, ProjectFilter{}, PageRequest{Page: 0, PageSize: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultProjectPageSize, page.PageSize)
	assert.Len(t, page.Items, DefaultProjectPageSize)
	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrevious)
}

func TestProjectRepo_Filters(t *testing.T) {
	ctx := context.Background()
	d := New(testkit.OpenTestDB(t))
	repo := d.ProjectRepo()

	category := &models.ProjectCategory{Name: "Web Applications"}
	require.NoError(t, d.CategoryRepo().Add(ctx, category))
	goTech := &models.Technology{Name: "Go", Type: models.TechnologyLanguage, Proficiency: 80}
	require.NoError(t, d.TechnologyRepo().Add(ctx, goTech))

	web := newProject("Portfolio Site", true)
	web.CategoryID = &category.ID
	web.IsFeatured = true
	web.Tags = datatypes.JSONSlice[string]{"cms", "backend"}
	require.NoError(t, repo.Save(ctx, web, true, []models.Technology{*goTech}))

	other := newProject("Game Engine", true)
	other.Status = models.ProjectInProgress
	other.ShortDescription = "A renderer written for fun"
	require.NoError(t, repo.Save(ctx, other, true, nil))

	cases := []struct {
		name   string
		filter ProjectFilter
		want   []string
	}{
		{"category", ProjectFilter{Category: category.Slug}, []string{"Portfolio Site"}},
		{"technology", ProjectFilter{Technology: "go"}, []string{"Portfolio Site"}},
		{"status", ProjectFilter{Status: string(models.ProjectInProgress)}, []string{"Game Engine"}},
		{"featured", ProjectFilter{Featured: boolPtr(true)}, []string{"Portfolio Site"}},
		{"search title case insensitive", ProjectFilter{Search: "ENGINE"}, []string{"Game Engine"}},
		{"search description", ProjectFilter{Search: "renderer"}, []string{"Game Engine"}},
		{"search exact tag", ProjectFilter{Search: "cms"}, []string{"Portfolio Site"}},
		{"search no match", ProjectFilter{Search: "zzz"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := repo.FindPage(ctx, tc.filter, PageRequest{})
			require.NoError(t, err)
			var titles []string
			for _, p := range page.Items {
				titles = append(titles, p.Title)
			}
			assert.Equal(t, tc.want, titles)
		})
	}

	page, err := repo.FindPage(ctx, ProjectFilter{Technology: "go"}, PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Len(t, page.Items[0].Technologies, 1)
	assert.Equal(t, "Go", page.Items[0].Technologies[0].Name)
	require.NotNil(t, page.Items[0].Category)
	assert.Equal(t, "Web Applications", page.Items[0].Category.Name)
}

func TestProjectRepo_RejectsInvertedDates(t *testing.T) {
	ctx := context.Background()
	d := New(testkit.OpenTestDB(t))

	p := newProject("Backwards", true)
	start := time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)
	p.StartDate, p.CompletionDate = &start, &end

	err := d.ProjectRepo().Save(ctx, p, true, nil)
	assert.Error(t, err)
}

func TestProjectRepo_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := testkit.OpenTestDB(t)
	d := New(db)

	p := newProject("Doomed", true)
	require.NoError(t, d.ProjectRepo().Save(ctx, p, true, nil))
	require.NoError(t, d.ProjectImageRepo().Add(ctx, &models.ProjectImage{ProjectID: p.ID, Image: "projects/a.png"}))
	require.NoError(t, d.CodeSnippetRepo().Add(ctx, &models.CodeSnippet{ProjectID: p.ID, Title: "main", Code: "x", Language: models.LanguageOther}))
	demo := &models.DemoInstance{ProjectID: p.ID, Status: models.DemoOnline, CheckInterval: 300}
	require.NoError(t, d.DemoRepo().Add(ctx, demo))
	require.NoError(t, d.DemoRepo().StartSession(ctx, &models.DemoStat{DemoID: demo.ID, SessionID: "s1", StartTime: time.Now()}))
	quote := &models.Testimonial{ClientName: "Ada", Content: "Great", Rating: 5, ProjectID: &p.ID}
	require.NoError(t, d.TestimonialRepo().Add(ctx, quote))

	require.NoError(t, d.ProjectRepo().Delete(ctx, p.ID))

	for _, model := range []any{&models.ProjectImage{}, &models.CodeSnippet{}, &models.DemoInstance{}, &models.DemoStat{}, &models.Project{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T", model)
	}

	kept, err := d.TestimonialRepo().FindByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.ProjectID)

	assert.True(t, errors.Is(d.ProjectRepo().Delete(ctx, p.ID), gorm.ErrRecordNotFound))
}

func TestCategoryRepo_DeleteKeepsProjects(t *testing.T) {
	ctx := context.Background()
	d := New(testkit.OpenTestDB(t))

	category := &models.ProjectCategory{Name: "APIs"}
	require.NoError(t, d.CategoryRepo().Add(ctx, category))
	p := newProject("Gateway", true)
	p.CategoryID = &category.ID
	require.NoError(t, d.ProjectRepo().Save(ctx, p, true, nil))

	require.NoError(t, d.CategoryRepo().Delete(ctx, category.ID))

	got, err := d.ProjectRepo().FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
}
