package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newResume(title string, primary bool) *models.Resume {
	return &models.Resume{
		Title:      title,
		File:       "resumes/" + models.Slugify(title) + ".pdf",
		FileType:   models.FilePDF,
		ResumeType: models.ResumeCurrent,
		Language:   "en",
		Version:    "1.0",
		IsPrimary:  primary,
		IsPublic:   true,
	}
}

func primaryIDs(t *testing.T, db *gorm.DB) []uuid.UUID {
	t.Helper()
	var ids []uuid.UUID
	require.NoError(t, db.Model(&models.Resume{}).Where("is_primary = ?", true).Pluck("id", &ids).Error)
	return ids
}

func TestResumeRepo_SinglePrimary(t *testing.T) {
	ctx := context.Background()
	db := testkit.OpenTestDB(t)
	repo := New(db).ResumeRepo()

	first := newResume("Backend CV", true)
	second := newResume("Frontend CV", false)
	third := newResume("Academic CV", true)
	require.NoError(t, repo.Save(ctx, first, true, ResumeLinks{}))
	require.NoError(t, repo.Save(ctx, second, true, ResumeLinks{}))
	require.NoError(t, repo.Save(ctx, third, true, ResumeLinks{}))
	assert.Equal(t, []uuid.UUID{third.ID}, primaryIDs(t, db))

	second.IsPrimary = true
	require.NoError(t, repo.Save(ctx, second, false, ResumeLinks{}))
	assert.Equal(t, []uuid.UUID{second.ID}, primaryIDs(t, db))

	require.NoError(t, repo.SetPrimary(ctx, first.ID))
	assert.Equal(t, []uuid.UUID{first.ID}, primaryIDs(t, db))

	assert.ErrorIs(t, repo.SetPrimary(ctx, uuid.New()), gorm.ErrRecordNotFound)
	assert.Equal(t, []uuid.UUID{first.ID}, primaryIDs(t, db))
}

func TestResumeRepo_Counters(t *testing.T) {
	ctx := context.Background()
	repo := New(testkit.OpenTestDB(t)).ResumeRepo()

	resume := newResume("Counted", false)
	resume.ViewCount = 3
	require.NoError(t, repo.Save(ctx, resume, true, ResumeLinks{}))

	const k = 7
	var last int
	for i := 0; i < k; i++ {
		n, err := repo.IncrementViewCount(ctx, resume.ID)
		require.NoError(t, err)
		last = n
	}
	assert.Equal(t, 3+k, last)

	require.NoError(t, repo.IncrementDownloadCount(ctx, resume.ID))
	require.NoError(t, repo.IncrementDownloadCount(ctx, resume.ID))

	got, err := repo.FindByID(ctx, resume.ID)
	require.NoError(t, err)
	assert.Equal(t, 3+k, got.ViewCount)
	assert.Equal(t, 2, got.DownloadCount)

	assert.ErrorIs(t, repo.IncrementDownloadCount(ctx, uuid.New()), gorm.ErrRecordNotFound)
}

func TestResumeRepo_FindForCV(t *testing.T) {
	ctx := context.Background()
	repo := New(testkit.OpenTestDB(t)).ResumeRepo()

	_, err := repo.FindForCV(ctx)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	older := newResume("Older", false)
	require.NoError(t, repo.Save(ctx, older, true, ResumeLinks{}))
	time.Sleep(10 * time.Millisecond)
	newer := newResume("Newer", false)
	require.NoError(t, repo.Save(ctx, newer, true, ResumeLinks{}))

	got, err := repo.FindForCV(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)

	require.NoError(t, repo.SetPrimary(ctx, older.ID))
	got, err = repo.FindForCV(ctx)
	require.NoError(t, err)
	assert.Equal(t, older.ID, got.ID)
}

func TestResumeRepo_LinksAndDelete(t *testing.T) {
	ctx := context.Background()
	db := testkit.OpenTestDB(t)
	d := New(db)

	tech := &models.Technology{Name: "Rust", Type: models.TechnologyLanguage}
	require.NoError(t, d.TechnologyRepo().Add(ctx, tech))
	job := &models.Experience{Position: "Engineer", Company: "Acme", ExperienceType: models.ExperienceFullTime,
		StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), IsCurrent: true}
	require.NoError(t, d.ExperienceRepo().Save(ctx, job, true, nil, nil))

	resume := newResume("Linked", true)
	links := ResumeLinks{Technologies: []models.Technology{*tech}, Experiences: []models.Experience{*job}}
	require.NoError(t, d.ResumeRepo().Save(ctx, resume, true, links))

	got, err := d.ResumeRepo().FindPublicByID(ctx, resume.ID)
	require.NoError(t, err)
	require.Len(t, got.Technologies, 1)
	require.Len(t, got.Experiences, 1)
	assert.Equal(t, "Acme", got.Experiences[0].Company)

	deleted, err := d.ResumeRepo().Delete(ctx, resume.ID)
	require.NoError(t, err)
	assert.Equal(t, resume.File, deleted.File)

	var links64 int64
	require.NoError(t, db.Table("resume_technologies").Count(&links64).Error)
	assert.Zero(t, links64)

	_, err = d.TechnologyRepo().FindByID(ctx, tech.ID)
	assert.NoError(t, err)
}

func TestResumeRepo_RejectsMismatchedExtension(t *testing.T) {
	ctx := context.Background()
	repo := New(testkit.OpenTestDB(t)).ResumeRepo()

	resume := newResume("Wrong", false)
	resume.File = "resumes/wrong.docx"
	assert.Error(t, repo.Save(ctx, resume, true, ResumeLinks{}))
}
