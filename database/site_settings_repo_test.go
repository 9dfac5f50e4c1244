package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteSettingsRepo_GetCreatesDefaults(t *testing.T) {
	ctx := context.Background()
	repo := New(testkit.OpenTestDB(t)).SiteSettingsRepo()

	settings, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "DevPortfolio", settings.SiteName)
	assert.Equal(t, "#3b82f6", settings.PrimaryColor)
	assert.True(t, settings.DarkMode)

	again, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)
}

func TestSiteSettingsRepo_SingleRowAfterWrites(t *testing.T) {
	ctx := context.Background()
	repo := New(testkit.OpenTestDB(t)).SiteSettingsRepo()

	const writes = 5
	var last models.SiteSettings
	for i := 0; i < writes; i++ {
		s := models.DefaultSiteSettings()
		s.SiteName = fmt.Sprintf("Site %d", i)
		require.NoError(t, repo.Save(ctx, &s))
		last = s
	}

	existing, err := repo.Get(ctx)
	require.NoError(t, err)
	existing.DarkMode = false
	require.NoError(t, repo.Save(ctx, existing))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, last.ID, got.ID)
	assert.Equal(t, fmt.Sprintf("Site %d", writes-1), got.SiteName)
	assert.False(t, got.DarkMode)
}

func TestSeedPortfolio_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := testkit.OpenTestDB(t)
	d := New(db)
	admin := SeedAdmin{Username: "admin", Email: "admin@example.com", PasswordHash: "$2a$10$hash"}

	require.NoError(t, SeedPortfolio(ctx, d, admin))
	require.NoError(t, SeedPortfolio(ctx, d, admin))

	for model, want := range map[any]int64{
		&models.AdminUser{}:       1,
		&models.Technology{}:      5,
		&models.ProjectCategory{}: 5,
		&models.SiteSettings{}:    1,
		&models.ContentBlock{}:    2,
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Equal(t, want, count, "%T", model)
	}

	user, err := d.AdminUserRepo().FindByLogin(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, user.IsSuperAdmin)
	assert.True(t, user.IsSuperuser)
	assert.True(t, user.IsStaff)

	settings, err := d.SiteSettingsRepo().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com", settings.SocialLink("github"))
}
