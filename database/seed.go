package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedAdmin is the super admin created when no account with Username exists.
type SeedAdmin struct {
	Username     string
	Email        string
	PasswordHash string
}

var seedTechnologies = []models.Technology{
	{Name: "Python", Slug: "python", Type: models.TechnologyLanguage, Category: "Backend", Icon: "🐍",
		Color: "from-yellow-500 to-orange-500", Proficiency: 95, IsFeatured: true, Order: 1,
		Description: "Versatile programming language for web development, data science, and automation.",
		WebsiteURL:  "https://python.org"},
	{Name: "Django", Slug: "django", Type: models.TechnologyFramework, Category: "Backend", Icon: "🎸",
		Color: "from-green-600 to-emerald-500", Proficiency: 90, IsFeatured: true, Order: 2,
		Description: "High-level Python web framework for rapid development.",
		WebsiteURL:  "https://djangoproject.com"},
	{Name: "React", Slug: "react", Type: models.TechnologyFramework, Category: "Frontend", Icon: "⚛️",
		Color: "from-blue-500 to-cyan-500", Proficiency: 85, IsFeatured: true, Order: 3,
		Description: "JavaScript library for building user interfaces.",
		WebsiteURL:  "https://reactjs.org"},
	{Name: "JavaScript", Slug: "javascript", Type: models.TechnologyLanguage, Category: "Frontend", Icon: "📜",
		Color: "from-yellow-400 to-amber-500", Proficiency: 88, IsFeatured: true, Order: 4,
		Description: "Programming language for interactive web applications.",
		WebsiteURL:  "https://javascript.com"},
	{Name: "MySQL", Slug: "mysql", Type: models.TechnologyDatabase, Category: "Database", Icon: "🐬",
		Color: "from-orange-500 to-amber-500", Proficiency: 80, IsFeatured: true, Order: 5,
		Description: "Popular open-source relational database.",
		WebsiteURL:  "https://mysql.com"},
}

var seedCategories = []models.ProjectCategory{
	{Name: "Web Applications", Slug: "web-apps", Order: 1, Color: "#3b82f6"},
	{Name: "APIs", Slug: "apis", Order: 2, Color: "#3b82f6"},
	{Name: "Machine Learning", Slug: "ml", Order: 3, Color: "#3b82f6"},
	{Name: "Mobile Apps", Slug: "mobile", Order: 4, Color: "#3b82f6"},
	{Name: "DevOps", Slug: "devops", Order: 5, Color: "#3b82f6"},
}

var seedContentBlocks = []models.ContentBlock{
	{BlockType: models.BlockHero, Title: "Welcome to My Portfolio",
		Content:    "Showcasing amazing projects across multiple technologies and frameworks.",
		ButtonText: "View Projects", ButtonURL: "/projects", IsActive: true, Order: 1},
	{BlockType: models.BlockFeatures, Title: "Portfolio Features",
		Content:  "Interactive showcase of all my work with live demos and detailed documentation.",
		IsActive: true, Order: 2},
}

// SeedPortfolio inserts the default admin, technologies, categories, settings and content
// blocks. Existing rows are left alone, so it can run repeatedly.
func SeedPortfolio(ctx context.Context, d Database, admin SeedAdmin) error {
	logger := log.With().Str("task", "seedPortfolio").Logger()

	if admin.PasswordHash != "" {
		_, err := d.AdminUserRepo().FindByLogin(ctx, admin.Username)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user := models.AdminUser{
				Username:     admin.Username,
				Email:        admin.Email,
				PasswordHash: admin.PasswordHash,
				IsSuperAdmin: true,
				IsActive:     true,
				Department:   "IT",
			}
			if err := d.AdminUserRepo().Add(ctx, &user); err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			logger.Info().Str("username", admin.Username).Msg("Created super admin user")
		case err != nil:
			return fmt.Errorf("find admin: %w", err)
		}
	} else {
		logger.Warn().Msg("ADMIN_PASSWORD is empty, skipping admin user")
	}

	for _, tech := range seedTechnologies {
		tech := tech
		if _, err := d.TechnologyRepo().GetOrCreate(ctx, &tech); err != nil {
			return fmt.Errorf("seed technology %s: %w", tech.Slug, err)
		}
	}
	logger.Info().Int("count", len(seedTechnologies)).Msg("Seeded technologies")

	for _, category := range seedCategories {
		category := category
		if _, err := d.CategoryRepo().GetOrCreate(ctx, &category); err != nil {
			return fmt.Errorf("seed category %s: %w", category.Slug, err)
		}
	}
	logger.Info().Int("count", len(seedCategories)).Msg("Seeded categories")

	count, err := d.SiteSettingsRepo().Count(ctx)
	if err != nil {
		return fmt.Errorf("count settings: %w", err)
	}
	if count == 0 {
		settings := models.DefaultSiteSettings()
		settings.SocialLinks = datatypes.JSONMap{
			"github":   "https://github.com",
			"linkedin": "https://linkedin.com",
			"twitter":  "https://twitter.com",
		}
		if err := d.SiteSettingsRepo().Save(ctx, &settings); err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
	}

	for _, block := range seedContentBlocks {
		block := block
		if _, err := d.ContentBlockRepo().GetOrCreate(ctx, &block); err != nil {
			return fmt.Errorf("seed content block %s: %w", block.BlockType, err)
		}
	}

	logger.Info().Msg("Portfolio initialized successfully!")
	return nil
}
