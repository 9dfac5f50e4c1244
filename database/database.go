package database

import (
	"context"

	"gorm.io/gorm"
)

type Database struct {
	db                   *gorm.DB
	technologyRepo       *TechnologyRepo
	categoryRepo         *CategoryRepo
	projectRepo          *ProjectRepo
	projectImageRepo     *ProjectImageRepo
	codeSnippetRepo      *CodeSnippetRepo
	demoRepo             *DemoRepo
	contactMessageRepo   *ContactMessageRepo
	siteSettingsRepo     *SiteSettingsRepo
	visitorAnalyticsRepo *VisitorAnalyticsRepo
	contentBlockRepo     *ContentBlockRepo
	testimonialRepo      *TestimonialRepo
	rotatingTextRepo     *RotatingTextRepo
	experienceRepo       *ExperienceRepo
	educationRepo        *EducationRepo
	resumeRepo           *ResumeRepo
	adminUserRepo        *AdminUserRepo
	statsRepo            *StatsRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                   db,
		technologyRepo:       NewTechnologyRepo(db),
		categoryRepo:         NewCategoryRepo(db),
		projectRepo:          NewProjectRepo(db),
		projectImageRepo:     NewProjectImageRepo(db),
		codeSnippetRepo:      NewCodeSnippetRepo(db),
		demoRepo:             NewDemoRepo(db),
		contactMessageRepo:   NewContactMessageRepo(db),
		siteSettingsRepo:     NewSiteSettingsRepo(db),
		visitorAnalyticsRepo: NewVisitorAnalyticsRepo(db),
		contentBlockRepo:     NewContentBlockRepo(db),
		testimonialRepo:      NewTestimonialRepo(db),
		rotatingTextRepo:     NewRotatingTextRepo(db),
		experienceRepo:       NewExperienceRepo(db),
		educationRepo:        NewEducationRepo(db),
		resumeRepo:           NewResumeRepo(db),
		adminUserRepo:        NewAdminUserRepo(db),
		statsRepo:            NewStatsRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) TechnologyRepo() *TechnologyRepo {
	return d.technologyRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectImageRepo() *ProjectImageRepo {
	return d.projectImageRepo
}

func (d Database) CodeSnippetRepo() *CodeSnippetRepo {
	return d.codeSnippetRepo
}

func (d Database) DemoRepo() *DemoRepo {
	return d.demoRepo
}

func (d Database) ContactMessageRepo() *ContactMessageRepo {
	return d.contactMessageRepo
}

func (d Database) SiteSettingsRepo() *SiteSettingsRepo {
	return d.siteSettingsRepo
}

func (d Database) VisitorAnalyticsRepo() *VisitorAnalyticsRepo {
	return d.visitorAnalyticsRepo
}

func (d Database) ContentBlockRepo() *ContentBlockRepo {
	return d.contentBlockRepo
}

func (d Database) TestimonialRepo() *TestimonialRepo {
	return d.testimonialRepo
}

func (d Database) RotatingTextRepo() *RotatingTextRepo {
	return d.rotatingTextRepo
}

func (d Database) ExperienceRepo() *ExperienceRepo {
	return d.experienceRepo
}

func (d Database) EducationRepo() *EducationRepo {
	return d.educationRepo
}

func (d Database) ResumeRepo() *ResumeRepo {
	return d.resumeRepo
}

func (d Database) AdminUserRepo() *AdminUserRepo {
	return d.adminUserRepo
}

func (d Database) StatsRepo() *StatsRepo {
	return d.statsRepo
}

// Ping checks that the database still answers.
func (d Database) Ping(ctx context.Context) error {
	var result int
	return d.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error
}
