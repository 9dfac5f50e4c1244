package database

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
)

// ProjectFilter narrows project listings. Category and Technology are slugs.
type ProjectFilter struct {
	Category   string
	Technology string
	Status     string
	Featured   *bool
	Public     *bool
	Search     string
}

type ProjectRepo struct {
	repo[models.Project]
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{repo[models.Project]{db}}
}

const projectOrder = "display_order, created_at DESC"

func withProjectSummary(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").Preload("Technologies", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order, name")
	})
}

func (r *ProjectRepo) filtered(ctx context.Context, f ProjectFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Project{})
	if f.Public != nil {
		query = query.Where("is_public = ?", *f.Public)
	}
	if f.Category != "" {
		query = query.Where("category_id IN (?)",
			r.db.Model(&models.ProjectCategory{}).Select("id").Where("slug = ?", f.Category))
	}
	if f.Technology != "" {
		query = query.Where("id IN (?)",
			r.db.Table("project_technologies").Select("project_id").Where("technology_id IN (?)",
				r.db.Model(&models.Technology{}).Select("id").Where("slug = ?", f.Technology)))
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Featured != nil {
		query = query.Where("is_featured = ?", *f.Featured)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		pattern := likePattern(term)
		tagSQL, tagArg := tagContains(r.db, "tags", term)
		query = query.Where(
			`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(short_description) LIKE ? ESCAPE '\' OR `+tagSQL+`)`,
			pattern, pattern, tagArg,
		)
	}
	return query
}

// tagContains matches rows whose JSON list column holds exactly tag.
func tagContains(db *gorm.DB, column, tag string) (string, any) {
	if IsPostgres(db) {
		encoded, _ := json.Marshal([]string{tag})
		return column + " @> ?::jsonb", string(encoded)
	}
	return "EXISTS (SELECT 1 FROM json_each(" + column + ") WHERE json_each.value = ?)", tag
}

// FindPage returns one page of projects with their category and technologies
func (r *ProjectRepo) FindPage(ctx context.Context, f ProjectFilter, req PageRequest) (Page[models.Project], error) {
	return paginate[models.Project](ctx, r.filtered(ctx, f), req, DefaultProjectPageSize, projectOrder, withProjectSummary)
}

func (r *ProjectRepo) FindFeatured(ctx context.Context, limit int) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Scopes(withProjectSummary).
		Where("is_featured = ? AND is_public = ?", true, true).
		Order("display_order").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepo) FindRecent(ctx context.Context, limit int) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Scopes(withProjectSummary).
		Where("is_public = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

// FindPublicBySlug returns a public project with images, demo and public code snippets.
func (r *ProjectRepo) FindPublicBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Scopes(withProjectSummary).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order") }).
		Preload("CodeSnippets", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_public = ?", true).Order("display_order")
		}).
		Preload("DemoInstance").
		Where("slug = ? AND is_public = ?", slug, true).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByID loads a project with every relation, including private snippets.
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Scopes(withProjectSummary).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order") }).
		Preload("CodeSnippets", func(db *gorm.DB) *gorm.DB { return db.Order("display_order") }).
		Preload("DemoInstance").
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Project, error) {
	return findByIDs[models.Project](ctx, r.db, ids)
}

// Save creates or updates the project. A non-nil technologies slice replaces its links.
func (r *ProjectRepo) Save(ctx context.Context, project *models.Project, isNew bool, technologies []models.Technology) error {
	associations := map[string]any{}
	if technologies != nil {
		associations["Technologies"] = technologies
	}
	return saveWithAssociations(ctx, r.db, project, isNew, associations)
}

// Delete removes the project with its images, snippets and demo. Testimonials keep their text and
// lose the project link.
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearJoinRows(tx, "project_id", id,
			"project_technologies", "experience_projects", "resume_projects"); err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.CodeSnippet{}).Error; err != nil {
			return err
		}
		demoIDs := tx.Model(&models.DemoInstance{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("demo_id IN (?)", demoIDs).Delete(&models.DemoStat{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.DemoInstance{}).Error; err != nil {
			return err
		}
		err := tx.Model(&models.Testimonial{}).
			Where("project_id = ?", id).
			UpdateColumn("project_id", nil).Error
		if err != nil {
			return err
		}
		return deleteByID[models.Project](tx, id)
	})
}
