package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
)

type ProjectImageRepo struct {
	repo[models.ProjectImage]
}

func NewProjectImageRepo(db *gorm.DB) *ProjectImageRepo {
	return &ProjectImageRepo{repo[models.ProjectImage]{db}}
}

func (r *ProjectImageRepo) FindByProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectImage, error) {
	var images []models.ProjectImage
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("display_order").
		Find(&images).Error
	return images, err
}

// FindInProject returns the image only when it belongs to projectID.
func (r *ProjectImageRepo) FindInProject(ctx context.Context, projectID, id uuid.UUID) (*models.ProjectImage, error) {
	var image models.ProjectImage
	err := r.db.WithContext(ctx).Where("id = ? AND project_id = ?", id, projectID).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

type CodeSnippetRepo struct {
	repo[models.CodeSnippet]
}

func NewCodeSnippetRepo(db *gorm.DB) *CodeSnippetRepo {
	return &CodeSnippetRepo{repo[models.CodeSnippet]{db}}
}

func (r *CodeSnippetRepo) FindByProject(ctx context.Context, projectID uuid.UUID, publicOnly bool) ([]models.CodeSnippet, error) {
	var snippets []models.CodeSnippet
	query := r.db.WithContext(ctx).Where("project_id = ?", projectID)
	if publicOnly {
		query = query.Where("is_public = ?", true)
	}
	err := query.Order("display_order").Find(&snippets).Error
	return snippets, err
}

func (r *CodeSnippetRepo) FindInProject(ctx context.Context, projectID, id uuid.UUID) (*models.CodeSnippet, error) {
	var snippet models.CodeSnippet
	err := r.db.WithContext(ctx).Where("id = ? AND project_id = ?", id, projectID).First(&snippet).Error
	if err != nil {
		return nil, err
	}
	return &snippet, nil
}
