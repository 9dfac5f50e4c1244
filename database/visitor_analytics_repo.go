package database

import (
	"context"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
)

type VisitorAnalyticsFilter struct {
	SessionID string
	Page      string
}

type VisitorAnalyticsRepo struct {
	repo[models.VisitorAnalytics]
}

func NewVisitorAnalyticsRepo(db *gorm.DB) *VisitorAnalyticsRepo {
	return &VisitorAnalyticsRepo{repo[models.VisitorAnalytics]{db}}
}

func (r *VisitorAnalyticsRepo) FindPage(ctx context.Context, f VisitorAnalyticsFilter, req PageRequest) (Page[models.VisitorAnalytics], error) {
	query := r.db.WithContext(ctx).Model(&models.VisitorAnalytics{})
	if f.SessionID != "" {
		query = query.Where("session_id = ?", f.SessionID)
	}
	if f.Page != "" {
		query = ilike(query, f.Page, "page_visited")
	}
	return paginate[models.VisitorAnalytics](ctx, query, req, DefaultPageSize, "created_at DESC")
}
