package database

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
)

// Stats are the headline counters shown on the home page.
type Stats struct {
	TotalProjects        int64 `json:"total_projects"`
	TotalTechnologies    int64 `json:"total_technologies"`
	TotalDemos           int64 `json:"total_demos"`
	TotalMessages        int64 `json:"total_messages"`
	FeaturedProjects     int64 `json:"featured_projects"`
	FeaturedTechnologies int64 `json:"featured_technologies"`
	TotalExperiences     int64 `json:"total_experiences"`
	TotalEducation       int64 `json:"total_education"`
}

type StatsRepo struct {
	db *gorm.DB
}

func NewStatsRepo(db *gorm.DB) *StatsRepo {
	return &StatsRepo{db}
}

// Get counts public content. Messages are never exposed and always report zero.
func (r *StatsRepo) Get(ctx context.Context) (Stats, error) {
	var stats Stats
	db := r.db.WithContext(ctx)

	counts := []struct {
		name  string
		dest  *int64
		query *gorm.DB
	}{
		{"projects", &stats.TotalProjects, db.Model(&models.Project{}).Where("is_public = ?", true)},
		{"technologies", &stats.TotalTechnologies, db.Model(&models.Technology{})},
		{"demos", &stats.TotalDemos, db.Model(&models.DemoInstance{}).Where("is_public = ? AND status = ?", true, models.DemoOnline)},
		{"featured projects", &stats.FeaturedProjects, db.Model(&models.Project{}).Where("is_featured = ? AND is_public = ?", true, true)},
		{"featured technologies", &stats.FeaturedTechnologies, db.Model(&models.Technology{}).Where("is_featured = ?", true)},
		{"experiences", &stats.TotalExperiences, db.Model(&models.Experience{})},
		{"education", &stats.TotalEducation, db.Model(&models.Education{})},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return Stats{}, fmt.Errorf("count %s: %w", c.name, err)
		}
	}
	return stats, nil
}
