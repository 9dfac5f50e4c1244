package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
)

type DemoFilter struct {
	Status string
	Public *bool
}

type DemoRepo struct {
	repo[models.DemoInstance]
}

func NewDemoRepo(db *gorm.DB) *DemoRepo {
	return &DemoRepo{repo[models.DemoInstance]{db}}
}

func (r *DemoRepo) filtered(ctx context.Context, f DemoFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.DemoInstance{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Public != nil {
		query = query.Where("is_public = ?", *f.Public)
	}
	return query
}

// FindAll returns demo instances with their project, newest first
func (r *DemoRepo) FindAll(ctx context.Context, f DemoFilter) ([]models.DemoInstance, error) {
	var demos []models.DemoInstance
	err := r.filtered(ctx, f).Preload("Project").Order("created_at DESC").Find(&demos).Error
	return demos, err
}

func (r *DemoRepo) FindPage(ctx context.Context, f DemoFilter, req PageRequest) (Page[models.DemoInstance], error) {
	return paginate[models.DemoInstance](ctx, r.filtered(ctx, f), req, DefaultPageSize, "created_at DESC",
		func(db *gorm.DB) *gorm.DB { return db.Preload("Project") })
}

func (r *DemoRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.DemoInstance, error) {
	return r.repo.FindByID(ctx, id, "Project")
}

// FindPublicOnline returns the demo only when it is public and online.
func (r *DemoRepo) FindPublicOnline(ctx context.Context, id uuid.UUID) (*models.DemoInstance, error) {
	var demo models.DemoInstance
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_public = ? AND status = ?", id, true, models.DemoOnline).
		First(&demo).Error
	if err != nil {
		return nil, err
	}
	return &demo, nil
}

// FindDue returns the demos the health monitor should probe at now.
func (r *DemoRepo) FindDue(ctx context.Context, now time.Time) ([]models.DemoInstance, error) {
	var demos []models.DemoInstance
	if err := r.db.WithContext(ctx).Where("instance_url <> ?", "").Find(&demos).Error; err != nil {
		return nil, err
	}
	due := demos[:0]
	for _, d := range demos {
		if d.DueForCheck(now) {
			due = append(due, d)
		}
	}
	return due, nil
}

// UpdateStatus records a health check result without touching other columns.
func (r *DemoRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.DemoStatus, checkedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.DemoInstance{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"status":       status,
			"last_checked": checkedAt,
			"updated_at":   checkedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the demo and its session stats.
func (r *DemoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("demo_id = ?", id).Delete(&models.DemoStat{}).Error; err != nil {
			return err
		}
		return deleteByID[models.DemoInstance](tx, id)
	})
}

// StartSession records the beginning of a visitor session on a demo.
func (r *DemoRepo) StartSession(ctx context.Context, stat *models.DemoStat) error {
	return r.db.WithContext(ctx).Create(stat).Error
}

// EndSession closes the open session sessionID on demoID and stores its duration.
func (r *DemoRepo) EndSession(ctx context.Context, demoID uuid.UUID, sessionID string, endedAt time.Time, actions int) (*models.DemoStat, error) {
	var stat models.DemoStat
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("demo_id = ? AND session_id = ? AND end_time IS NULL", demoID, sessionID).
			Order("start_time DESC").
			First(&stat).Error
		if err != nil {
			return err
		}
		stat.EndTime = &endedAt
		if actions > stat.ActionsCount {
			stat.ActionsCount = actions
		}
		return tx.Save(&stat).Error
	})
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (r *DemoRepo) FindStatsPage(ctx context.Context, demoID uuid.UUID, req PageRequest) (Page[models.DemoStat], error) {
	query := r.db.WithContext(ctx).Model(&models.DemoStat{}).Where("demo_id = ?", demoID)
	return paginate[models.DemoStat](ctx, query, req, DefaultPageSize, "created_at DESC")
}
