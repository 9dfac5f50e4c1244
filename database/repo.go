package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// repo holds the lookups every table shares.
type repo[T any] struct {
	db *gorm.DB
}

// FindByID returns the row with id, or gorm.ErrRecordNotFound.
func (r repo[T]) FindByID(ctx context.Context, id uuid.UUID, preloads ...string) (*T, error) {
	var entity T
	query := r.db.WithContext(ctx)
	for _, p := range preloads {
		query = query.Preload(p)
	}
	if err := query.Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// Add inserts entity without touching its associations.
func (r repo[T]) Add(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error
}

// Update writes every column of entity. Associations are replaced separately.
func (r repo[T]) Update(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(entity).Error
}

// Delete removes the row with id and reports gorm.ErrRecordNotFound when nothing matched.
func (r repo[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[T](r.db.WithContext(ctx), id)
}

func (r repo[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Count(&count).Error
	return count, err
}

func deleteByID[T any](tx *gorm.DB, id uuid.UUID) error {
	result := tx.Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// saveWithAssociations creates or updates entity and replaces the named many-to-many links in one
// transaction. A nil value leaves that association untouched.
func saveWithAssociations[T any](ctx context.Context, db *gorm.DB, entity *T, isNew bool, associations map[string]any) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if isNew {
			err = tx.Omit(clause.Associations).Create(entity).Error
		} else {
			err = tx.Omit(clause.Associations).Save(entity).Error
		}
		if err != nil {
			return err
		}
		return replaceAssociations(tx, entity, associations)
	})
}

func replaceAssociations[T any](tx *gorm.DB, entity *T, associations map[string]any) error {
	for name, values := range associations {
		if values == nil {
			continue
		}
		// Omit name.* so only link rows are written, never the linked records themselves.
		if err := tx.Model(entity).Omit(name + ".*").Association(name).Replace(values); err != nil {
			return err
		}
	}
	return nil
}

// clearJoinRows removes link rows that point at id from each join table.
func clearJoinRows(tx *gorm.DB, column string, id uuid.UUID, tables ...string) error {
	for _, table := range tables {
		if err := tx.Exec("DELETE FROM "+table+" WHERE "+column+" = ?", id).Error; err != nil {
			return err
		}
	}
	return nil
}

// findByIDs loads every row in ids and fails with gorm.ErrRecordNotFound when one is missing.
func findByIDs[T any](ctx context.Context, db *gorm.DB, ids []uuid.UUID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	var rows []T
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) != len(uniqueIDs(ids)) {
		return nil, fmt.Errorf("%d of %d ids: %w", len(rows), len(ids), gorm.ErrRecordNotFound)
	}
	return rows, nil
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// getOrCreate loads the row matching query into entity, or inserts entity when there is none.
func getOrCreate[T any](ctx context.Context, db *gorm.DB, entity *T, query string, args ...any) (bool, error) {
	var existing T
	err := db.WithContext(ctx).Where(query, args...).First(&existing).Error
	if err == nil {
		*entity = existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return false, err
	}
	return true, nil
}
