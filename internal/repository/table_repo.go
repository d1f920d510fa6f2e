package repository

import (
	"context"
	"errors"

	"resto-erp-ws/internal/model"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict means the row exists but no longer matches the expected values.
	ErrConflict = errors.New("record changed concurrently")
)

// Patch is a typed partial update producing the column assignments to apply.
type Patch interface {
	Fields() map[string]interface{}
}

// TableRepository reads and writes one table. T is the row type and U the
// update shape accepted for it.
type TableRepository[T any, U Patch] interface {
	Table() model.Table
	List(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id uint) (*T, error)
	FindBy(ctx context.Context, column string, value interface{}) (*T, error)
	Create(ctx context.Context, row *T) error
	Update(ctx context.Context, id uint, patch U) (*T, error)
	UpdateWhere(ctx context.Context, id uint, expected map[string]interface{}, patch U) (*T, error)
	Delete(ctx context.Context, id uint) error
}

type tableRepo[T any, U Patch] struct {
	db    *gorm.DB
	table model.Table
}

func newTableRepo[T any, U Patch](db *gorm.DB, table model.Table) TableRepository[T, U] {
	return &tableRepo[T, U]{db: db, table: table}
}

func (r *tableRepo[T, U]) Table() model.Table {
	return r.table
}

func (r *tableRepo[T, U]) List(ctx context.Context) ([]T, error) {
	rows := []T{}
	if err := r.db.WithContext(ctx).Order(r.table.Order()).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *tableRepo[T, U]) FindByID(ctx context.Context, id uint) (*T, error) {
	var row T
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// FindBy returns the first row whose column equals value. column must be a
// trusted column name, never user input.
func (r *tableRepo[T, U]) FindBy(ctx context.Context, column string, value interface{}) (*T, error) {
	var row T
	if err := r.db.WithContext(ctx).Where(map[string]interface{}{column: value}).Order("id ASC").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *tableRepo[T, U]) Create(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// Update applies the patch and returns the row as stored afterwards.
func (r *tableRepo[T, U]) Update(ctx context.Context, id uint, patch U) (*T, error) {
	return r.UpdateWhere(ctx, id, nil, patch)
}

// UpdateWhere applies the patch only while the row still holds the expected
// column values, in a single statement. A nil value matches NULL.
func (r *tableRepo[T, U]) UpdateWhere(ctx context.Context, id uint, expected map[string]interface{}, patch U) (*T, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	q := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id)
	if len(expected) > 0 {
		q = q.Where(expected)
	}
	res := q.Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if len(expected) == 0 {
			return nil, ErrNotFound
		}
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrConflict
	}
	return r.FindByID(ctx, id)
}

func (r *tableRepo[T, U]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
