package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gopherblog/internal/model"
)

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Create(ctx context.Context, blog *model.Blog) error {
	if err := r.db.WithContext(ctx).Omit("Author").Create(blog).Error; err != nil {
		return fmt.Errorf("create blog failed: %w", err)
	}
	return nil
}

// GetByID loads the blog together with its author. Missing rows yield nil, nil.
func (r *BlogRepository) GetByID(ctx context.Context, id uint) (*model.Blog, error) {
	var blog model.Blog
	if err := r.db.WithContext(ctx).Preload("Author").First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query blog by id failed: %w", err)
	}
	return &blog, nil
}

func (r *BlogRepository) ListPublished(ctx context.Context, offset, limit int) ([]model.Blog, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Blog{}).Where("status = ?", model.StatusPublished)
	return r.page(query, offset, limit, "published blogs")
}

func (r *BlogRepository) ListByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]model.Blog, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Blog{}).Where("created_by = ?", ownerID)
	return r.page(query, offset, limit, "owner blogs")
}

func (r *BlogRepository) UpdateContent(ctx context.Context, id uint, title, body string, status model.BlogStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Blog{}).Where("id = ?", id).Updates(map[string]any{
		"title":  title,
		"body":   body,
		"status": status,
	})
	if result.Error != nil {
		return fmt.Errorf("update blog failed: %w", result.Error)
	}
	return nil
}

func (r *BlogRepository) UpdateStatus(ctx context.Context, id uint, status model.BlogStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Blog{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("update blog status failed: %w", result.Error)
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Blog{}, id).Error; err != nil {
		return fmt.Errorf("delete blog failed: %w", err)
	}
	return nil
}

func (r *BlogRepository) page(query *gorm.DB, offset, limit int, what string) ([]model.Blog, int64, error) {
	// Session makes the scoped query safe to reuse for both count and find.
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count %s failed: %w", what, err)
	}

	blogs := make([]model.Blog, 0, limit)
	if total == 0 || int64(offset) >= total {
		return blogs, total, nil
	}

	err := query.
		Preload("Author").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		Offset(offset).
		Limit(limit).
		Find(&blogs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list %s failed: %w", what, err)
	}
	return blogs, total, nil
}
