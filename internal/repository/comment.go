package repository

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/query"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	List(ctx context.Context, plan *query.Plan) ([]*models.Comment, int64, error)
	UpdateContent(ctx context.Context, id uint, content string) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return translate(r.db.WithContext(ctx).Omit("Owner").Create(comment).Error, "Comment", nil)
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Owner").First(&comment, id).Error; err != nil {
		return nil, translate(err, "Comment", id)
	}
	return &comment, nil
}

func (r *commentRepository) List(ctx context.Context, plan *query.Plan) ([]*models.Comment, int64, error) {
	return list[models.Comment](ctx, r.db, plan)
}

func (r *commentRepository) UpdateContent(ctx context.Context, id uint, content string) error {
	res := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("content", content)
	return affected(res, "Comment", id)
}

// Delete removes the comment and its likes.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return translate(err, "Like", id)
		}
		return affected(tx.Delete(&models.Comment{}, id), "Comment", id)
	})
}
