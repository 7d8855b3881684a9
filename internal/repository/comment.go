package repository

import (
	"context"

	"typehero/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListPage(ctx context.Context, rootType string, rootID uint, parentID *uint, limit, offset int) ([]*models.Comment, error)
	Count(ctx context.Context, rootType string, rootID uint, parentID *uint) (int64, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// replyCountSelect computes the number of live replies per comment.
const replyCountSelect = `comments.*, (SELECT COUNT(*) FROM comments replies ` +
	`WHERE replies.parent_id = comments.id AND replies.deleted_at IS NULL) AS reply_count`

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).
		Select(replyCountSelect).
		Preload("User").
		First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListPage returns one page of a comment list. A nil parentID selects the
// top-level comments for the root; otherwise the replies of that parent.
func (r *commentRepository) ListPage(
	ctx context.Context,
	rootType string,
	rootID uint,
	parentID *uint,
	limit, offset int,
) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.listScope(ctx, rootType, rootID, parentID).
		Select(replyCountSelect).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

// Count returns the total number of comments in a list, ignoring pagination.
func (r *commentRepository) Count(
	ctx context.Context,
	rootType string,
	rootID uint,
	parentID *uint,
) (int64, error) {
	var count int64
	err := r.listScope(ctx, rootType, rootID, parentID).Count(&count).Error
	return count, err
}

func (r *commentRepository) listScope(
	ctx context.Context,
	rootType string,
	rootID uint,
	parentID *uint,
) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Comment{})
	if parentID != nil {
		return query.Where("parent_id = ?", *parentID)
	}
	return query.Where("root_type = ? AND root_id = ? AND parent_id IS NULL", rootType, rootID)
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}
