package service

import (
	"context"
	"strings"

	"typehero/internal/cache"
	"typehero/internal/middleware"
	"typehero/internal/models"
	"typehero/internal/pagination"
	"typehero/internal/repository"
)

// PerPage is the fixed page size for comment and reply lists.
const PerPage = 10

const maxCommentLen = 10000

type CommentService struct {
	commentRepo   repository.CommentRepository
	challengeRepo repository.ChallengeRepository
	isAdmin       func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommentInput struct {
	UserID   uint
	RootType string
	RootID   uint
	Text     string
}

type ReplyCommentInput struct {
	UserID   uint
	ParentID uint
	Text     string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Text      string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

type GetPageInput struct {
	RootType string
	RootID   uint
	// ParentID selects a reply list instead of the root's top-level list.
	ParentID *uint
	Page     int
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	challengeRepo repository.ChallengeRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo:   commentRepo,
		challengeRepo: challengeRepo,
		isAdmin:       isAdmin,
	}
}

// validateText normalizes and checks comment text. Whitespace-only text is
// rejected the same way as empty text.
func validateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", models.NewEmptyTextError()
	}
	if len(trimmed) > maxCommentLen {
		return "", models.NewValidationError("Comment too long (max 10000 characters)")
	}
	return trimmed, nil
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if !models.ValidRootType(in.RootType) {
		return nil, models.NewValidationError("Unknown root type: " + in.RootType)
	}

	text, err := validateText(in.Text)
	if err != nil {
		return nil, err
	}

	exists, err := s.challengeRepo.RootExists(ctx, in.RootType, in.RootID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError(in.RootType, in.RootID)
	}

	comment := &models.Comment{
		Text:     text,
		RootType: in.RootType,
		RootID:   in.RootID,
		UserID:   in.UserID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	cache.InvalidateCommentPages(ctx, in.RootType, in.RootID)
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ReplyComment creates a reply under an existing top-level comment. The reply
// inherits the parent's root; replying to a reply is rejected so threads stay
// one level deep.
func (s *CommentService) ReplyComment(ctx context.Context, in ReplyCommentInput) (*models.Comment, error) {
	parent, err := s.commentRepo.GetByID(ctx, in.ParentID)
	if err != nil {
		return nil, err
	}
	if parent.IsReply() {
		return nil, models.NewValidationError("Cannot reply to a reply")
	}

	text, err := validateText(in.Text)
	if err != nil {
		return nil, err
	}

	reply := &models.Comment{
		Text:     text,
		RootType: parent.RootType,
		RootID:   parent.RootID,
		ParentID: &parent.ID,
		UserID:   in.UserID,
	}
	if err := s.commentRepo.Create(ctx, reply); err != nil {
		return nil, err
	}

	// The parent's reply_count is rendered on top-level pages, so both lists
	// go stale.
	cache.InvalidateReplyPages(ctx, parent.ID)
	cache.InvalidateCommentPages(ctx, parent.RootType, parent.RootID)
	return s.commentRepo.GetByID(ctx, reply.ID)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own comments")
	}

	text, err := validateText(in.Text)
	if err != nil {
		return nil, err
	}

	comment.Text = text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.invalidateListsFor(ctx, comment)
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// DeleteComment soft-deletes a comment. Owners may delete their own comments;
// admins may delete anyone's.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != in.UserID {
		if s.isAdmin == nil {
			return nil, models.NewUnauthorizedError("You can only delete your own comments")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, models.NewUnauthorizedError("You can only delete your own comments")
		}
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return nil, err
	}

	s.invalidateListsFor(ctx, comment)
	return comment, nil
}

func (s *CommentService) invalidateListsFor(ctx context.Context, comment *models.Comment) {
	if comment.ParentID != nil {
		cache.InvalidateReplyPages(ctx, *comment.ParentID)
	}
	// Top-level pages always go: either the comment lives there, or its
	// parent's reply_count changed.
	cache.InvalidateCommentPages(ctx, comment.RootType, comment.RootID)
}

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// GetPage returns one page of a comment or reply list, cache-aside. A page
// past the end returns an empty list with the real totals so clients can
// recover after deletions shrink the list.
func (s *CommentService) GetPage(ctx context.Context, in GetPageInput) (*models.PaginatedComments, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}

	var key string
	if in.ParentID != nil {
		key = cache.ReplyPageKey(*in.ParentID, page)
	} else {
		if !models.ValidRootType(in.RootType) {
			return nil, models.NewValidationError("Unknown root type: " + in.RootType)
		}
		key = cache.CommentPageKey(in.RootType, in.RootID, page)
	}

	var result models.PaginatedComments
	found, err := cache.GetJSON(ctx, key, &result)
	if err != nil {
		return nil, err
	}
	if found {
		middleware.CommentPageCacheHits.WithLabelValues("hit").Inc()
		return &result, nil
	}
	middleware.CommentPageCacheHits.WithLabelValues("miss").Inc()

	total, err := s.commentRepo.Count(ctx, in.RootType, in.RootID, in.ParentID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListPage(ctx, in.RootType, in.RootID, in.ParentID, PerPage, (page-1)*PerPage)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	result = models.PaginatedComments{
		Comments:   comments,
		Page:       page,
		TotalPages: int((total + PerPage - 1) / PerPage),
		TotalCount: total,
	}

	_ = cache.SetJSON(ctx, key, &result, cache.CommentPageTTL)
	return &result, nil
}

// PageWindow returns the run of page numbers a client should render for the
// given list position.
func (s *CommentService) PageWindow(currentPage, totalPages int) []int {
	return pagination.Window(currentPage, totalPages)
}
