package server

import (
	"errors"
	"strconv"
	"time"

	"typehero/internal/middleware"
	"typehero/internal/models"
	"typehero/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/:rootType/:id/comments. Optional query params:
// ?page=N selects the page (1-based), ?parentId=M fetches a reply page for
// comment M instead of the root's top-level page.
func (s *Server) GetComments(c *fiber.Ctx) error {
	rootType := c.Params("rootType")
	if !models.ValidRootType(rootType) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown root type: "+rootType))
	}

	rootID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))

	in := service.GetPageInput{
		RootType: rootType,
		RootID:   rootID,
		Page:     page,
	}
	if raw := c.Query("parentId"); raw != "" {
		parentID, parseErr := strconv.ParseUint(raw, 10, 32)
		if parseErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid parentId"))
		}
		pid := uint(parentID)
		in.ParentID = &pid
	}

	result, svcErr := s.commentService.GetPage(c.UserContext(), in)
	if svcErr != nil {
		return models.RespondWithError(c, statusForError(svcErr), svcErr)
	}

	return c.JSON(fiber.Map{
		"comments":    result.Comments,
		"page":        result.Page,
		"total_pages": result.TotalPages,
		"total_count": result.TotalCount,
		"window":      s.commentService.PageWindow(result.Page, result.TotalPages),
	})
}

// CreateComment handles POST /api/:rootType/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	rootType := c.Params("rootType")
	rootID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, svcErr := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID:   userID,
		RootType: rootType,
		RootID:   rootID,
		Text:     req.Text,
	})
	if svcErr != nil {
		middleware.CommentMutations.WithLabelValues("create", mutationResult(svcErr)).Inc()
		return models.RespondWithError(c, statusForError(svcErr), svcErr)
	}
	middleware.CommentMutations.WithLabelValues("create", "ok").Inc()

	s.publishBroadcastEvent(c.UserContext(), EventCommentCreated, fiber.Map{
		"root_type":  comment.RootType,
		"root_id":    comment.RootID,
		"comment":    comment,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// ReplyComment handles POST /api/comments/:commentId/replies
func (s *Server) ReplyComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	parentID, err := parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	parent, parentErr := s.commentService.GetComment(c.UserContext(), parentID)
	if parentErr != nil {
		return models.RespondWithError(c, statusForError(parentErr), parentErr)
	}

	reply, svcErr := s.commentService.ReplyComment(c.UserContext(), service.ReplyCommentInput{
		UserID:   userID,
		ParentID: parentID,
		Text:     req.Text,
	})
	if svcErr != nil {
		middleware.CommentMutations.WithLabelValues("reply", mutationResult(svcErr)).Inc()
		return models.RespondWithError(c, statusForError(svcErr), svcErr)
	}
	middleware.CommentMutations.WithLabelValues("reply", "ok").Inc()

	s.publishBroadcastEvent(c.UserContext(), EventCommentCreated, fiber.Map{
		"root_type":  reply.RootType,
		"root_id":    reply.RootID,
		"comment":    reply,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	// Notify the parent comment's author unless they replied to themselves.
	if parent.UserID != userID {
		s.publishUserEvent(c.UserContext(), parent.UserID, EventReplyCreated, fiber.Map{
			"parent_id": parentID,
			"comment":   reply,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(reply)
}

// UpdateComment handles PUT /api/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	commentID, err := parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, svcErr := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		UserID:    userID,
		CommentID: commentID,
		Text:      req.Text,
	})
	if svcErr != nil {
		middleware.CommentMutations.WithLabelValues("update", mutationResult(svcErr)).Inc()
		return models.RespondWithError(c, statusForError(svcErr), svcErr)
	}
	middleware.CommentMutations.WithLabelValues("update", "ok").Inc()

	s.publishBroadcastEvent(c.UserContext(), EventCommentUpdated, fiber.Map{
		"root_type": comment.RootType,
		"root_id":   comment.RootID,
		"comment":   comment,
	})

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:commentId. The client must pass
// ?confirm=true; without it the request is rejected so a stray DELETE can't
// destroy a comment.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	commentID, err := parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if c.Query("confirm") != "true" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Deletion requires confirm=true"))
	}

	comment, svcErr := s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		UserID:    userID,
		CommentID: commentID,
	})
	if svcErr != nil {
		middleware.CommentMutations.WithLabelValues("delete", mutationResult(svcErr)).Inc()
		return models.RespondWithError(c, statusForError(svcErr), svcErr)
	}
	middleware.CommentMutations.WithLabelValues("delete", "ok").Inc()

	s.publishBroadcastEvent(c.UserContext(), EventCommentDeleted, fiber.Map{
		"root_type":  comment.RootType,
		"root_id":    comment.RootID,
		"comment_id": commentID,
	})

	return c.JSON(fiber.Map{"deleted": true, "id": commentID})
}

// CommentPermalink handles GET /api/comments/:commentId/permalink
func (s *Server) CommentPermalink(c *fiber.Ctx) error {
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return nil
	}

	comment, svcErr := s.commentService.GetComment(c.UserContext(), commentID)
	if svcErr != nil {
		return models.RespondWithError(c, statusForError(svcErr), svcErr)
	}

	base := s.config.BaseURL
	if base == "" {
		base = c.BaseURL()
	}

	return c.JSON(fiber.Map{
		"id":  comment.ID,
		"url": base + "/comment/" + strconv.FormatUint(uint64(comment.ID), 10),
	})
}

// mutationResult maps a mutation error to a metric label.
func mutationResult(err error) string {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return models.CodeInternal
}
