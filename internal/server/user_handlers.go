package server

import (
	"typehero/internal/cache"
	"typehero/internal/models"
	"typehero/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Username string `json:"username"`
		Bio      string `json:"bio"`
		Avatar   string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:   userID,
		Username: req.Username,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(user)
}

// GetMyFlags handles GET /api/users/me/flags. Returns the evaluated feature
// flag set for the current user so clients can gate rollout features.
func (s *Server) GetMyFlags(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	return c.JSON(fiber.Map{"flags": s.flags.Snapshot(userID)})
}

// GetUserCached handles GET /api/users/:id/cached. Public profiles are read
// through the cache-aside helper so repeated lookups skip the database.
func (s *Server) GetUserCached(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var user models.User
	cacheErr := cache.CacheAside(c.UserContext(), cache.UserKey(id), &user, cache.UserTTL, func() error {
		fetched, fetchErr := s.userService.GetUserByID(c.UserContext(), id)
		if fetchErr != nil {
			return fetchErr
		}
		user = *fetched
		return nil
	})
	if cacheErr != nil {
		return models.RespondWithError(c, statusForError(cacheErr), cacheErr)
	}

	return c.JSON(user)
}

// PromoteToAdmin handles POST /api/users/:id/promote-admin (admin only)
func (s *Server) PromoteToAdmin(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	user, svcErr := s.userService.SetAdmin(c.UserContext(), id, true)
	if svcErr != nil {
		return models.RespondWithError(c, statusForError(svcErr), svcErr)
	}

	return c.JSON(user)
}
