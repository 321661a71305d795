package server

import (
	"pixelgram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUserInfo returns the public profile of a user.
func (s *Server) GetUserInfo(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	info, err := s.userService.GetUserInfo(ctx, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(info)
}

// DeleteMe removes the requester's account, their posts and stored images
// included.
func (s *Server) DeleteMe(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	if err := s.userService.DeleteAccount(ctx, userID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
