package server

import (
	"pixelgram/internal/models"
	"pixelgram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments returns one page of a post's comments, newest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	viewerID := currentUserID(c)

	postID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}
	args, err := s.parsePageArgs(c)
	if err != nil {
		return nil
	}

	page, err := s.commentService.ListComments(ctx, service.ListCommentsInput{
		ViewerID: viewerID,
		PostID:   postID,
		Page:     args.Page,
		PageSize: args.PageSize,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(page)
}

// CreateComment adds a comment to a post.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	postID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	created, err := s.commentService.AddComment(ctx, service.AddCommentInput{
		UserID:  userID,
		PostID:  postID,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// DeleteComment removes a comment the requester authored.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	postID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseUUID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(ctx, service.DeleteCommentInput{
		UserID:    userID,
		PostID:    postID,
		CommentID: commentID,
	}); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
