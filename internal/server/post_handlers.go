package server

import (
	"io"

	"pixelgram/internal/models"
	"pixelgram/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreatePost accepts a multipart upload (file + description) and creates a
// pixel-art post.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid or corrupted image file."))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid or corrupted image file."))
	}

	created, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:      userID,
		Description: c.FormValue("description"),
		Image: service.ImageUpload{
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        data,
		},
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetPosts returns the paginated feed, optionally filtered to one author
// via the userId query parameter.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	viewerID := currentUserID(c)

	args, err := s.parsePageArgs(c)
	if err != nil {
		return nil
	}

	var authorID *uuid.UUID
	if raw := c.Query("userId"); raw != "" {
		parsed, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid userId parameter"))
		}
		authorID = &parsed
	}

	page, err := s.postService.ListPosts(ctx, service.ListPostsInput{
		ViewerID: viewerID,
		Page:     args.Page,
		PageSize: args.PageSize,
		AuthorID: authorID,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(page)
}

// GetSavedPosts returns the viewer's saved posts, paginated.
func (s *Server) GetSavedPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	viewerID := currentUserID(c)

	args, err := s.parsePageArgs(c)
	if err != nil {
		return nil
	}

	page, err := s.savedService.ListSaved(ctx, service.ListSavedInput{
		ViewerID: viewerID,
		Page:     args.Page,
		PageSize: args.PageSize,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(page)
}

// DeletePost removes a post the requester owns, blob included.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	postID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(ctx, service.DeletePostInput{
		UserID: userID,
		PostID: postID,
	}); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// LikePost records a like on a post.
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	postID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.likeService.Like(ctx, userID, postID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnlikePost removes the requester's like from a post.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	postID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.likeService.Unlike(ctx, userID, postID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SavePost bookmarks a post for the requester.
func (s *Server) SavePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	postID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.savedService.Save(ctx, userID, postID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnsavePost removes the requester's bookmark from a post.
func (s *Server) UnsavePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	postID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.savedService.Unsave(ctx, userID, postID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
