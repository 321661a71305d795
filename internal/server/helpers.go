package server

import (
	"errors"
	"strconv"
	"strings"

	"pixelgram/internal/middleware"
	"pixelgram/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// pageArgs holds parsed page/pageSize query parameters.
type pageArgs struct {
	Page     int
	PageSize int
}

// queryInt parses an integer query parameter, returning def when absent.
// Unlike fiber's QueryInt it rejects non-numeric input instead of silently
// falling back to the default.
func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// parsePageArgs extracts page and pageSize query parameters. Non-numeric or
// out-of-range values get a 400 JSON response and errResponseWritten.
func (s *Server) parsePageArgs(c *fiber.Ctx) (pageArgs, error) {
	page, err := queryInt(c, "page", 1)
	if err != nil || page < 1 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid page parameter"))
		return pageArgs{}, errResponseWritten
	}

	pageSize, err := queryInt(c, "pageSize", defaultPageSize)
	if err != nil || pageSize < 1 || pageSize > maxPageSize {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid pageSize parameter"))
		return pageArgs{}, errResponseWritten
	}

	return pageArgs{Page: page, PageSize: pageSize}, nil
}

// parseUUID extracts a route parameter by name as a UUID. On failure it
// writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return uuid.Nil, errResponseWritten
	}
	return id, nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "commentId" -> "comment ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		return strings.ToLower(param[:len(param)-2]) + " ID"
	}
	return param
}

// currentUserID returns the authenticated user's id placed by the auth
// middleware.
func currentUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := middleware.UserID(c)
	return id
}
