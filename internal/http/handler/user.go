package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"userapi/internal/service"
)

// UserPrefix is where the user router is mounted on the parent app.
const UserPrefix = "/api/user"

// NewUserRouter builds the user router: a sub-application with a single route, GET /.
// It is meant to be attached with MountUserRouter and has no other behaviour.
func NewUserRouter(userSvc service.UserService) *fiber.App {
	router := fiber.New()
	router.Get("/", GetDetails(userSvc))
	return router
}

// MountUserRouter attaches router under UserPrefix, so its GET / is served as GET /api/user/.
func MountUserRouter(app *fiber.App, router *fiber.App) {
	app.Mount(UserPrefix, router)
}

// GetDetails returns a user's details.
//
// @Summary     Get user details
// @Description Returns the profile of the user identified by the id query parameter.
// @Tags        user
// @Produce     json
// @Param       id  query    string true "User ID (UUID)"
// @Success     200 {object} model.UserDetails
// @Failure     400 {object} errorPayload
// @Failure     404 {object} errorPayload
// @Failure     500 {object} errorPayload
// @Router      /api/user/ [get]
func GetDetails(userSvc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Query("id")
		if id == "" {
			return writeError(c, fiber.StatusBadRequest, "ID_REQUIRED", "id is required")
		}
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		details, err := userSvc.Details(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "user not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(details)
	}
}
