package adminValidator

import (
	"coursehub/middleware"
	"coursehub/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UserList validates the optional pagination query parameters
func UserList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `query:"page"`
			Limit *int `query:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		if reqData.Page != nil || reqData.Limit != nil {
			c.Locals("validatedUserList", &struct {
				Page  *int
				Limit *int
			}{Page: reqData.Page, Limit: reqData.Limit})
		}
		return c.Next()
	}
}

// UserID validates the :id route parameter
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		targetID, ok := parseUserID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		c.Locals("targetUserID", targetID)
		return c.Next()
	}
}

// UpdateUserRole validates the role change payload
func UpdateUserRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		targetID, ok := parseUserID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		body := new(struct {
			Role string `json:"role"`
		})
		if err := c.BodyParser(body); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if !models.ValidRole(body.Role) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"role": "Role must be either user or admin!",
			})
		}

		c.Locals("targetUserID", targetID)
		c.Locals("targetRole", body.Role)
		return c.Next()
	}
}

func parseUserID(c *fiber.Ctx) (int, bool) {
	userIDStr := strings.TrimSpace(c.Params("id"))
	if userIDStr == "" {
		return 0, false
	}

	userID, err := strconv.Atoi(userIDStr)
	if err != nil || userID <= 0 {
		return 0, false
	}

	return userID, true
}
