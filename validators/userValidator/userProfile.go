package userValidator

import (
	"coursehub/middleware"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UpdateProfile validates the profile update payload
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := new(struct {
			FirstName       string `json:"first_name"`
			LastName        string `json:"last_name"`
			Email           string `json:"email"`
			CurrentPassword string `json:"current_password"`
			NewPassword     string `json:"new_password"`
		})
		if err := c.BodyParser(body); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if body.Email != "" && !emailRe.MatchString(body.Email) {
			errors["email"] = "Invalid email!"
		}

		// Password change needs both the current and the new password
		if body.NewPassword != "" && body.CurrentPassword == "" {
			errors["current_password"] = "Current password is required when updating password!"
		}
		if body.NewPassword != "" && len(body.NewPassword) < 6 {
			errors["new_password"] = "New password must be at least 6 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData := &struct {
			FirstName       string
			LastName        string
			Email           string
			CurrentPassword string
			NewPassword     string
		}{
			FirstName:       strings.TrimSpace(body.FirstName),
			LastName:        strings.TrimSpace(body.LastName),
			Email:           strings.ToLower(strings.TrimSpace(body.Email)),
			CurrentPassword: body.CurrentPassword,
			NewPassword:     body.NewPassword,
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}

// UserID validates the :id route parameter
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr := strings.TrimSpace(c.Params("id"))
		if userIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User ID is required!", nil)
		}

		userID, err := strconv.Atoi(userIDStr)
		if err != nil || userID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		c.Locals("targetUserID", userID)
		return c.Next()
	}
}
