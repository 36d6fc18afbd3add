package authValidator

import (
	"coursehub/middleware"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Helper to validate email format
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// Signup validator middleware
func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := new(struct {
			Email     string `json:"email"`
			Password  string `json:"password"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		})
		if err := c.BodyParser(body); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Email
		if body.Email == "" || !isValidEmail(body.Email) {
			errors["email"] = "Invalid email!"
		}

		// Validate Password
		if len(strings.TrimSpace(body.Password)) < 6 {
			errors["password"] = "Password must be at least 6 characters long!"
		}

		// Validate Names
		if strings.TrimSpace(body.FirstName) == "" {
			errors["first_name"] = "First name is required!"
		}
		if strings.TrimSpace(body.LastName) == "" {
			errors["last_name"] = "Last name is required!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData := &struct {
			Email     string
			Password  string
			FirstName string
			LastName  string
		}{
			Email:     strings.ToLower(strings.TrimSpace(body.Email)),
			Password:  body.Password,
			FirstName: strings.TrimSpace(body.FirstName),
			LastName:  strings.TrimSpace(body.LastName),
		}

		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := new(struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		})
		if err := c.BodyParser(body); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if body.Email == "" || !isValidEmail(body.Email) {
			errors["email"] = "Invalid email!"
		}
		if body.Password == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData := &struct {
			Email    string
			Password string
		}{
			Email:    strings.ToLower(strings.TrimSpace(body.Email)),
			Password: body.Password,
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
