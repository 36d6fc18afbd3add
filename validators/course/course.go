package courseValidator

import (
	"coursehub/middleware"
	"coursehub/models"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

var (
	timeOfDayRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
	youtubeRe   = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/watch\?v=|youtu\.be/)[\w-]{11}$`)
)

// parseDate accepts RFC3339 timestamps or plain dates
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

type courseBody struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	Category        string   `json:"category"`
	Location        string   `json:"location"`
	MaxParticipants int      `json:"max_participants"`
	Status          string   `json:"status"`
	Topics          []string `json:"topics"`
	YoutubeURL      string   `json:"youtube_url"`
	ThumbnailURL    string   `json:"thumbnail_url"`
}

// CreateCourse validates the admin course creation payload
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := new(courseBody)
		if err := c.BodyParser(body); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(body.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if strings.TrimSpace(body.Description) == "" {
			errors["description"] = "Description is required!"
		}

		var startDate, endDate time.Time
		var err error
		if body.StartDate == "" {
			errors["start_date"] = "Start date is required!"
		} else if startDate, err = parseDate(body.StartDate); err != nil {
			errors["start_date"] = "Start date must be an ISO-8601 date!"
		}

		// End date falls back to the start date when omitted
		if body.EndDate == "" {
			endDate = startDate
		} else if endDate, err = parseDate(body.EndDate); err != nil {
			errors["end_date"] = "End date must be an ISO-8601 date!"
		}

		if body.StartTime != "" && !timeOfDayRe.MatchString(body.StartTime) {
			errors["start_time"] = "Start time must be in HH:mm format!"
		}
		if body.EndTime != "" && !timeOfDayRe.MatchString(body.EndTime) {
			errors["end_time"] = "End time must be in HH:mm format!"
		}

		if !models.ValidCategory(body.Category) {
			errors["category"] = "Category must be one of online-course, online-live or classroom!"
		}
		if body.Category == models.CategoryClassroom && strings.TrimSpace(body.Location) == "" {
			errors["location"] = "Location is required for classroom courses!"
		}

		if body.MaxParticipants < 1 {
			errors["max_participants"] = "Maximum participants must be at least 1!"
		}

		if body.Status != "" && !models.ValidStatus(body.Status) {
			errors["status"] = "Invalid course status!"
		}

		if body.YoutubeURL != "" && !youtubeRe.MatchString(body.YoutubeURL) {
			errors["youtube_url"] = "Invalid YouTube URL format!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData := &struct {
			Title           string
			Description     string
			StartDate       time.Time
			EndDate         time.Time
			StartTime       string
			EndTime         string
			Category        string
			Location        string
			MaxParticipants int
			Status          string
			Topics          []string
			YoutubeURL      string
			ThumbnailURL    string
		}{
			Title:           strings.TrimSpace(body.Title),
			Description:     body.Description,
			StartDate:       startDate,
			EndDate:         endDate,
			StartTime:       body.StartTime,
			EndTime:         body.EndTime,
			Category:        body.Category,
			Location:        strings.TrimSpace(body.Location),
			MaxParticipants: body.MaxParticipants,
			Status:          body.Status,
			Topics:          body.Topics,
			YoutubeURL:      body.YoutubeURL,
			ThumbnailURL:    body.ThumbnailURL,
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates the partial course update payload
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		c.Locals("courseID", courseID)

		body := new(struct {
			Title           *string   `json:"title"`
			Description     *string   `json:"description"`
			StartDate       *string   `json:"start_date"`
			EndDate         *string   `json:"end_date"`
			StartTime       *string   `json:"start_time"`
			EndTime         *string   `json:"end_time"`
			Category        *string   `json:"category"`
			Location        *string   `json:"location"`
			MaxParticipants *int      `json:"max_participants"`
			Status          *string   `json:"status"`
			Topics          *[]string `json:"topics"`
			YoutubeURL      *string   `json:"youtube_url"`
			ThumbnailURL    *string   `json:"thumbnail_url"`
		})
		if err := c.BodyParser(body); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if body.Title != nil && strings.TrimSpace(*body.Title) == "" {
			errors["title"] = "Title must not be empty!"
		}
		if body.Description != nil && strings.TrimSpace(*body.Description) == "" {
			errors["description"] = "Description must not be empty!"
		}

		var startDate, endDate *time.Time
		if body.StartDate != nil {
			if t, err := parseDate(*body.StartDate); err != nil {
				errors["start_date"] = "Start date must be an ISO-8601 date!"
			} else {
				startDate = &t
			}
		}
		if body.EndDate != nil {
			if t, err := parseDate(*body.EndDate); err != nil {
				errors["end_date"] = "End date must be an ISO-8601 date!"
			} else {
				endDate = &t
			}
		}

		if body.StartTime != nil && *body.StartTime != "" && !timeOfDayRe.MatchString(*body.StartTime) {
			errors["start_time"] = "Start time must be in HH:mm format!"
		}
		if body.EndTime != nil && *body.EndTime != "" && !timeOfDayRe.MatchString(*body.EndTime) {
			errors["end_time"] = "End time must be in HH:mm format!"
		}

		if body.Category != nil && !models.ValidCategory(*body.Category) {
			errors["category"] = "Category must be one of online-course, online-live or classroom!"
		}

		if body.MaxParticipants != nil && *body.MaxParticipants < 1 {
			errors["max_participants"] = "Maximum participants must be at least 1!"
		}

		if body.Status != nil && !models.ValidStatus(*body.Status) {
			errors["status"] = "Invalid course status!"
		}

		if body.YoutubeURL != nil && *body.YoutubeURL != "" && !youtubeRe.MatchString(*body.YoutubeURL) {
			errors["youtube_url"] = "Invalid YouTube URL format!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData := &struct {
			Title           *string
			Description     *string
			StartDate       *time.Time
			EndDate         *time.Time
			StartTime       *string
			EndTime         *string
			Category        *string
			Location        *string
			MaxParticipants *int
			Status          *string
			Topics          *[]string
			YoutubeURL      *string
			ThumbnailURL    *string
		}{
			Title:           body.Title,
			Description:     body.Description,
			StartDate:       startDate,
			EndDate:         endDate,
			StartTime:       body.StartTime,
			EndTime:         body.EndTime,
			Category:        body.Category,
			Location:        body.Location,
			MaxParticipants: body.MaxParticipants,
			Status:          body.Status,
			Topics:          body.Topics,
			YoutubeURL:      body.YoutubeURL,
			ThumbnailURL:    body.ThumbnailURL,
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// UpdateYoutubeInfo validates the YouTube info patch payload
func UpdateYoutubeInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		c.Locals("courseID", courseID)

		body := new(struct {
			YoutubeURL string `json:"youtube_url"`
		})
		if err := c.BodyParser(body); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if body.YoutubeURL == "" {
			errors["youtube_url"] = "YouTube URL is required!"
		} else if !youtubeRe.MatchString(body.YoutubeURL) {
			errors["youtube_url"] = "Invalid YouTube URL format!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("youtubeURL", body.YoutubeURL)
		return c.Next()
	}
}

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// parseCourseID reads the :id route parameter as a positive integer
func parseCourseID(c *fiber.Ctx) (int, bool) {
	courseIDStr := strings.TrimSpace(c.Params("id"))
	if courseIDStr == "" {
		return 0, false
	}

	courseID, err := strconv.Atoi(courseIDStr)
	if err != nil || courseID <= 0 {
		return 0, false
	}

	return courseID, true
}

// CourseList validates the optional pagination query parameters
func CourseList() fiber.Handler {
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

		// Pagination is optional; handlers fall back to returning everything
		if reqData.Page != nil || reqData.Limit != nil {
			c.Locals("validatedList", &struct {
				Page  *int
				Limit *int
			}{Page: reqData.Page, Limit: reqData.Limit})
		}
		return c.Next()
	}
}
