package lesson

import (
	"net/http"

	"lessonhub/internal/models"
	"lessonhub/internal/utils"
)

type ListHandler struct{}

// lessons content is still hard-coded, matching the frontend.
var lessons = []models.Lesson{
	{
		ID:          1,
		Title:       "Introduction to Python",
		Description: "Learn the basics of Python programming",
		Difficulty:  "Beginner",
	},
	{
		ID:          2,
		Title:       "Web Development Fundamentals",
		Description: "HTML, CSS, and JavaScript basics",
		Difficulty:  "Beginner",
	},
}

// ServeHTTP handles GET /api/lessons
func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	utils.Raw(w, http.StatusOK, lessons)
}
