package problem

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"lessonhub/internal/models"
	"lessonhub/internal/utils"
)

type ListHandler struct {
	DB *sql.DB
}

type problemSummary struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
	Category   string `json:"category"`
}

// ServeHTTP handles GET /api/problems
func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rows, err := h.DB.Query("SELECT id, title, difficulty, category FROM problems ORDER BY id")
	if err != nil {
		logrus.WithError(err).Error("problems: list query failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	defer rows.Close()

	problems := []problemSummary{}
	for rows.Next() {
		var p problemSummary
		if err := rows.Scan(&p.ID, &p.Title, &p.Difficulty, &p.Category); err != nil {
			continue
		}
		problems = append(problems, p)
	}
	utils.Raw(w, http.StatusOK, problems)
}

type GetHandler struct {
	DB *sql.DB
}

type problemDetail struct {
	models.Problem
	TestCases []models.TestCase `json:"test_cases"`
}

// ServeHTTP handles GET /api/problems/{id}. Hidden test cases are for
// grading and are excluded here unconditionally.
func (h *GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "invalid problem id"})
		return
	}

	var detail problemDetail
	err = h.DB.QueryRow(
		"SELECT id, title, description, difficulty, category, initial_code FROM problems WHERE id=?",
		id,
	).Scan(&detail.ID, &detail.Title, &detail.Description, &detail.Difficulty, &detail.Category, &detail.InitialCode)
	if err == sql.ErrNoRows {
		utils.JSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Problem not found"})
		return
	} else if err != nil {
		logrus.WithError(err).Error("problems: get query failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	rows, err := h.DB.Query(
		"SELECT id, problem_id, input_data, expected_output FROM test_cases WHERE problem_id=? AND is_hidden=FALSE ORDER BY id",
		id,
	)
	if err != nil {
		logrus.WithError(err).Error("problems: test case query failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	defer rows.Close()

	detail.TestCases = []models.TestCase{}
	for rows.Next() {
		var tc models.TestCase
		if err := rows.Scan(&tc.ID, &tc.ProblemID, &tc.InputData, &tc.ExpectedOutput); err != nil {
			continue
		}
		detail.TestCases = append(detail.TestCases, tc)
	}

	utils.Raw(w, http.StatusOK, detail)
}
