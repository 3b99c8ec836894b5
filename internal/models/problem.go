package models

import "time"

type Problem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Difficulty  string    `json:"difficulty"`
	Category    string    `json:"category"`
	InitialCode string    `json:"initial_code"`
	Solution    string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// TestCase belongs to exactly one Problem. Hidden cases are for grading and
// must never appear on a non-privileged read path.
type TestCase struct {
	ID             int64  `json:"id"`
	ProblemID      int64  `json:"problem_id"`
	InputData      string `json:"input_data"`
	ExpectedOutput string `json:"expected_output"`
	IsHidden       bool   `json:"-"`
}
