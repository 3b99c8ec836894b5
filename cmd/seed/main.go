package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"lessonhub/internal/database"
	"lessonhub/internal/models"
)

type seedProblem struct {
	problem   models.Problem
	testCases []models.TestCase
}

var seedProblems = []seedProblem{
	{
		problem: models.Problem{
			Title: "Two Sum",
			Description: `Given an array of integers nums and an integer target, return indices of the two numbers in nums such that they add up to target.
You may assume that each input would have exactly one solution, and you may not use the same element twice.
You can return the answer in any order.`,
			Difficulty: "Easy",
			Category:   "Arrays & Hashing",
			InitialCode: `def two_sum(nums, target):
    # Write your code here
    pass`,
			Solution: `def two_sum(nums, target):
    seen = {}
    for i, num in enumerate(nums):
        complement = target - num
        if complement in seen:
            return [seen[complement], i]
        seen[num] = i
    return []`,
		},
		testCases: []models.TestCase{
			{InputData: "[2,7,11,15], 9", ExpectedOutput: "[0,1]"},
			{InputData: "[3,2,4], 6", ExpectedOutput: "[1,2]"},
			{InputData: "[3,3], 6", ExpectedOutput: "[0,1]", IsHidden: true},
		},
	},
	{
		problem: models.Problem{
			Title: "Valid Parentheses",
			Description: `Given a string s containing just the characters '(', ')', '{', '}', '[' and ']', determine if the input string is valid.
An input string is valid if:
1. Open brackets must be closed by the same type of brackets.
2. Open brackets must be closed in the correct order.
3. Every close bracket has a corresponding open bracket of the same type.`,
			Difficulty: "Easy",
			Category:   "Stack",
			InitialCode: `def is_valid(s):
    # Write your code here
    pass`,
			Solution: `def is_valid(s):
    stack = []
    brackets = {')': '(', '}': '{', ']': '['}
    for char in s:
        if char in brackets.values():
            stack.append(char)
        elif char in brackets:
            if not stack or stack.pop() != brackets[char]:
                return False
    return len(stack) == 0`,
		},
		testCases: []models.TestCase{
			{InputData: "()", ExpectedOutput: "True"},
			{InputData: "()[]{}", ExpectedOutput: "True"},
			{InputData: "(]", ExpectedOutput: "False"},
			{InputData: "([)]", ExpectedOutput: "False", IsHidden: true},
		},
	},
}

func main() {
	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("missing env: DB_DSN")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatalf("DB connect error: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("migrations error: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("failed to start tx: %v", err)
	}
	defer tx.Rollback()

	for _, sp := range seedProblems {
		result, err := tx.Exec(
			"INSERT INTO problems (title, description, difficulty, category, initial_code, solution) VALUES (?, ?, ?, ?, ?, ?)",
			sp.problem.Title, sp.problem.Description, sp.problem.Difficulty, sp.problem.Category, sp.problem.InitialCode, sp.problem.Solution,
		)
		if err != nil {
			log.Fatalf("failed to insert problem %q: %v", sp.problem.Title, err)
		}
		problemID, _ := result.LastInsertId()

		for _, tc := range sp.testCases {
			if _, err := tx.Exec(
				"INSERT INTO test_cases (problem_id, input_data, expected_output, is_hidden) VALUES (?, ?, ?, ?)",
				problemID, tc.InputData, tc.ExpectedOutput, tc.IsHidden,
			); err != nil {
				log.Fatalf("failed to insert test case for %q: %v", sp.problem.Title, err)
			}
		}

		log.Printf("seeded problem: %s", sp.problem.Title)
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("failed to commit tx: %v", err)
	}
}
