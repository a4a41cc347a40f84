package domain

import "time"

// Submission is a report received by the scoreboard from a scored host
type Submission struct {
	ID          string
	Team        string
	Points      int
	Vulns       []string
	SubmittedAt time.Time
}
