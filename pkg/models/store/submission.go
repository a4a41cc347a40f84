package store

import "time"

type Submission struct {
	ID          string
	Team        string
	Points      int
	Vulns       []string
	SubmittedAt time.Time
}
