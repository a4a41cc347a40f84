package api

import "time"

// SubmissionRequest is the payload posted by a scored host.
// Points travels as a string for compatibility with existing scoreboards.
type SubmissionRequest struct {
	ID      string `json:"id"`
	VulnStr string `json:"vulnstr"`
	Points  string `json:"points"`
}

type Submission struct {
	ID     string   `json:"id"`
	Team   string   `json:"team"`
	Points int      `json:"points"`
	Vulns  []string `json:"vulns"`
	Time   int64    `json:"time"`
}

type Outcome struct {
	Message    string `json:"message"`
	Identifier string `json:"identifier"`
	Points     int    `json:"points"`
}

type Report struct {
	Title       string    `json:"title"`
	Count       int       `json:"count"`
	Total       int       `json:"total"`
	Outcomes    []Outcome `json:"outcomes"`
	GeneratedAt time.Time `json:"generated_at"`
}

type Error struct {
	Error string `json:"error"`
}
