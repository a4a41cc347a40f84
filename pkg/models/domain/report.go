package domain

import (
	"strings"
	"time"
)

// ScoredOutcome is a record that satisfied all of its checks
type ScoredOutcome struct {
	Message    string
	Identifier string
	Points     int
}

func (o ScoredOutcome) IsPenalty() bool {
	return o.Points < 0
}

// Report represents the result of one scoring run
type Report struct {
	Title       string
	Outcomes    []ScoredOutcome
	Count       int
	Total       int
	GeneratedAt time.Time
}

// Add appends an outcome and folds its points into the running total.
// Totals are never clamped, so penalties may drive the total below zero.
func (r *Report) Add(o ScoredOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	r.Count++
	r.Total += o.Points
}

// Awards returns every outcome that is not a penalty, zero-point ones
// included, in declaration order. Awards and Penalties together cover Count.
func (r *Report) Awards() []ScoredOutcome {
	var out []ScoredOutcome
	for _, o := range r.Outcomes {
		if !o.IsPenalty() {
			out = append(out, o)
		}
	}
	return out
}

// Penalties returns the outcomes worth negative points, in declaration order
func (r *Report) Penalties() []ScoredOutcome {
	var out []ScoredOutcome
	for _, o := range r.Outcomes {
		if o.IsPenalty() {
			out = append(out, o)
		}
	}
	return out
}

// Identifiers concatenates the identifiers of every outcome. This is the
// "vulnstr" sent to the scoreboard.
func (r *Report) Identifiers() string {
	var sb strings.Builder
	for _, o := range r.Outcomes {
		sb.WriteString(o.Identifier)
	}
	return sb.String()
}
