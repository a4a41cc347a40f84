package domain

import (
	"context"
	"errors"
	"fmt"
)

// IdentifierLength is the exact length every record identifier must have.
// Identifiers are concatenated into a single string for remote reporting and
// split back into fixed-size chunks by the scoreboard.
const IdentifierLength = 6

var ErrInvalidIdentifier = errors.New("empty or invalid record identifier")

// Condition is a single predicate about the state of the local host.
// Implementations never fail: anything that prevents evaluation counts as
// "condition not met".
type Condition interface {
	Kind() string
	Evaluate(ctx context.Context) bool
}

// Configuration is the decoded scoring configuration
type Configuration struct {
	Title   string
	Remote  string
	Records []Record
}

// Record is a scored unit of the configuration. Negative points are penalties.
type Record struct {
	Message    string
	Identifier string
	Points     int
	Checks     []Check
}

// Check pairs conditions that must hold with conditions that must not.
type Check struct {
	Success []Condition
	Fail    []Condition
}

func (r Record) Validate() error {
	if len(r.Identifier) != IdentifierLength {
		return fmt.Errorf("%w: %q must be exactly %d characters", ErrInvalidIdentifier, r.Identifier, IdentifierLength)
	}
	return nil
}

// Validate checks every record up front so that an invalid configuration is
// rejected before any condition is evaluated.
func (c *Configuration) Validate() error {
	for i, rec := range c.Records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("record %d (%s): %w", i, rec.Message, err)
		}
	}
	return nil
}

// Conditions returns the number of conditions declared across all records
func (c *Configuration) Conditions() int {
	n := 0
	for _, rec := range c.Records {
		for _, check := range rec.Checks {
			n += len(check.Success) + len(check.Fail)
		}
	}
	return n
}
