package conditions

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kothscore/helios/pkg/models/domain"
	"gopkg.in/yaml.v3"
)

// Factory returns a zero-valued condition ready to be decoded into
type Factory func() domain.Condition

// Catalog maps condition type tags to their implementations
type Catalog interface {
	// Register adds a condition kind under the given type tag
	Register(kind string, factory Factory) error
	// Decode builds a condition from a YAML node discriminated by its `type` field
	Decode(node *yaml.Node) (domain.Condition, error)
	// Kinds returns the registered type tags, sorted
	Kinds() []string
}

type catalog struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewCatalog() Catalog {
	return &catalog{
		factories: make(map[string]Factory),
	}
}

// DefaultCatalog returns a catalog with every built-in condition registered,
// under both its short tag and its descriptive alias.
func DefaultCatalog() Catalog {
	c := NewCatalog()
	builtins := map[string]Factory{
		KindFileContains:       func() domain.Condition { return &FileContains{} },
		KindFileExists:         func() domain.Condition { return &FileExists{} },
		KindCommandExitCode:    func() domain.Condition { return &CommandExitCode{} },
		KindCommandOutput:      func() domain.Condition { return &CommandOutput{} },
		"CommandOutputMatches": func() domain.Condition { return &CommandOutput{} },
		KindUserExists:         func() domain.Condition { return &UserExists{} },
		KindGroupExists:        func() domain.Condition { return &GroupExists{} },
		KindUserInGroup:        func() domain.Condition { return &UserInGroup{} },
		KindFirewall:           func() domain.Condition { return &Firewall{} },
		"FirewallActive":       func() domain.Condition { return &Firewall{} },
		KindService:            func() domain.Condition { return &Service{} },
		"ServiceActive":        func() domain.Condition { return &Service{} },
	}
	for kind, factory := range builtins {
		// Tags are unique literals, registration cannot fail.
		_ = c.Register(kind, factory)
	}
	return c
}

func (c *catalog) Register(kind string, factory Factory) error {
	if kind == "" {
		return fmt.Errorf("condition kind cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.factories[kind]; exists {
		return fmt.Errorf("condition kind %q is already registered", kind)
	}

	c.factories[kind] = factory
	return nil
}

func (c *catalog) Decode(node *yaml.Node) (domain.Condition, error) {
	var head struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&head); err != nil {
		return nil, fmt.Errorf("line %d: malformed condition: %w", node.Line, err)
	}
	if head.Type == "" {
		return nil, fmt.Errorf("line %d: condition has no type", node.Line)
	}

	c.mu.RLock()
	factory, exists := c.factories[head.Type]
	c.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("line %d: unknown condition type %q", node.Line, head.Type)
	}

	cond := factory()
	if err := node.Decode(cond); err != nil {
		return nil, fmt.Errorf("line %d: invalid %s condition: %w", node.Line, head.Type, err)
	}
	return cond, nil
}

func (c *catalog) Kinds() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	kinds := make([]string, 0, len(c.factories))
	for kind := range c.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
