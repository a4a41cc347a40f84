package conditions

import "context"

const (
	KindUserExists  = "UserExists"
	KindGroupExists = "GroupExists"
	KindUserInGroup = "UserInGroup"
)

type UserExists struct {
	User string `yaml:"user"`
}

func (UserExists) Kind() string { return KindUserExists }

func (c UserExists) Evaluate(ctx context.Context) bool {
	if err := lookupUser(c.User); err != nil {
		return notMet(ctx, c.Kind(), err)
	}
	return true
}

type GroupExists struct {
	Group string `yaml:"group"`
}

func (GroupExists) Kind() string { return KindGroupExists }

func (c GroupExists) Evaluate(ctx context.Context) bool {
	if err := lookupGroup(c.Group); err != nil {
		return notMet(ctx, c.Kind(), err)
	}
	return true
}

// UserInGroup holds when User resolves and Group is among its memberships,
// primary group included.
type UserInGroup struct {
	User  string `yaml:"user"`
	Group string `yaml:"group"`
}

func (UserInGroup) Kind() string { return KindUserInGroup }

func (c UserInGroup) Evaluate(ctx context.Context) bool {
	groups, err := userGroups(c.User)
	if err != nil {
		return notMet(ctx, c.Kind(), err)
	}
	for _, g := range groups {
		if g == c.Group {
			return true
		}
	}
	return false
}
