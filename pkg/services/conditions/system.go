package conditions

import (
	"context"
	"errors"
	"regexp"
)

const (
	KindFirewall = "Firewall"
	KindService  = "Service"
)

// "inactive" has no word boundary before "active", so it never matches.
var activeStatus = regexp.MustCompile(`\bactive\b`)

var errUnsupportedPlatform = errors.New("not supported on this platform")

// Firewall holds when the platform firewall reports itself active
type Firewall struct{}

func (Firewall) Kind() string { return KindFirewall }

func (c Firewall) Evaluate(ctx context.Context) bool {
	command := firewallStatusCommand()
	if command == "" {
		return notMet(ctx, c.Kind(), errUnsupportedPlatform)
	}
	return outputMatches(ctx, c.Kind(), command, activeStatus)
}

// Service holds when the service manager reports the unit active
type Service struct {
	Service string `yaml:"service"`
}

func (Service) Kind() string { return KindService }

func (c Service) Evaluate(ctx context.Context) bool {
	if c.Service == "" {
		return notMet(ctx, c.Kind(), errors.New("empty service name"))
	}
	command := serviceStatusCommand(c.Service)
	if command == "" {
		return notMet(ctx, c.Kind(), errUnsupportedPlatform)
	}
	return outputMatches(ctx, c.Kind(), command, activeStatus)
}
