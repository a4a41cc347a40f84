//go:build !linux

package conditions

func lookupUser(string) error {
	return errUnsupportedPlatform
}

func lookupGroup(string) error {
	return errUnsupportedPlatform
}

func userGroups(string) ([]string, error) {
	return nil, errUnsupportedPlatform
}

func firewallStatusCommand() string {
	return ""
}

func serviceStatusCommand(string) string {
	return ""
}
