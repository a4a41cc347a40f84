package conditions

import (
	"testing"

	"github.com/kothscore/helios/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func decodeYAML(t *testing.T, c Catalog, src string) (domain.Condition, error) {
	t.Helper()
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	require.NotEmpty(t, doc.Content)
	return c.Decode(doc.Content[0])
}

func TestDefaultCatalog_Kinds(t *testing.T) {
	kinds := DefaultCatalog().Kinds()

	for _, kind := range []string{
		"FileContains", "FileExists", "CommandExitCode", "CommandOutput",
		"CommandOutputMatches", "UserExists", "GroupExists", "UserInGroup",
		"Firewall", "FirewallActive", "Service", "ServiceActive",
	} {
		assert.Contains(t, kinds, kind)
	}
	assert.IsIncreasing(t, kinds)
}

func TestCatalog_Register(t *testing.T) {
	c := NewCatalog()
	factory := func() domain.Condition { return &FileExists{} }

	t.Run("success", func(t *testing.T) {
		require.NoError(t, c.Register("PathThere", factory))
		assert.Equal(t, []string{"PathThere"}, c.Kinds())
	})

	t.Run("duplicate", func(t *testing.T) {
		assert.Error(t, c.Register("PathThere", factory))
	})

	t.Run("empty kind", func(t *testing.T) {
		assert.Error(t, c.Register("", factory))
	})

	t.Run("nil factory", func(t *testing.T) {
		assert.Error(t, c.Register("Other", nil))
	})
}

func TestCatalog_Decode(t *testing.T) {
	c := DefaultCatalog()
	three := 3

	tests := []struct {
		name     string
		src      string
		expected domain.Condition
	}{
		{
			name:     "file contains",
			src:      "type: FileContains\nfile: /etc/ssh/sshd_config\ncontains: '^PermitRootLogin no'",
			expected: &FileContains{File: "/etc/ssh/sshd_config", Contains: "^PermitRootLogin no"},
		},
		{
			name:     "file exists",
			src:      "type: FileExists\npath: /etc/shadow",
			expected: &FileExists{Path: "/etc/shadow"},
		},
		{
			name:     "exit code default",
			src:      "type: CommandExitCode\ncommand: id bob",
			expected: &CommandExitCode{Command: "id bob"},
		},
		{
			name:     "exit code explicit",
			src:      "type: CommandExitCode\ncommand: id bob\ncode: 3",
			expected: &CommandExitCode{Command: "id bob", Code: &three},
		},
		{
			name:     "command output alias",
			src:      "type: CommandOutputMatches\ncommand: uname -r\ncontains: '^6\\.'",
			expected: &CommandOutput{Command: "uname -r", Contains: `^6\.`},
		},
		{
			name:     "user in group",
			src:      "type: UserInGroup\nuser: bob\ngroup: sudo",
			expected: &UserInGroup{User: "bob", Group: "sudo"},
		},
		{
			name:     "firewall",
			src:      "type: Firewall",
			expected: &Firewall{},
		},
		{
			name:     "service alias",
			src:      "type: ServiceActive\nservice: sshd",
			expected: &Service{Service: "sshd"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cond, err := decodeYAML(t, c, tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cond)
		})
	}
}

func TestCatalog_DecodeErrors(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		name string
		src  string
	}{
		{name: "unknown type", src: "type: RegistryKey\npath: HKLM"},
		{name: "missing type", src: "path: /etc/passwd"},
		{name: "not a mapping", src: "FileExists"},
		{name: "wrong field shape", src: "type: CommandExitCode\ncommand: id\ncode: zero"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeYAML(t, c, tc.src)
			assert.Error(t, err)
		})
	}
}
