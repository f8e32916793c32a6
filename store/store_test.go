package store

import (
	"os"
	"path/filepath"
	"testing"

	"claudeboard/config"
)

// newTestStore builds a store over an empty artifact tree in a temp dir.
func newTestStore(t *testing.T) (*Store, config.Paths) {
	t.Helper()
	cfg := config.Config{ClaudeDir: t.TempDir()}
	paths := cfg.Paths()
	for _, dir := range []string{paths.Plans, paths.Tasks, paths.Todos, paths.Projects} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	return New(paths), paths
}

// newMissingPaths points at a claude dir that does not exist at all.
func newMissingPaths(t *testing.T) config.Paths {
	t.Helper()
	cfg := config.Config{ClaudeDir: filepath.Join(t.TempDir(), "absent")}
	return cfg.Paths()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveWithin(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name  string
		parts []string
		want  bool
	}{
		{"plain file", []string{"notes.md"}, true},
		{"nested", []string{"proj", "memory", "notes.md"}, true},
		{"dot dot escape", []string{"../outside.md"}, false},
		{"deep escape", []string{"proj", "..", "..", "etc", "passwd"}, false},
		{"root itself", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := resolveWithin(root, tt.parts...); got != tt.want {
				t.Errorf("resolveWithin(%v) = %v, want %v", tt.parts, got, tt.want)
			}
		})
	}
}

func TestLastPathSegment(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/home/user/my-project", "my-project"},
		{"my-project", "my-project"},
		{"/home/user/my-project/", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := lastPathSegment(tt.path); got != tt.want {
			t.Errorf("lastPathSegment(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
