package store

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func TestSearch_PlanBodyMatch(t *testing.T) {
	s, paths := newTestStore(t)
	writeFile(t, filepath.Join(paths.Plans, "refactor.md"),
		"# Refactor plan\n\nFirst restructure the store, then migrate the watcher wiring to the new layout.\n")
	writeFile(t, filepath.Join(paths.Plans, "unrelated.md"), "# Release checklist\n\nNothing here.\n")

	results := s.Search("watcher")
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1: %+v", len(results), results)
	}
	r := results[0]
	if r.Type != "plan" || r.ID != "refactor.md" || r.Title != "Refactor plan" {
		t.Errorf("result = %+v", r)
	}
	if !strings.Contains(r.Snippet, "watcher") || !strings.Contains(r.Snippet, "migrate") {
		t.Errorf("snippet %q should carry surrounding context", r.Snippet)
	}
}

func TestSearch_PlanTitleMatchStillSnippetsBody(t *testing.T) {
	s, paths := newTestStore(t)
	writeFile(t, filepath.Join(paths.Plans, "auth.md"),
		"# Auth rollout\n\nDetails about the token exchange flow.\n")

	results := s.Search("auth")
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if !strings.Contains(results[0].Snippet, "Auth rollout") {
		t.Errorf("snippet = %q, want body-derived text", results[0].Snippet)
	}
}

func TestSearch_TodoFirstMatchingItemOnly(t *testing.T) {
	s, paths := newTestStore(t)
	writeFile(t, filepath.Join(paths.Todos, uuidA+".json"), `[
		{"id": "1", "subject": "ship the parser", "status": "completed"},
		{"id": "2", "subject": "parser docs", "status": "pending"},
		{"id": "3", "subject": "other work", "status": "pending"}
	]`)

	results := s.Search("parser")
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 per list: %+v", len(results), results)
	}
	r := results[0]
	if r.ID != uuidA {
		t.Errorf("id = %q, want session id", r.ID)
	}
	if r.Title != "Todo list (3 items)" {
		t.Errorf("title = %q", r.Title)
	}
	if !strings.Contains(r.Snippet, "ship the parser") {
		t.Errorf("snippet = %q, want first matching item", r.Snippet)
	}
}

func TestSearch_CapAndSourceOrder(t *testing.T) {
	s, paths := newTestStore(t)
	for i := 0; i < 18; i++ {
		writeFile(t, filepath.Join(paths.Plans, fmt.Sprintf("widget-%02d.md", i)),
			fmt.Sprintf("# Widget %02d\n\nwidget notes\n", i))
	}
	for i := 1; i <= 7; i++ {
		writeFile(t, filepath.Join(paths.Tasks, uuidA, fmt.Sprintf("%d.json", i)),
			fmt.Sprintf(`{"id": "%d", "subject": "widget task %d", "status": "pending"}`, i, i))
	}
	writeFile(t, filepath.Join(paths.Todos, uuidB+".json"),
		`[{"id": "1", "subject": "widget todo", "status": "pending"}]`)

	results := s.Search("widget")
	if len(results) != MaxSearchResults {
		t.Fatalf("got %d results, want cap of %d", len(results), MaxSearchResults)
	}
	for i, r := range results {
		want := "plan"
		if i >= 18 {
			want = "task"
		}
		if r.Type != want {
			t.Errorf("result %d type = %q, want %q", i, r.Type, want)
		}
	}
	// The todo list matched but the cap starved it out
	for _, r := range results {
		if r.Type == "todo" {
			t.Errorf("todo result survived truncation: %+v", r)
		}
	}
}

func TestSearch_MemoryMatches(t *testing.T) {
	s, paths := newTestStore(t)
	writeFile(t, filepath.Join(paths.Projects, "-home-user-app", "memory", "MEMORY.md"),
		"# Index\n\nPointers to the deploy runbook.\n")

	results := s.Search("deploy")
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.Type != "memory" || r.ID != "-home-user-app/MEMORY.md" {
		t.Errorf("result = %+v", r)
	}
	if r.Path == "" {
		t.Errorf("memory result should carry the project path")
	}
}

func TestExtractSnippet(t *testing.T) {
	long := strings.Repeat("a", 80) + "NEEDLE" + strings.Repeat("b", 200)

	tests := []struct {
		name    string
		content string
		query   string
		want    string
	}{
		{
			name:    "window with both edges clipped",
			content: long,
			query:   "needle",
			want:    "..." + strings.Repeat("a", 50) + "NEEDLE" + strings.Repeat("b", 100) + "...",
		},
		{
			name:    "match near start keeps left edge",
			content: "NEEDLE tail text",
			query:   "needle",
			want:    "NEEDLE tail text",
		},
		{
			name:    "absent query truncates head",
			content: strings.Repeat("x", 200),
			query:   "missing",
			want:    strings.Repeat("x", 150) + "...",
		},
		{
			name:    "absent query short content untouched",
			content: "short",
			query:   "missing",
			want:    "short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractSnippet(tt.content, tt.query); got != tt.want {
				t.Errorf("extractSnippet() = %q, want %q", got, tt.want)
			}
		})
	}
}
