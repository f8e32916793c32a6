package store

import (
	"path/filepath"
	"testing"

	"claudeboard/config"
)

func TestListTodos(t *testing.T) {
	s, paths := newTestStore(t)

	writeFile(t, filepath.Join(paths.Projects, "-home-user-app", config.SessionIndexFile), `{
		"entries": [{"sessionId": "`+uuidA+`", "summary": "refactor", "projectPath": "/home/user/app"}]
	}`)

	writeFile(t, filepath.Join(paths.Todos, uuidA+".json"),
		`[{"id": "t1", "content": "run tests", "status": "completed"},
		  {"id": "t2", "content": "ship it", "status": "pending", "priority": "high"}]`)
	// Empty list must not be returned
	writeFile(t, filepath.Join(paths.Todos, uuidB+".json"), `[]`)
	// Corrupt list skipped
	writeFile(t, filepath.Join(paths.Todos, uuidC+".json"), `{broken`)

	todos := s.ListTodos()
	if len(todos) != 1 {
		t.Fatalf("got %d todo lists, want 1", len(todos))
	}

	list := todos[0]
	if list.SessionID != uuidA || len(list.Items) != 2 {
		t.Fatalf("list wrong: %+v", list)
	}
	if list.Completed {
		t.Error("list with a pending item classified complete")
	}
	if list.SessionSummary != "refactor" || list.ProjectName != "app" {
		t.Errorf("list not enriched: %+v", list)
	}
	if list.Items[1].Priority != "high" {
		t.Errorf("priority lost: %+v", list.Items[1])
	}
}

func TestListTodos_CompletionDerivedPerRead(t *testing.T) {
	s, paths := newTestStore(t)
	path := filepath.Join(paths.Todos, uuidA+".json")

	writeFile(t, path, `[{"id": "t1", "content": "a", "status": "completed"}]`)
	if todos := s.ListTodos(); len(todos) != 1 || !todos[0].Completed {
		t.Fatalf("all-completed list should classify complete: %+v", todos)
	}

	// Flipping one item on disk flips classification immediately, no caching
	writeFile(t, path, `[{"id": "t1", "content": "a", "status": "pending"}]`)
	if todos := s.ListTodos(); len(todos) != 1 || todos[0].Completed {
		t.Fatalf("list with pending item should not classify complete: %+v", todos)
	}
}

func TestTodoSessionID(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{uuidA + ".json", uuidA},
		{uuidA + "-agent-" + uuidB + ".json", uuidA},
		{uuidA + "-agent-compact.json", uuidA},
		{"plain-name.json", "plain-name"},
	}

	for _, tt := range tests {
		if got := todoSessionID(tt.filename); got != tt.want {
			t.Errorf("todoSessionID(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestListTodos_AgentListJoinsParentSession(t *testing.T) {
	s, paths := newTestStore(t)
	writeFile(t, filepath.Join(paths.Projects, "-p", config.SessionIndexFile), `{
		"entries": [{"sessionId": "`+uuidA+`", "summary": "parent session"}]
	}`)
	writeFile(t, filepath.Join(paths.Todos, uuidA+"-agent-sub.json"),
		`[{"id": "t1", "content": "subtask", "status": "pending"}]`)

	todos := s.ListTodos()
	if len(todos) != 1 {
		t.Fatalf("got %d lists, want 1", len(todos))
	}
	if todos[0].SessionID != uuidA || todos[0].SessionSummary != "parent session" {
		t.Errorf("agent list did not join parent session: %+v", todos[0])
	}
}

func TestListTodos_ContentFieldDrift(t *testing.T) {
	s, paths := newTestStore(t)
	writeFile(t, filepath.Join(paths.Todos, uuidA+".json"),
		`[{"subject": "from subject"},
		  {"content": "from content"},
		  {"description": "from description"}]`)

	todos := s.ListTodos()
	if len(todos) != 1 {
		t.Fatalf("got %d lists, want 1", len(todos))
	}
	items := todos[0].Items
	want := []string{"from subject", "from content", "from description"}
	for i, item := range items {
		if item.Content != want[i] {
			t.Errorf("items[%d].Content = %q, want %q", i, item.Content, want[i])
		}
		if item.Status != "pending" {
			t.Errorf("items[%d].Status = %q, want default pending", i, item.Status)
		}
	}
	if items[0].ID != "todo-0" {
		t.Errorf("missing id should default by position, got %q", items[0].ID)
	}
}
