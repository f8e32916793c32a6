package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"claudeboard/log"
)

// TodoItem is one entry of a per-session checklist.
type TodoItem struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Status   string `json:"status"` // pending, in_progress, completed
	Priority string `json:"priority,omitempty"`
}

// TodoList is a session's checklist, identified by its source filename.
// Completed is derived on every read: true iff every item is completed.
type TodoList struct {
	SessionID      string     `json:"sessionId"`
	Filename       string     `json:"filename"`
	Items          []TodoItem `json:"items"`
	CreatedAt      string     `json:"createdAt"`
	Completed      bool       `json:"completed"`
	SessionSummary string     `json:"sessionSummary,omitempty"`
	ProjectPath    string     `json:"projectPath,omitempty"`
	ProjectName    string     `json:"projectName,omitempty"`
}

// rawTodoItem tolerates the field drift across todo file generations: the
// text may live in subject, content, or description.
type rawTodoItem struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	Content     string `json:"content"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

// ListTodos returns every non-empty todo list, enriched with session context.
// Lists written by sub-agents (<uuid>-agent-<suffix>.json) join to the parent
// session named by the uuid.
func (s *Store) ListTodos() []TodoList {
	todos := []TodoList{}

	entries, err := os.ReadDir(s.paths.Todos)
	if err != nil {
		log.Debug().Err(err).Str("dir", s.paths.Todos).Msg("todos directory unreadable")
		return todos
	}

	sessions := s.SessionMap()

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		list := s.readTodoList(entry.Name(), sessions)
		if list == nil || len(list.Items) == 0 {
			continue
		}
		todos = append(todos, *list)
	}
	return todos
}

func (s *Store) readTodoList(filename string, sessions map[string]Session) *TodoList {
	path := filepath.Join(s.paths.Todos, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var rawItems []rawTodoItem
	if err := json.Unmarshal(data, &rawItems); err != nil {
		log.Debug().Err(err).Str("file", filename).Msg("skipping malformed todo file")
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}

	items := make([]TodoItem, 0, len(rawItems))
	completed := true
	for i, raw := range rawItems {
		item := TodoItem{
			ID:       raw.ID,
			Content:  raw.Content,
			Status:   raw.Status,
			Priority: raw.Priority,
		}
		if item.ID == "" {
			item.ID = fmt.Sprintf("todo-%d", i)
		}
		if raw.Subject != "" {
			item.Content = raw.Subject
		} else if raw.Content == "" {
			item.Content = raw.Description
		}
		if item.Status == "" {
			item.Status = "pending"
		}
		if item.Status != "completed" {
			completed = false
		}
		items = append(items, item)
	}

	list := &TodoList{
		SessionID: todoSessionID(filename),
		Filename:  filename,
		Items:     items,
		CreatedAt: formatTime(info.ModTime()),
		Completed: completed,
	}
	if session, ok := sessions[list.SessionID]; ok {
		list.SessionSummary = session.Summary
		list.ProjectPath = session.ProjectPath
		list.ProjectName = lastPathSegment(session.ProjectPath)
	}
	return list
}

// todoSessionID derives the owning session id from a todo filename by
// stripping the extension and any trailing "-agent-<suffix>" marker.
func todoSessionID(filename string) string {
	stem := strings.TrimSuffix(filename, ".json")
	if i := strings.Index(stem, "-agent-"); i >= 0 {
		stem = stem[:i]
	}
	return stem
}
