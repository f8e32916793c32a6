package store

import (
	"fmt"
	"strings"
)

// SearchResult is one match, tagged by the resource type it came from.
type SearchResult struct {
	Type    string `json:"type"` // plan, task, todo, memory
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Path    string `json:"path,omitempty"`
}

// MaxSearchResults caps every query. Results keep the fixed source order
// (plans, tasks, todos, memory), so under heavy truncation later source
// types can be starved entirely; that is accepted behavior.
const MaxSearchResults = 20

// Search runs a case-insensitive substring scan across every resource type.
// The query must already be trimmed and non-empty.
func (s *Store) Search(query string) []SearchResult {
	results := []SearchResult{}
	lower := strings.ToLower(query)

	// Plans match on title/filename first; a miss there still loads the body
	// for a content check, so a plan can match on body alone.
	for _, plan := range s.ListPlans() {
		if strings.Contains(strings.ToLower(plan.Title), lower) ||
			strings.Contains(strings.ToLower(plan.Filename), lower) {
			snippet := plan.Title
			if full := s.GetPlan(plan.Filename); full != nil {
				snippet = extractSnippet(full.Content, query)
			}
			results = append(results, SearchResult{
				Type:    "plan",
				ID:      plan.Filename,
				Title:   plan.Title,
				Snippet: snippet,
			})
			continue
		}
		full := s.GetPlan(plan.Filename)
		if full != nil && strings.Contains(strings.ToLower(full.Content), lower) {
			results = append(results, SearchResult{
				Type:    "plan",
				ID:      plan.Filename,
				Title:   plan.Title,
				Snippet: extractSnippet(full.Content, query),
			})
		}
	}

	for _, task := range s.ListTasks() {
		if strings.Contains(strings.ToLower(task.Subject), lower) ||
			strings.Contains(strings.ToLower(task.Description), lower) {
			source := task.Description
			if source == "" {
				source = task.Subject
			}
			results = append(results, SearchResult{
				Type:    "task",
				ID:      task.ID,
				Title:   task.Subject,
				Snippet: extractSnippet(source, query),
			})
		}
	}

	// A todo list contributes at most one result; the snippet comes from the
	// first matching item only.
	for _, todo := range s.ListTodos() {
		for _, item := range todo.Items {
			if strings.Contains(strings.ToLower(item.Content), lower) {
				results = append(results, SearchResult{
					Type:    "todo",
					ID:      todo.SessionID,
					Title:   fmt.Sprintf("Todo list (%d items)", len(todo.Items)),
					Snippet: extractSnippet(item.Content, query),
				})
				break
			}
		}
	}

	for _, project := range s.ListMemoryProjects() {
		for _, file := range project.Files {
			if strings.Contains(strings.ToLower(file.Title), lower) ||
				strings.Contains(strings.ToLower(file.Filename), lower) ||
				strings.Contains(strings.ToLower(file.Excerpt), lower) ||
				strings.Contains(strings.ToLower(project.ProjectName), lower) {
				results = append(results, SearchResult{
					Type:    "memory",
					ID:      project.ProjectDir + "/" + file.Filename,
					Title:   file.Title,
					Snippet: extractSnippet(file.Excerpt, query),
					Path:    project.ProjectPath,
				})
			}
		}
	}

	if len(results) > MaxSearchResults {
		results = results[:MaxSearchResults]
	}
	return results
}

// extractSnippet windows the source text around the first case-insensitive
// occurrence of the query: 50 bytes before to 100 after, clipped to bounds,
// with ellipses marking clipped edges. When the query is absent the snippet
// is the first 150 bytes.
func extractSnippet(content, query string) string {
	const (
		before    = 50
		after     = 100
		maxLength = 150
	)

	index := strings.Index(strings.ToLower(content), strings.ToLower(query))
	if index == -1 {
		if len(content) > maxLength {
			return content[:maxLength] + "..."
		}
		return content
	}

	start := index - before
	if start < 0 {
		start = 0
	}
	end := index + len(query) + after
	if end > len(content) {
		end = len(content)
	}

	snippet := content[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(content) {
		snippet = snippet + "..."
	}
	return snippet
}
