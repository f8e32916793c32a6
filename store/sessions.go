package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"claudeboard/config"
	"claudeboard/log"
)

// Session is a read-only snapshot of one recorded interaction, rebuilt from
// disk on every request. Two sources populate it: entries of a project's
// sessions-index.json, and transcript files present on disk but missing from
// that index.
type Session struct {
	ID           string `json:"id"`
	Project      string `json:"project"`
	ProjectPath  string `json:"projectPath"`
	Summary      string `json:"summary"`
	FirstPrompt  string `json:"firstPrompt,omitempty"`
	CreatedAt    string `json:"createdAt"`
	Modified     string `json:"modified"`
	MessageCount int    `json:"messageCount"`
	GitBranch    string `json:"gitBranch,omitempty"`
}

// sessionIndex mirrors a project's sessions-index.json on disk.
type sessionIndex struct {
	Version      int                 `json:"version"`
	OriginalPath string              `json:"originalPath"`
	Entries      []sessionIndexEntry `json:"entries"`
}

type sessionIndexEntry struct {
	SessionID    string `json:"sessionId"`
	FullPath     string `json:"fullPath"`
	FirstPrompt  string `json:"firstPrompt"`
	Summary      string `json:"summary"`
	MessageCount int    `json:"messageCount"`
	Created      string `json:"created"`
	Modified     string `json:"modified"`
	GitBranch    string `json:"gitBranch"`
	ProjectPath  string `json:"projectPath"`
}

// toSession maps a raw index entry into a Session, applying defaults for
// fields the index may omit.
func (e sessionIndexEntry) toSession(project string) Session {
	created := e.Created
	if created == "" {
		created = formatTime(time.Now())
	}
	modified := e.Modified
	if modified == "" {
		modified = created
	}
	return Session{
		ID:           e.SessionID,
		Project:      project,
		ProjectPath:  e.ProjectPath,
		Summary:      e.Summary,
		FirstPrompt:  e.FirstPrompt,
		CreatedAt:    created,
		Modified:     modified,
		MessageCount: e.MessageCount,
		GitBranch:    e.GitBranch,
	}
}

// ListSessions returns every session across all projects, newest first.
// A project whose index is missing or corrupt still contributes whatever
// transcript files it has on disk; a fully empty project contributes nothing.
func (s *Store) ListSessions() []Session {
	sessions := []Session{}

	dirs, err := os.ReadDir(s.paths.Projects)
	if err != nil {
		log.Debug().Err(err).Str("dir", s.paths.Projects).Msg("projects directory unreadable")
		return sessions
	}

	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		sessions = append(sessions, s.projectSessions(dir.Name())...)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return parseTime(sessions[i].CreatedAt).After(parseTime(sessions[j].CreatedAt))
	})
	return sessions
}

// SessionMap returns a lookup from session id to Session so other readers can
// join against session metadata without re-scanning.
func (s *Store) SessionMap() map[string]Session {
	m := make(map[string]Session)
	for _, sess := range s.ListSessions() {
		m[sess.ID] = sess
	}
	return m
}

// projectSessions reconciles one project directory: index entries first, then
// orphan transcript files whose id the index did not cover.
func (s *Store) projectSessions(project string) []Session {
	dir := filepath.Join(s.paths.Projects, project)
	var sessions []Session
	seen := make(map[string]bool)

	idx, err := readSessionIndex(filepath.Join(dir, config.SessionIndexFile))
	if err == nil {
		for _, entry := range idx.Entries {
			sess := entry.toSession(project)
			sessions = append(sessions, sess)
			seen[sess.ID] = true
		}
	} else if !os.IsNotExist(err) {
		log.Debug().Err(err).Str("project", project).Msg("session index unreadable, falling back to transcripts")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return sessions
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, ok := transcriptSessionID(entry.Name())
		if !ok || seen[id] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		ts := formatTime(info.ModTime())
		sessions = append(sessions, Session{
			ID:        id,
			Project:   project,
			CreatedAt: ts,
			Modified:  ts,
		})
		seen[id] = true
	}
	return sessions
}

func readSessionIndex(path string) (*sessionIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var idx sessionIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// transcriptSessionID reports whether a filename looks like a session
// transcript (<uuid>.jsonl) and returns the owning session id. Sub-agent
// transcripts carry an "-agent-" suffix after the uuid; that suffix is
// stripped so they resolve to their parent session.
func transcriptSessionID(filename string) (string, bool) {
	if filepath.Ext(filename) != ".jsonl" {
		return "", false
	}
	stem := strings.TrimSuffix(filename, ".jsonl")
	if i := strings.Index(stem, "-agent-"); i >= 0 {
		stem = stem[:i]
	}
	if _, err := uuid.Parse(stem); err != nil {
		return "", false
	}
	return stem, true
}
