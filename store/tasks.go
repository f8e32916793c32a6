package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"claudeboard/log"
)

// Task is a per-session unit of work. Ids are sequential within a session and
// not globally unique; callers must key by (sessionId, id). The blocks and
// blockedBy lists reference task ids as free-form strings with no referential
// integrity.
type Task struct {
	ID             string   `json:"id"`
	SessionID      string   `json:"sessionId"`
	Subject        string   `json:"subject"`
	Description    string   `json:"description"`
	Status         string   `json:"status"` // pending, in_progress, completed
	Blocks         []string `json:"blocks"`
	BlockedBy      []string `json:"blockedBy"`
	CreatedAt      string   `json:"createdAt"`
	SessionSummary string   `json:"sessionSummary,omitempty"`
	ProjectPath    string   `json:"projectPath,omitempty"`
	ProjectName    string   `json:"projectName,omitempty"`
}

// rawTask mirrors a single task file on disk.
type rawTask struct {
	ID          string   `json:"id"`
	Subject     string   `json:"subject"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Blocks      []string `json:"blocks"`
	BlockedBy   []string `json:"blockedBy"`
}

// Task files are numbered (1.json, 2.json, ...); .lock and .highwatermark
// files share the directory and must be skipped.
var taskFileRe = regexp.MustCompile(`^\d+\.json$`)

// ListTasks returns every task across all sessions, each enriched with its
// owning session's summary and project when the session is known. A corrupt
// task file is skipped, never fatal to the batch.
func (s *Store) ListTasks() []Task {
	tasks := []Task{}

	sessionDirs, err := os.ReadDir(s.paths.Tasks)
	if err != nil {
		log.Debug().Err(err).Str("dir", s.paths.Tasks).Msg("tasks directory unreadable")
		return tasks
	}

	sessions := s.SessionMap()

	for _, dir := range sessionDirs {
		if !dir.IsDir() {
			continue
		}
		sessionID := dir.Name()
		session, hasSession := sessions[sessionID]

		files, err := os.ReadDir(filepath.Join(s.paths.Tasks, sessionID))
		if err != nil {
			continue
		}
		for _, file := range files {
			if !taskFileRe.MatchString(file.Name()) {
				continue
			}
			path := filepath.Join(s.paths.Tasks, sessionID, file.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			var raw rawTask
			if err := json.Unmarshal(data, &raw); err != nil {
				log.Debug().Err(err).Str("file", path).Msg("skipping malformed task file")
				continue
			}
			info, err := file.Info()
			if err != nil {
				continue
			}

			task := Task{
				ID:          raw.ID,
				SessionID:   sessionID,
				Subject:     raw.Subject,
				Description: raw.Description,
				Status:      raw.Status,
				Blocks:      raw.Blocks,
				BlockedBy:   raw.BlockedBy,
				CreatedAt:   formatTime(info.ModTime()),
			}
			if task.Blocks == nil {
				task.Blocks = []string{}
			}
			if task.BlockedBy == nil {
				task.BlockedBy = []string{}
			}
			if hasSession {
				task.SessionSummary = session.Summary
				task.ProjectPath = session.ProjectPath
				task.ProjectName = lastPathSegment(session.ProjectPath)
			}
			tasks = append(tasks, task)
		}
	}
	return tasks
}
