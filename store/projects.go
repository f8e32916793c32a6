package store

import (
	"sort"
)

// ProjectSummary is a derived rollup over every session sharing a project
// directory. Projects are never stored; they exist only as this grouping.
type ProjectSummary struct {
	Name          string `json:"name"`
	EncodedName   string `json:"encodedName"`
	ProjectPath   string `json:"projectPath"`
	SessionCount  int    `json:"sessionCount"`
	TotalMessages int    `json:"totalMessages"`
	LastActivity  string `json:"lastActivity"`
	FirstActivity string `json:"firstActivity"`
}

// ProjectSession is the per-session view embedded in a project detail.
type ProjectSession struct {
	ID           string `json:"id"`
	Summary      string `json:"summary"`
	FirstPrompt  string `json:"firstPrompt,omitempty"`
	CreatedAt    string `json:"createdAt"`
	Modified     string `json:"modified"`
	MessageCount int    `json:"messageCount"`
	GitBranch    string `json:"gitBranch,omitempty"`
}

// ProjectDetail is a summary plus the project's sessions, most recently
// modified first.
type ProjectDetail struct {
	ProjectSummary
	Sessions []ProjectSession `json:"sessions"`
}

// ListProjects groups the full session list by project and computes rollups,
// most recently active project first.
func (s *Store) ListProjects() []ProjectSummary {
	sessions := s.ListSessions()

	var order []string
	grouped := make(map[string][]Session)
	for _, sess := range sessions {
		if _, ok := grouped[sess.Project]; !ok {
			order = append(order, sess.Project)
		}
		grouped[sess.Project] = append(grouped[sess.Project], sess)
	}

	projects := []ProjectSummary{}
	for _, encodedName := range order {
		projects = append(projects, summarize(encodedName, grouped[encodedName]))
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return parseTime(projects[i].LastActivity).After(parseTime(projects[j].LastActivity))
	})
	return projects
}

// GetProject returns the rollup and session list for one encoded project
// name, or nil when no session belongs to it.
func (s *Store) GetProject(encodedName string) *ProjectDetail {
	var projectSessions []Session
	for _, sess := range s.ListSessions() {
		if sess.Project == encodedName {
			projectSessions = append(projectSessions, sess)
		}
	}
	if len(projectSessions) == 0 {
		return nil
	}

	detail := &ProjectDetail{
		ProjectSummary: summarize(encodedName, projectSessions),
	}

	sort.SliceStable(projectSessions, func(i, j int) bool {
		return parseTime(projectSessions[i].Modified).After(parseTime(projectSessions[j].Modified))
	})
	for _, sess := range projectSessions {
		detail.Sessions = append(detail.Sessions, ProjectSession{
			ID:           sess.ID,
			Summary:      sess.Summary,
			FirstPrompt:  sess.FirstPrompt,
			CreatedAt:    sess.CreatedAt,
			Modified:     sess.Modified,
			MessageCount: sess.MessageCount,
			GitBranch:    sess.GitBranch,
		})
	}
	return detail
}

// summarize computes the rollup for one project's sessions. The display name
// and path come from the first session carrying a path, else the encoded
// directory name stands in for both.
func summarize(encodedName string, sessions []Session) ProjectSummary {
	totalMessages := 0
	var last, first string
	for i, sess := range sessions {
		totalMessages += sess.MessageCount

		modified := sess.Modified
		if modified == "" {
			modified = sess.CreatedAt
		}
		if i == 0 || parseTime(modified).After(parseTime(last)) {
			last = modified
		}
		if i == 0 || parseTime(sess.CreatedAt).Before(parseTime(first)) {
			first = sess.CreatedAt
		}
	}

	name := encodedName
	for _, sess := range sessions {
		if sess.ProjectPath != "" {
			name = sess.ProjectPath
			break
		}
	}

	return ProjectSummary{
		Name:          name,
		EncodedName:   encodedName,
		ProjectPath:   name,
		SessionCount:  len(sessions),
		TotalMessages: totalMessages,
		LastActivity:  last,
		FirstActivity: first,
	}
}
