package store

import (
	"os"
	"path/filepath"

	"claudeboard/log"
)

// PlanSummary describes one markdown plan document.
type PlanSummary struct {
	Filename  string `json:"filename"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
	Size      int64  `json:"size"`
}

// Plan is a summary plus the document body, front matter removed.
type Plan struct {
	PlanSummary
	Content string `json:"content"`
}

// ListPlans returns summaries for every .md file in the plans directory.
// The title comes from front matter when present, else the first level-1
// heading, else the filename.
func (s *Store) ListPlans() []PlanSummary {
	plans := []PlanSummary{}

	entries, err := os.ReadDir(s.paths.Plans)
	if err != nil {
		log.Debug().Err(err).Str("dir", s.paths.Plans).Msg("plans directory unreadable")
		return plans
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		plan := s.readPlan(entry.Name())
		if plan == nil {
			continue
		}
		plans = append(plans, plan.PlanSummary)
	}
	return plans
}

// GetPlan returns one plan with its full content, or nil if the file does not
// exist or the name escapes the plans directory.
func (s *Store) GetPlan(filename string) *Plan {
	return s.readPlan(filename)
}

func (s *Store) readPlan(filename string) *Plan {
	path, ok := resolveWithin(s.paths.Plans, filename)
	if !ok {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug().Err(err).Str("file", filename).Msg("plan unreadable")
		}
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}

	fm, body := splitFrontMatter(string(data))
	title := fm.Title
	if title == "" {
		title = extractTitle(body, filename)
	}

	return &Plan{
		PlanSummary: PlanSummary{
			Filename:  filename,
			Title:     title,
			CreatedAt: formatTime(info.ModTime()),
			Size:      info.Size(),
		},
		Content: body,
	}
}
