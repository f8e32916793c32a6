package store

import (
	"os"
	"path/filepath"
	"sort"

	"claudeboard/config"
	"claudeboard/log"
)

// MemoryFileSummary describes one markdown note in a project's memory
// directory.
type MemoryFileSummary struct {
	Filename    string `json:"filename"`
	Title       string `json:"title"`
	ProjectDir  string `json:"projectDir"`
	ProjectPath string `json:"projectPath"`
	Size        int64  `json:"size"`
	ModifiedAt  string `json:"modifiedAt"`
	Excerpt     string `json:"excerpt"`
}

// MemoryFileDetail is a summary plus the full note content.
type MemoryFileDetail struct {
	MemoryFileSummary
	Content string `json:"content"`
}

// MemoryProject groups a project's memory files. Within a project the file
// named exactly MEMORY.md sorts first; the rest are alphabetical.
type MemoryProject struct {
	ProjectDir   string              `json:"projectDir"`
	ProjectPath  string              `json:"projectPath"`
	ProjectName  string              `json:"projectName"`
	Files        []MemoryFileSummary `json:"files"`
	TotalSize    int64               `json:"totalSize"`
	LastModified string              `json:"lastModified"`
}

const memoryExcerptLength = 200

// ListMemoryProjects returns one group per project that has at least one
// memory file, most recently modified project first.
func (s *Store) ListMemoryProjects() []MemoryProject {
	projects := []MemoryProject{}

	dirs, err := os.ReadDir(s.paths.Projects)
	if err != nil {
		log.Debug().Err(err).Str("dir", s.paths.Projects).Msg("projects directory unreadable")
		return projects
	}

	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		if project := s.memoryProject(dir.Name()); project != nil {
			projects = append(projects, *project)
		}
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].LastModified > projects[j].LastModified
	})
	return projects
}

func (s *Store) memoryProject(projectDir string) *MemoryProject {
	memoryDir := filepath.Join(s.paths.Projects, projectDir, config.MemoryDirName)
	entries, err := os.ReadDir(memoryDir)
	if err != nil {
		return nil
	}

	originalPath := s.projectOriginalPath(projectDir)

	var files []MemoryFileSummary
	var totalSize int64
	lastModified := ""

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(memoryDir, entry.Name()))
		if err != nil {
			log.Debug().Err(err).Str("file", entry.Name()).Msg("memory file unreadable")
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		_, body := splitFrontMatter(string(data))
		modified := formatTime(info.ModTime())
		files = append(files, MemoryFileSummary{
			Filename:    entry.Name(),
			Title:       extractTitle(body, entry.Name()),
			ProjectDir:  projectDir,
			ProjectPath: originalPath,
			Size:        info.Size(),
			ModifiedAt:  modified,
			Excerpt:     extractExcerpt(body, memoryExcerptLength),
		})
		totalSize += info.Size()
		if modified > lastModified {
			lastModified = modified
		}
	}

	if len(files) == 0 {
		return nil
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Filename == "MEMORY.md" {
			return files[j].Filename != "MEMORY.md"
		}
		if files[j].Filename == "MEMORY.md" {
			return false
		}
		return files[i].Filename < files[j].Filename
	})

	return &MemoryProject{
		ProjectDir:   projectDir,
		ProjectPath:  originalPath,
		ProjectName:  lastPathSegment(originalPath),
		Files:        files,
		TotalSize:    totalSize,
		LastModified: lastModified,
	}
}

// GetMemoryFile returns one memory note, or nil when the file is missing or
// either path segment escapes the projects root.
func (s *Store) GetMemoryFile(projectDir, filename string) *MemoryFileDetail {
	path, ok := resolveWithin(s.paths.Projects, projectDir, config.MemoryDirName, filename)
	if !ok {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}

	originalPath := s.projectOriginalPath(projectDir)
	_, body := splitFrontMatter(string(data))

	return &MemoryFileDetail{
		MemoryFileSummary: MemoryFileSummary{
			Filename:    filename,
			Title:       extractTitle(body, filename),
			ProjectDir:  projectDir,
			ProjectPath: originalPath,
			Size:        info.Size(),
			ModifiedAt:  formatTime(info.ModTime()),
			Excerpt:     extractExcerpt(body, memoryExcerptLength),
		},
		Content: string(data),
	}
}

// projectOriginalPath reads the human-readable project path from the
// project's session index, falling back to the encoded directory name.
func (s *Store) projectOriginalPath(projectDir string) string {
	idx, err := readSessionIndex(filepath.Join(s.paths.Projects, projectDir, config.SessionIndexFile))
	if err != nil {
		return projectDir
	}
	if idx.OriginalPath != "" {
		return idx.OriginalPath
	}
	for _, entry := range idx.Entries {
		if entry.ProjectPath != "" {
			return entry.ProjectPath
		}
	}
	return projectDir
}
