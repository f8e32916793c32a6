package store

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	headingRe     = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	headingLineRe = regexp.MustCompile(`(?m)^#+\s+.+$`)
)

// frontMatter is the YAML block some markdown documents open with.
// Only the title is meaningful to us; unknown keys are ignored.
type frontMatter struct {
	Title string `yaml:"title"`
}

// splitFrontMatter separates a leading "---" YAML block from the body.
// Documents without a well-formed block come back unchanged, including ones
// whose block fails to decode as YAML.
func splitFrontMatter(content string) (frontMatter, string) {
	var fm frontMatter
	lines := strings.SplitAfter(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return fm, content
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "---" {
			continue
		}
		block := strings.Join(lines[1:i], "")
		if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
			return frontMatter{}, content
		}
		return fm, strings.Join(lines[i+1:], "")
	}
	return frontMatter{}, content
}

// extractTitle finds the first level-1 heading, falling back to the filename
// without its .md extension.
func extractTitle(body, filename string) string {
	if m := headingRe.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSuffix(filename, ".md")
}

// extractExcerpt strips heading lines and truncates the remainder.
func extractExcerpt(body string, maxLength int) string {
	cleaned := strings.TrimSpace(headingLineRe.ReplaceAllString(body, ""))
	if len(cleaned) <= maxLength {
		return cleaned
	}
	return cleaned[:maxLength] + "..."
}
