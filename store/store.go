// Package store reads the assistant's on-disk artifacts and turns them into
// typed summaries. Every call re-scans the filesystem: the assistant process
// is the only writer and this server only reads, so there is no cache to go
// stale and no locking to get wrong. A missing or unreadable file is "no
// data", never an error.
package store

import (
	"path/filepath"
	"strings"
	"time"

	"claudeboard/config"
)

// Store is the read-only access layer over the artifact tree.
type Store struct {
	paths config.Paths
}

// New creates a store over the given path set.
func New(paths config.Paths) *Store {
	return &Store{paths: paths}
}

// resolveWithin joins parts onto root and rejects results that escape it.
// Callers treat a rejected path exactly like a missing file, so traversal
// probes cannot distinguish "blocked" from "not there".
func resolveWithin(root string, parts ...string) (string, bool) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}
	absPath, err := filepath.Abs(filepath.Join(append([]string{root}, parts...)...))
	if err != nil {
		return "", false
	}
	if absPath != absRoot && !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return "", false
	}
	return absPath, true
}

// parseTime reads an RFC 3339 timestamp, tolerating fractional seconds.
// Zero time for anything unparseable; callers only use it for ordering.
func parseTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// formatTime renders timestamps the way the index files carry them.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// lastPathSegment returns the final "/"-delimited segment of a recorded
// project path. Recorded paths always use forward slashes regardless of the
// host platform, so this is not filepath.Base.
func lastPathSegment(p string) string {
	if p == "" {
		return ""
	}
	parts := strings.Split(p, "/")
	return parts[len(parts)-1]
}
