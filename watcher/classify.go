package watcher

import (
	"path/filepath"
	"strings"

	"claudeboard/config"
	"claudeboard/notifications"
)

// classify maps a changed path onto its notification topic. The rules run in
// a fixed priority order and the first match wins; a path matching none is
// dropped. The order is load-bearing: a path that could textually match two
// rules (a project directory literally named "tasks" holding a "memory"
// subfolder, say) resolves to the earlier rule.
func classify(path string) (notifications.Topic, bool) {
	p := filepath.ToSlash(path)

	switch {
	case strings.Contains(p, "/plans/"):
		return notifications.TopicPlans, true
	case strings.Contains(p, "/tasks/"):
		return notifications.TopicTasks, true
	case strings.Contains(p, "/todos/"):
		return notifications.TopicTodos, true
	case strings.Contains(p, "/memory/"):
		return notifications.TopicMemory, true
	case filepath.Base(path) == config.StatsCacheFile:
		return notifications.TopicStats, true
	case filepath.Base(path) == config.SessionIndexFile:
		return notifications.TopicSessions, true
	default:
		return "", false
	}
}
