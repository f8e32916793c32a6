package config

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Well-known names inside the artifact tree.
const (
	SessionIndexFile = "sessions-index.json"
	StatsCacheFile   = "stats-cache.json"
	MemoryDirName    = "memory"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port int
	Host string
	Env  string // "development" or "production"

	LogLevel string

	// ClaudeDir is the root of the assistant's on-disk artifacts
	ClaudeDir string
}

// Paths is the fixed set of locations the readers and the watcher operate on.
// All of it lives under ClaudeDir; there is no other data source.
type Paths struct {
	Claude     string
	Plans      string
	Tasks      string
	Todos      string
	Projects   string
	StatsCache string
}

var (
	cfg  *Config
	once sync.Once
)

// Get returns the global configuration (singleton)
func Get() *Config {
	once.Do(func() {
		cfg = load()
	})
	return cfg
}

// load reads configuration from environment variables
func load() *Config {
	claudeDir := getEnv("CLAUDE_DIR", "")
	if claudeDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		claudeDir = filepath.Join(home, ".claude")
	}

	return &Config{
		Port:      getEnvInt("PORT", 3001),
		Host:      getEnv("HOST", "127.0.0.1"),
		Env:       getEnv("ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", ""),
		ClaudeDir: claudeDir,
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

// Paths derives the full path set from ClaudeDir.
func (c *Config) Paths() Paths {
	return Paths{
		Claude:     c.ClaudeDir,
		Plans:      filepath.Join(c.ClaudeDir, "plans"),
		Tasks:      filepath.Join(c.ClaudeDir, "tasks"),
		Todos:      filepath.Join(c.ClaudeDir, "todos"),
		Projects:   filepath.Join(c.ClaudeDir, "projects"),
		StatsCache: filepath.Join(c.ClaudeDir, StatsCacheFile),
	}
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
