// Package janitor handles periodic cleanup of the files the service
// writes as a side effect: greeting audio and ingest snapshots. Both are
// throwaway artifacts that would otherwise accumulate forever.
package janitor

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeswitch-review/internal/config"
)

// Janitor handles periodic cleanup tasks
type Janitor struct {
	config   *config.JanitorConfig
	dirs     []string
	stopChan chan bool
}

// New creates a new janitor covering the given directories
func New(cfg *config.JanitorConfig, dirs ...string) *Janitor {
	return &Janitor{
		config:   cfg,
		dirs:     dirs,
		stopChan: make(chan bool),
	}
}

// Start starts the cleanup loop
func (j *Janitor) Start() {
	if !j.config.Enabled {
		slog.Info("Janitor is disabled")
		return
	}

	slog.Info("Starting janitor",
		"interval", j.config.Interval,
		"max_age", j.config.MaxAge,
		"dirs", j.dirs)

	go j.run()
}

// Stop stops the cleanup loop
func (j *Janitor) Stop() {
	if j.config.Enabled {
		close(j.stopChan)
	}
}

func (j *Janitor) run() {
	ticker := time.NewTicker(j.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.cleanup()
		case <-j.stopChan:
			slog.Info("Janitor stopped")
			return
		}
	}
}

// cleanup removes expired greeting and snapshot files
func (j *Janitor) cleanup() {
	cutoff := time.Now().Add(-j.config.MaxAge)
	removed := 0

	for _, dir := range j.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			slog.Warn("Janitor could not read directory", "dir", dir, "error", err)
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !j.ownsFile(entry.Name()) {
				continue
			}

			info, err := entry.Info()
			if err != nil || info.ModTime().After(cutoff) {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				slog.Warn("Janitor could not remove file", "path", path, "error", err)
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		slog.Info("Janitor removed expired files", "count", removed)
	}
}

// ownsFile reports whether the janitor is allowed to delete a file. Only
// files this service wrote are touched, never anything else that shares
// the directory.
func (j *Janitor) ownsFile(name string) bool {
	return strings.HasPrefix(name, "greeting_") || strings.HasPrefix(name, "ingest_")
}
