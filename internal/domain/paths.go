package domain

import "path/filepath"

// StorePath returns the path to the local JSON store.
func StorePath(dataDir string) string {
	return filepath.Join(dataDir, "chrct.json")
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "chrct.log")
}

// TaskLogPath returns the path to a task-specific log file.
func TaskLogPath(dataDir, taskID string) string {
	return filepath.Join(dataDir, "logs", "task-"+taskID+".log")
}

// ConfigDir returns the chrct config directory under the user config home.
func ConfigDir(configHome string) string {
	return filepath.Join(configHome, "chrct")
}

// DataDir returns the chrct data directory under the user data home.
func DataDir(dataHome string) string {
	return filepath.Join(dataHome, "chrct")
}
