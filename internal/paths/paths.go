// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
)

const (
	appName = "scribe"

	// ProjectConfig is the project-local config file, checked before the
	// user config.
	ProjectConfig = ".scribe/config.yaml"

	// DefaultLogFile is used when SCRIBE_LOG is unset.
	DefaultLogFile = "debug.log"
)

// UserConfigDir returns ~/.config/scribe, or "" when the home directory is
// unknown.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// LogPath returns the debug log location from SCRIBE_LOG, falling back to
// DefaultLogFile.
func LogPath() string {
	if p := os.Getenv("SCRIBE_LOG"); p != "" {
		return p
	}
	return DefaultLogFile
}

// DebugEnabled reports whether SCRIBE_DEBUG is set.
func DebugEnabled() bool {
	return os.Getenv("SCRIBE_DEBUG") != ""
}

// ResolveFile cleans a file argument and makes it absolute. An empty path
// stays empty and denotes an unnamed buffer.
//
//   - "notes.txt"      -> "<cwd>/notes.txt"
//   - "~/notes.txt"    -> "<home>/notes.txt"
//   - "/tmp/../a.txt"  -> "/a.txt"
func ResolveFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return filepath.Abs(path)
}
