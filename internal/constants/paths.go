// Package constants contains file and directory names used by sortdl.
package constants

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "sortdl"

	// LogFilename is the default log file name for sortdl.
	LogFilename = "sortdl.log"

	// DatabaseFilename is the move journal database file name.
	DatabaseFilename = "journal.db"

	// LockFilename is held by the watch command while it runs.
	LockFilename = "watch.lock"

	// ConfigFilename is the config file name inside the XDG config directory.
	ConfigFilename = "config.yaml"

	// DownloadsDir is the fallback watched directory name under the home directory.
	DownloadsDir = "Downloads"
)
