package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	programName = "cruxfile"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the directory for runtime files (sockets, PIDs).
//
//	Linux:   $XDG_RUNTIME_DIR/cruxfile or /run/user/<uid>/cruxfile
//	macOS:   ~/Library/Caches/cruxfile/run
func Runtime() string {
	if xdg.RuntimeDir != "" {
		return filepath.Join(xdg.RuntimeDir, programName)
	}
	return filepath.Join(xdg.CacheHome, programName, "run")
}

// Default path to the Unix domain socket for client-to-daemon communication.
//
//	Linux:   $XDG_RUNTIME_DIR/cruxfile/cruxfile.sock
//	macOS:   ~/Library/Caches/cruxfile/run/cruxfile.sock
func Socket() string {
	return filepath.Join(Runtime(), "cruxfile.sock")
}

// Default path to the PID file.
//
//	Linux:   $XDG_RUNTIME_DIR/cruxfile/cruxfile.pid
//	macOS:   ~/Library/Caches/cruxfile/run/cruxfile.pid
func PIDFile() string {
	return filepath.Join(Runtime(), "cruxfile.pid")
}

// Path to the JSON configuration file read by the CLI.
//
//	Linux:   $XDG_CONFIG_HOME/cruxfile/config.json
//	macOS:   ~/Library/Application Support/cruxfile/config.json
func ConfigFile() string {
	return filepath.Join(xdg.ConfigHome, programName, "config.json")
}
