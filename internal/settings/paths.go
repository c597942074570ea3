package settings

import (
	"os"
	"path/filepath"
	"runtime"

	"muserc/internal/domain"
)

const (
	unixFileName    = ".muserc"
	windowsDirName  = "muserc"
	windowsFileName = "muserc-settings.xml"
)

// DefaultPath returns the platform default settings file location: a dotfile
// in the home directory on Unix-like systems, an application-data file on
// Windows.
func DefaultPath() (string, error) {
	if runtime.GOOS == "windows" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(base, windowsDirName, windowsFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, unixFileName), nil
}

// scratchDir resolves the directory for temporary render output: the
// directoryScratch preference when it names an existing directory, otherwise
// the OS temp dir.
func scratchDir(values Values) string {
	scratch := values.Value(domain.KeyDirectoryScratch)
	if scratch != "" {
		if info, err := os.Stat(scratch); err == nil && info.IsDir() {
			return scratch
		}
	}
	return os.TempDir()
}
