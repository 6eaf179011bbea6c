package browser

import (
	"os"
	"path/filepath"
	"runtime"

	ierr "github.com/Aman-CERP/launchindex/internal/errors"
)

// Supported browser source names.
const (
	SourceChrome  = "chrome"
	SourceFirefox = "firefox"
	SourceSafari  = "safari"
	SourceEdge    = "edge"
	SourceBrave   = "brave"
)

// profileDir returns the vendor-specific support-files directory for a
// browser on the current OS. Returns an unsupported-platform error when
// the browser does not exist on this OS.
func profileDir(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ierr.IOError("cannot resolve home directory", err)
	}

	switch name {
	case SourceChrome:
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "Google", "Chrome"), nil
		case "linux":
			return filepath.Join(home, ".config", "google-chrome"), nil
		case "windows":
			return filepath.Join(os.Getenv("LOCALAPPDATA"), "Google", "Chrome", "User Data"), nil
		}
	case SourceEdge:
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "Microsoft Edge"), nil
		case "linux":
			return filepath.Join(home, ".config", "microsoft-edge"), nil
		case "windows":
			return filepath.Join(os.Getenv("LOCALAPPDATA"), "Microsoft", "Edge", "User Data"), nil
		}
	case SourceBrave:
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "BraveSoftware", "Brave-Browser"), nil
		case "linux":
			return filepath.Join(home, ".config", "BraveSoftware", "Brave-Browser"), nil
		case "windows":
			return filepath.Join(os.Getenv("LOCALAPPDATA"), "BraveSoftware", "Brave-Browser", "User Data"), nil
		}
	case SourceFirefox:
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "Firefox"), nil
		case "linux":
			return filepath.Join(home, ".mozilla", "firefox"), nil
		case "windows":
			return filepath.Join(os.Getenv("APPDATA"), "Mozilla", "Firefox"), nil
		}
	case SourceSafari:
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Safari"), nil
		}
		return "", ierr.PlatformError("safari is only available on macOS")
	}

	return "", ierr.PlatformError("no known profile location for " + name + " on " + runtime.GOOS)
}
