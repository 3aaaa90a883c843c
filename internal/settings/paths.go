package settings

import (
	"path/filepath"
	"strings"
)

// Location of the settings file, relative to the config directory.
const settingsFile = "walpsel/settings.yaml"

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ResolveHome returns the user's home directory from HOME.
// This is the only place the environment is consulted for it.
func ResolveHome(lookup LookupFunc) (string, error) {
	home, ok := lookup("HOME")
	if !ok || strings.TrimSpace(home) == "" {
		return "", ErrNoHome
	}
	return home, nil
}

// ConfigFile returns the settings file path, honouring XDG_CONFIG_HOME.
func ConfigFile(home string, lookup LookupFunc) string {
	configDir, ok := lookup("XDG_CONFIG_HOME")
	if !ok || configDir == "" {
		configDir = filepath.Join(home, ".config")
	}

	return filepath.Join(configDir, settingsFile)
}

// ExpandPath resolves a folder from the settings file against home.
// In the settings file users can write ~ or a path relative to home.
func ExpandPath(home string, pathString string) string {
	switch {
	case pathString == "~":
		return home
	case strings.HasPrefix(pathString, "~/"):
		return filepath.Join(home, pathString[2:])
	case pathString == "":
		return home
	case !filepath.IsAbs(pathString):
		return filepath.Join(home, pathString)
	}

	return filepath.Clean(pathString)
}
