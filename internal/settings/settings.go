package settings

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"github.com/walpsel/walpsel/internal/scanner"
	"gopkg.in/yaml.v3"
)

// Command used when the settings file does not provide one.
// The selected image's path is inserted in place of ${FILE_PATH}.
const DefaultCommand = "swww img ${FILE_PATH}"

// Wallpapers folder used when the settings file does not provide one, relative to home.
const DefaultWallpapersFolder = "Pictures/"

// Settings holds the values loaded once at startup.
type Settings struct {
	// Command run when a wallpaper is picked.
	Command string
	// Folder scanned for wallpaper images.
	WallpapersFolderPath string
	// Lower-cased extensions, without the leading dot.
	ImageExtensions []string
}

// Default returns the built-in settings. It performs no I/O.
func Default(home string) Settings {
	return Settings{
		Command:              DefaultCommand,
		WallpapersFolderPath: defaultWallpapersFolder(home),
		ImageExtensions:      append([]string(nil), scanner.DefaultExtensions...),
	}
}

func defaultWallpapersFolder(home string) string {
	return strings.TrimSuffix(home, "/") + "/" + DefaultWallpapersFolder
}

// Load reads the settings document at path. Documents ending in .toml are
// parsed as TOML, anything else as YAML.
//
// Each key falls back to its default independently when it is missing or
// has the wrong type. A *ReadError is returned when the file cannot be
// read and a *ParseError when the document is malformed.
func Load(path string, home string) (Settings, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, &ReadError{Path: path, Err: err}
	}

	doc, err := decode(path, content)
	if err != nil {
		return Settings{}, &ParseError{Path: path, Err: err}
	}

	s := Default(home)
	if v, ok := doc["command"].(string); ok {
		s.Command = v
	}
	if v, ok := doc["wallpapers_folder_path"].(string); ok {
		s.WallpapersFolderPath = v
	}
	if exts := normalizeExtensions(doc["image_extensions"]); len(exts) > 0 {
		s.ImageExtensions = exts
	}

	return s, nil
}

// LoadOrDefault is the one place where settings errors are swallowed.
// A missing file is expected and only logged at debug level.
func LoadOrDefault(path string, home string, log logrus.FieldLogger) Settings {
	s, err := Load(path, home)
	if err == nil {
		log.WithField("path", path).Info("Settings loaded")
		return s
	}

	entry := log.WithField("path", path).WithError(err)
	if errors.Is(err, fs.ErrNotExist) {
		entry.Debug("No settings file, using defaults")
	} else {
		entry.Warn("Failed to load settings, using defaults")
	}
	return Default(home)
}

func decode(path string, content []byte) (map[string]interface{}, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		doc := map[string]interface{}{}
		if err := toml.Unmarshal(content, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	}

	var raw interface{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, err
	}

	// a scalar or list at the top level is valid YAML but carries no keys
	doc := map[string]interface{}{}
	switch m := raw.(type) {
	case map[string]interface{}:
		doc = m
	case map[interface{}]interface{}:
		// mappings with non-string keys, such as 1: x
		for k, v := range m {
			if key, ok := k.(string); ok {
				doc[key] = v
			}
		}
	}
	return doc, nil
}

func normalizeExtensions(v interface{}) []string {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}

	exts := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
		if s != "" {
			exts = append(exts, s)
		}
	}
	return exts
}
