// Package app resolves everything the commands share at startup: the
// logger, the settings in effect and the wallpapers folder.
package app

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/walpsel/walpsel/internal/engine"
	"github.com/walpsel/walpsel/internal/logging"
	"github.com/walpsel/walpsel/internal/scanner"
	"github.com/walpsel/walpsel/internal/settings"
)

// Options are the command line overrides. Empty fields keep what the
// settings file (or the defaults) say.
type Options struct {
	// Settings file to read instead of the one under the config directory.
	SettingsFile string
	Folder       string
	Command      string
	LogLevel     string
}

// App is everything resolved at startup and shared by the commands.
type App struct {
	Log          *logrus.Logger
	SettingsFile string
	Settings     settings.Settings
	// Wallpapers folder with ~ and relative paths expanded.
	Folder  string
	Scanner *scanner.Scanner
}

// New resolves home, loads settings (falling back to defaults) and applies
// the overrides. Log output goes to logOut.
//
// The only errors are an invalid log level and a missing home directory;
// a broken settings file is logged and replaced by the defaults.
func New(opts Options, lookup settings.LookupFunc, logOut io.Writer) (*App, error) {
	log, err := logging.New(opts.LogLevel, logOut)
	if err != nil {
		return nil, err
	}

	home, err := settings.ResolveHome(lookup)
	if err != nil {
		return nil, err
	}

	settingsFile := opts.SettingsFile
	if settingsFile == "" {
		settingsFile = settings.ConfigFile(home, lookup)
	}
	s := settings.LoadOrDefault(settingsFile, home, log)

	if opts.Folder != "" {
		s.WallpapersFolderPath = opts.Folder
	}
	if opts.Command != "" {
		s.Command = opts.Command
	}

	a := &App{
		Log:          log,
		SettingsFile: settingsFile,
		Settings:     s,
		Folder:       settings.ExpandPath(home, s.WallpapersFolderPath),
		Scanner:      scanner.New(s.ImageExtensions),
	}
	log.WithFields(logrus.Fields{
		"command": s.Command,
		"folder":  a.Folder,
	}).Debug("Settings resolved")

	return a, nil
}

// NewEngine builds the engine for the command in effect, logging through
// the app's logger. Warns when the command has no placeholder.
func (a *App) NewEngine(opts ...engine.Option) *engine.Engine {
	opts = append([]engine.Option{engine.WithLogger(a.Log)}, opts...)
	eng := engine.New(a.Settings.Command, opts...)
	if !eng.HasPlaceholder() {
		a.Log.WithField("command", eng.String()).Warnf("Command has no %s, the image path will not be passed to it", engine.Placeholder)
	}
	return eng
}

// Images lists the images the picker shows right now.
func (a *App) Images() []string {
	return a.Scanner.ListImages(a.Folder)
}
