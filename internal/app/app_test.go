package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walpsel/walpsel/internal/engine"
	"github.com/walpsel/walpsel/internal/settings"
)

func env(vars map[string]string) settings.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNew(t *testing.T) {
	home := t.TempDir()
	xdg := t.TempDir()
	writeFile(t, filepath.Join(home, ".config", "walpsel", "settings.yaml"),
		"command: feh --bg-fill ${FILE_PATH}\nwallpapers_folder_path: ~/walls\nimage_extensions: [webp]\n")
	writeFile(t, filepath.Join(xdg, "walpsel", "settings.yaml"), "wallpapers_folder_path: xdg-walls\n")
	explicit := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, explicit, "command = \"swaybg -i ${FILE_PATH}\"\n")

	tests := []struct {
		name             string
		opts             Options
		vars             map[string]string
		wantSettingsFile string
		wantCommand      string
		wantFolder       string
		wantExtensions   []string
	}{
		{
			name:             "settings from the home config dir",
			vars:             map[string]string{"HOME": home},
			wantSettingsFile: filepath.Join(home, ".config", "walpsel", "settings.yaml"),
			wantCommand:      "feh --bg-fill ${FILE_PATH}",
			wantFolder:       filepath.Join(home, "walls"),
			wantExtensions:   []string{"webp"},
		},
		{
			name:             "XDG_CONFIG_HOME wins",
			vars:             map[string]string{"HOME": home, "XDG_CONFIG_HOME": xdg},
			wantSettingsFile: filepath.Join(xdg, "walpsel", "settings.yaml"),
			wantCommand:      settings.DefaultCommand,
			wantFolder:       filepath.Join(home, "xdg-walls"),
			wantExtensions:   []string{"jpg", "jpeg", "png", "bmp", "gif"},
		},
		{
			name:             "explicit settings file",
			opts:             Options{SettingsFile: explicit},
			vars:             map[string]string{"HOME": home},
			wantSettingsFile: explicit,
			wantCommand:      "swaybg -i ${FILE_PATH}",
			wantFolder:       filepath.Join(home, "Pictures"),
			wantExtensions:   []string{"jpg", "jpeg", "png", "bmp", "gif"},
		},
		{
			name:             "missing settings file uses defaults",
			opts:             Options{SettingsFile: filepath.Join(home, "nope.yaml")},
			vars:             map[string]string{"HOME": home},
			wantSettingsFile: filepath.Join(home, "nope.yaml"),
			wantCommand:      settings.DefaultCommand,
			wantFolder:       filepath.Join(home, "Pictures"),
			wantExtensions:   []string{"jpg", "jpeg", "png", "bmp", "gif"},
		},
		{
			name:             "overrides replace loaded values",
			opts:             Options{Folder: "~/other", Command: "swww img --transition-type wipe ${FILE_PATH}"},
			vars:             map[string]string{"HOME": home},
			wantSettingsFile: filepath.Join(home, ".config", "walpsel", "settings.yaml"),
			wantCommand:      "swww img --transition-type wipe ${FILE_PATH}",
			wantFolder:       filepath.Join(home, "other"),
			wantExtensions:   []string{"webp"},
		},
		{
			name:             "absolute folder override",
			opts:             Options{Folder: "/srv/walls/"},
			vars:             map[string]string{"HOME": home},
			wantSettingsFile: filepath.Join(home, ".config", "walpsel", "settings.yaml"),
			wantCommand:      "feh --bg-fill ${FILE_PATH}",
			wantFolder:       "/srv/walls",
			wantExtensions:   []string{"webp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			a, err := New(tt.opts, env(tt.vars), &logs)
			require.NoError(t, err)

			assert.Equal(t, tt.wantSettingsFile, a.SettingsFile)
			assert.Equal(t, tt.wantCommand, a.Settings.Command)
			assert.Equal(t, tt.wantFolder, a.Folder)
			assert.Equal(t, tt.wantExtensions, a.Settings.ImageExtensions)
		})
	}
}

func TestNewBrokenSettingsFile(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "settings.yaml")
	writeFile(t, path, "command: [unterminated\n")

	var logs bytes.Buffer
	a, err := New(Options{SettingsFile: path}, env(map[string]string{"HOME": home}), &logs)
	require.NoError(t, err)
	assert.Equal(t, settings.Default(home), a.Settings)
	assert.Contains(t, logs.String(), "Failed to load settings")
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		vars map[string]string
		is   error
	}{
		{"HOME unset", Options{}, map[string]string{}, settings.ErrNoHome},
		{"HOME empty", Options{}, map[string]string{"HOME": " "}, settings.ErrNoHome},
		{"invalid log level", Options{LogLevel: "loud"}, map[string]string{"HOME": "/home/u"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.opts, env(tt.vars), &bytes.Buffer{})
			require.Error(t, err)
			assert.Nil(t, a)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestNewEngine(t *testing.T) {
	home := t.TempDir()

	var logs bytes.Buffer
	a, err := New(Options{SettingsFile: filepath.Join(home, "none.yaml"), Command: "feh --bg-fill"}, env(map[string]string{"HOME": home}), &logs)
	require.NoError(t, err)

	eng := a.NewEngine()
	assert.Equal(t, "feh --bg-fill", eng.String())
	assert.Contains(t, logs.String(), "Command has no "+engine.Placeholder)

	logs.Reset()
	a.Settings.Command = settings.DefaultCommand
	assert.True(t, a.NewEngine().HasPlaceholder())
	assert.NotContains(t, logs.String(), "Command has no")
}

func TestImages(t *testing.T) {
	home := t.TempDir()
	walls := filepath.Join(home, "Pictures")
	writeFile(t, filepath.Join(walls, "a.png"), "x")
	writeFile(t, filepath.Join(walls, "notes.txt"), "x")

	a, err := New(Options{SettingsFile: filepath.Join(home, "none.yaml")}, env(map[string]string{"HOME": home}), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(walls, "a.png")}, a.Images())
}
