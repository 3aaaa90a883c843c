package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestResolveHome(t *testing.T) {
	h, err := ResolveHome(env(map[string]string{"HOME": "/home/u"}))
	require.NoError(t, err)
	assert.Equal(t, "/home/u", h)

	_, err = ResolveHome(env(nil))
	assert.ErrorIs(t, err, ErrNoHome)

	_, err = ResolveHome(env(map[string]string{"HOME": "  "}))
	assert.ErrorIs(t, err, ErrNoHome)
}

func TestConfigFile(t *testing.T) {
	assert.Equal(t, "/home/u/.config/walpsel/settings.yaml", ConfigFile("/home/u", env(nil)))
	assert.Equal(t, "/xdg/walpsel/settings.yaml", ConfigFile("/home/u", env(map[string]string{"XDG_CONFIG_HOME": "/xdg"})))
}

func TestExpandPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"~", "/home/u"},
		{"~/Wallpapers", "/home/u/Wallpapers"},
		{"Pictures/", "/home/u/Pictures"},
		{"", "/home/u"},
		{"/srv/walls/", "/srv/walls"},
		{"/srv/../walls", "/walls"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandPath("/home/u", tt.in), "ExpandPath(%q)", tt.in)
	}
}
