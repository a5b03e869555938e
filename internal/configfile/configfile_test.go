package configfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicwall/mosaicwall/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func TestLoadUnparsableJSON(t *testing.T) {
	path := writeConfig(t, "{not json")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func TestLoadTooManyMonitors(t *testing.T) {
	body := `{"monitor": [` +
		`{"wallpaper":{}},{"wallpaper":{}},{"wallpaper":{}},{"wallpaper":{}},` +
		`{"wallpaper":{}},{"wallpaper":{}},{"wallpaper":{}},{"wallpaper":{}},{"wallpaper":{}}]}`
	path := writeConfig(t, body)
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func TestLoadUnknownStyle(t *testing.T) {
	body := `{"monitor": [{"wallpaper":{"style":"bogus"}}]}`
	path := writeConfig(t, body)
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func TestLoadFullySpecified(t *testing.T) {
	body := `{
		"monitor": [
			{
				"wallpaper": {
					"auto_rotate": true,
					"style": "tile",
					"bg_color": "#112233",
					"source": {
						"landscape_0": "/a.png",
						"portrait_90": "/b.png"
					}
				}
			}
		],
		"settings": {
			"output_format": "png",
			"workdir": "/tmp/mosaicwall"
		}
	}`
	path := writeConfig(t, body)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "png", cfg.OutputFormat)
	assert.Equal(t, "/tmp/mosaicwall", cfg.WorkDir)
	require.Len(t, cfg.Wallpapers, 1)

	w := cfg.Wallpapers[0]
	assert.True(t, w.AutoRotate)
	assert.Equal(t, model.StyleTile, w.Style)
	assert.Equal(t, "#112233", w.BgColor)
	assert.Equal(t, "/a.png", w.Files[model.Orient0])
	assert.Equal(t, "/b.png", w.Files[model.Orient90])
	assert.Equal(t, "", w.Files[model.Orient180])
}

func TestLoadDefaultsWhenFieldsOmitted(t *testing.T) {
	path := writeConfig(t, `{"monitor": [{"wallpaper": {}}]}`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bmp", cfg.OutputFormat)
	assert.Equal(t, ".", cfg.WorkDir)
	assert.Equal(t, model.StyleFitNoCut, cfg.Wallpapers[0].Style)
	assert.Equal(t, "#000000", cfg.Wallpapers[0].BgColor)
}
