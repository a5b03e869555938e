// Package configfile loads and validates the JSON configuration file
// described in spec.md §6: a per-monitor wallpaper configuration array
// (index-bound to the platform's display enumeration order) plus a
// settings block for output format and working directory.
package configfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mosaicwall/mosaicwall/config"
	"github.com/mosaicwall/mosaicwall/internal/model"
)

// ErrConfigInvalid wraps any reason the config file failed to load or
// validate: missing file, unparsable JSON, or a schema violation.
var ErrConfigInvalid = errors.New("configfile: invalid configuration")

// sourceSlots names the four orientation keys accepted under
// monitor[].wallpaper.source in the JSON schema.
var sourceSlots = [4]string{"landscape_0", "portrait_90", "landscape_180", "portrait_270"}

// wallpaperJSON mirrors one monitor entry's "wallpaper" object.
type wallpaperJSON struct {
	AutoRotate bool              `json:"auto_rotate"`
	Style      string            `json:"style"`
	BgColor    string            `json:"bg_color"`
	Source     map[string]string `json:"source"`
}

type monitorJSON struct {
	Wallpaper wallpaperJSON `json:"wallpaper"`
}

type settingsJSON struct {
	OutputFormat string `json:"output_format"`
	WorkDir      string `json:"workdir"`
}

type fileJSON struct {
	Monitor  []monitorJSON `json:"monitor"`
	Settings settingsJSON  `json:"settings"`
}

// Config is the parsed, validated configuration: one Wallpaper entry per
// configured monitor slot (array index binds to display enumeration
// index, per spec.md §6) plus the process-wide output settings.
type Config struct {
	Wallpapers   []model.Wallpaper
	OutputFormat string
	WorkDir      string
}

// Load reads and validates the JSON config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: reading %q: %v", ErrConfigInvalid, path, err)
	}

	var raw fileJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("%w: parsing %q: %v", ErrConfigInvalid, path, err)
	}

	if len(raw.Monitor) > config.MaxMonitors {
		return Config{}, fmt.Errorf("%w: %d monitor entries exceeds the maximum of %d", ErrConfigInvalid, len(raw.Monitor), config.MaxMonitors)
	}

	wallpapers := make([]model.Wallpaper, len(raw.Monitor))
	for i, m := range raw.Monitor {
		w, err := parseWallpaper(m.Wallpaper)
		if err != nil {
			return Config{}, fmt.Errorf("%w: monitor[%d]: %v", ErrConfigInvalid, i, err)
		}
		wallpapers[i] = w
	}

	outputFormat := raw.Settings.OutputFormat
	if outputFormat == "" {
		outputFormat = config.DefaultOutputFormat
	}
	switch outputFormat {
	case "bmp", "png", "jpg", "jpeg":
	default:
		return Config{}, fmt.Errorf("%w: unsupported output_format %q", ErrConfigInvalid, outputFormat)
	}

	workDir := raw.Settings.WorkDir
	if workDir == "" {
		workDir = "."
	}

	return Config{Wallpapers: wallpapers, OutputFormat: outputFormat, WorkDir: workDir}, nil
}

func parseWallpaper(w wallpaperJSON) (model.Wallpaper, error) {
	bgColor := w.BgColor
	if bgColor == "" {
		bgColor = config.DefaultBackgroundColor
	}

	style := model.StyleFitNoCut
	if w.Style != "" {
		s, ok := model.ParseStyle(w.Style)
		if !ok {
			return model.Wallpaper{}, fmt.Errorf("unrecognized style %q", w.Style)
		}
		style = s
	}

	for key := range w.Source {
		known := false
		for _, slot := range sourceSlots {
			if key == slot {
				known = true
				break
			}
		}
		if !known {
			return model.Wallpaper{}, fmt.Errorf("unrecognized source key %q", key)
		}
	}

	var files [4]string
	for slot, key := range sourceSlots {
		files[slot] = w.Source[key]
	}

	return model.Wallpaper{
		AutoRotate: w.AutoRotate,
		Style:      style,
		BgColor:    bgColor,
		Files:      files,
	}, nil
}
