//go:build darwin

package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"time"

	"github.com/mosaicwall/mosaicwall/internal/model"
)

type darwinOS struct{}

func newOS() OS { return &darwinOS{} }

type spDisplay struct {
	Name       string `json:"_name"`
	Resolution string `json:"_spdisplays_pixels"`
	Main       string `json:"spdisplays_main"`
}

type spGPU struct {
	Displays []spDisplay `json:"spdisplays_ndrvs"`
}

type spDataType struct {
	GPUs []spGPU `json:"SPDisplaysDataType"`
}

var resolutionRegex = regexp.MustCompile(`(\d+)\s*x\s*(\d+)`)

// Displays shells out to system_profiler the same way the teacher's
// macOS backend does, parsing the JSON report for each GPU's displays.
// system_profiler does not report per-display origin or rotation, so
// every display is placed left-to-right in report order at Orient0;
// the driver's layout package still unions them into a coherent virtual
// desktop even though the x/y values are synthetic. The first display
// reporting spdisplays_main is primary; if none does, the first display is.
func (d *darwinOS) Displays() ([]model.Info, error) {
	out, err := exec.Command("system_profiler", "SPDisplaysDataType", "-json").Output()
	if err != nil {
		return nil, fmt.Errorf("platform: system_profiler: %w", err)
	}

	var data spDataType
	if err := json.Unmarshal(out, &data); err != nil {
		return nil, fmt.Errorf("platform: parse system_profiler output: %w", err)
	}

	var infos []model.Info
	primarySeen := false
	x := 0
	for _, gpu := range data.GPUs {
		for _, disp := range gpu.Displays {
			m := resolutionRegex.FindStringSubmatch(disp.Resolution)
			if len(m) < 3 {
				continue
			}
			w, _ := strconv.Atoi(m[1])
			h, _ := strconv.Atoi(m[2])

			primary := disp.Main == "spdisplays_yes" && !primarySeen
			if primary {
				primarySeen = true
			}

			infos = append(infos, model.Info{
				X:           x,
				Y:           0,
				Width:       w,
				Height:      h,
				Orientation: model.Orient0,
				IsPrimary:   primary,
			})
			x += w
		}
	}

	if len(infos) == 0 {
		return nil, fmt.Errorf("platform: no displays found in system_profiler output")
	}
	if !primarySeen {
		infos[0].IsPrimary = true
	}
	return infos, nil
}

// InstallWallpaper drives System Events over AppleScript, as the
// teacher's macOS backend does, but targets every desktop since the
// compositor produces one image meant to span them all.
func (d *darwinOS) InstallWallpaper(imagePath string) error {
	script := fmt.Sprintf(`
		tell application "System Events"
			set theDesktops to every desktop
			repeat with d in theDesktops
				set picture of d to "%s"
			end repeat
		end tell
	`, imagePath)

	out, err := exec.Command("osascript", "-e", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("platform: osascript failed: %w, output: %s", err, string(out))
	}
	return nil
}

// WatchDisplayChanges polls Displays on an interval: macOS exposes
// display reconfiguration via the CoreGraphics callback API, which is
// not reachable from cgo-free Go, so this uses the same periodic-check
// style the teacher's nightly refresh loop uses instead.
func (d *darwinOS) WatchDisplayChanges(ctx context.Context, fn func()) error {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	last, _ := d.Displays()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			cur, err := d.Displays()
			if err != nil {
				continue
			}
			if !sameDisplays(last, cur) {
				last = cur
				fn()
			}
		}
	}
}

func sameDisplays(a, b []model.Info) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
