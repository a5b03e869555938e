// Package driver is the single entry point described in spec.md §4.D: on
// every display-change notification it refreshes monitor descriptors,
// runs layout, per-monitor rendering, and composition, then hands the
// output file to the platform's wallpaper-install collaborator.
//
// Scheduling follows spec.md §5: one goroutine owns Update end to end, a
// rate.Limiter debounces bursts of display-change events the same way
// the teacher's wallpaper rotation ticker coalesces repeated pulses, and
// cycles are never interrupted mid-flight.
package driver

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"sync"

	"golang.org/x/time/rate"

	"github.com/mosaicwall/mosaicwall/config"
	"github.com/mosaicwall/mosaicwall/internal/canvas"
	"github.com/mosaicwall/mosaicwall/internal/configfile"
	"github.com/mosaicwall/mosaicwall/internal/geom"
	"github.com/mosaicwall/mosaicwall/internal/layout"
	"github.com/mosaicwall/mosaicwall/internal/model"
	"github.com/mosaicwall/mosaicwall/internal/platform"
	"github.com/mosaicwall/mosaicwall/internal/render"
	"github.com/mosaicwall/mosaicwall/util"
	"github.com/mosaicwall/mosaicwall/util/log"
)

// ErrInstallFailed wraps a wallpaper-install collaborator refusal.
var ErrInstallFailed = errors.New("driver: wallpaper install failed")

// ErrWriteFailed wraps a canvas encode/atomic-write failure.
var ErrWriteFailed = errors.New("driver: canvas write failed")

// Driver owns one update cycle at a time. It is safe to call Update
// concurrently; calls serialize on mu, matching the single-threaded
// cooperative event loop spec.md §5 requires.
type Driver struct {
	os      platform.OS
	cfg     configfile.Config
	limiter *rate.Limiter

	mu      sync.Mutex
	running util.SafeFlag
	cycles  util.SafeCounter
}

// New builds a Driver for the given platform collaborator and loaded
// configuration. The limiter allows one burst immediately and then
// coalesces further events to at most one per debounce period, the same
// shape as the teacher's periodic-refresh ticker but event-triggered
// instead of time-triggered.
func New(os platform.OS, cfg configfile.Config, debounce rate.Limit) *Driver {
	return &Driver{
		os:      os,
		cfg:     cfg,
		limiter: rate.NewLimiter(debounce, 1),
	}
}

// Cycles returns the number of completed Update cycles, successful or
// not. Safe to call concurrently with Update: it is backed by an
// atomic counter rather than d.mu, so a caller can poll progress while
// a cycle is still running.
func (d *Driver) Cycles() int {
	return d.cycles.Value()
}

// Running reports whether a cycle is currently in flight. Safe to call
// concurrently with Update without blocking on d.mu, so a caller (the
// CLI's signal handler, a future status endpoint) can tell an
// in-progress cycle apart from one merely queued behind the lock.
func (d *Driver) Running() bool {
	return d.running.Value()
}

// Update runs exactly one compositor cycle: spec.md §4.D's three steps.
// Errors are logged and the cycle abandoned; the previously installed
// wallpaper is left in place on every failure path.
func (d *Driver) Update(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.limiter.Allow() {
		log.Debug("driver: update suppressed by debounce")
		return nil
	}

	d.running.Set(true)
	defer func() {
		d.running.Set(false)
		d.cycles.Increment()
	}()

	infos, err := d.os.Displays()
	if err != nil {
		log.Printf("driver: display enumeration failed: %v", err)
		return err
	}

	monitors := d.buildMonitors(infos)

	desktop := layout.ComputeVirtualDesktop(monitors)
	desktop, err = layout.Rebase(monitors, desktop)
	if err != nil {
		log.Printf("driver: %v; skipping cycle", err)
		return nil
	}

	placements := renderMonitors(monitors)

	// spec.md §4.C allocates the whole-desktop canvas filled with a fixed
	// #000000, regardless of any monitor's configured bg_color: that
	// color is a per-monitor pad color consumed inside internal/style for
	// FIT_NO_CUT/CENTER, not a canvas-wide fill.
	composed := canvas.Compose(desktop, color.Black, placements)

	outPath, err := d.outputPath()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := canvas.WriteAtomic(outPath, composed, d.cfg.OutputFormat); err != nil {
		log.Printf("driver: writing canvas failed: %v", err)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	if err := d.os.InstallWallpaper(outPath); err != nil {
		log.Printf("driver: wallpaper install failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInstallFailed, err)
	}

	log.Printf("driver: cycle %d complete, %d monitor(s), canvas %dx%d", d.cycles.Value()+1, len(monitors), desktop.Width, desktop.Height)
	return nil
}

// buildMonitors zips platform-reported Info with the matching
// configured Wallpaper by array index (spec.md §6: "array index binds
// to display enumeration index"). A display with no matching config
// entry renders with a zero-value Wallpaper, which produces NoOutput.
func (d *Driver) buildMonitors(infos []model.Info) []model.Monitor {
	monitors := make([]model.Monitor, len(infos))
	for i, info := range infos {
		var wp model.Wallpaper
		if i < len(d.cfg.Wallpapers) {
			wp = d.cfg.Wallpapers[i]
		}
		monitors[i] = model.Monitor{
			Active:    true,
			Info:      info,
			Wallpaper: wp,
		}
	}
	return monitors
}

// renderMonitors renders every monitor in ascending index order (spec.md
// §5's determinism guarantee) and returns only the monitors that
// produced a tile; NoOutput monitors simply leave their canvas region
// showing background color.
func renderMonitors(monitors []model.Monitor) []canvas.Placement {
	var placements []canvas.Placement
	for i, m := range monitors {
		tile, err := render.Monitor(m)
		if err != nil {
			if !errors.Is(err, render.ErrNoOutput) && !errors.Is(err, render.ErrBadOrientation) {
				log.Printf("driver: monitor %d render failed: %v", i, err)
			}
			continue
		}
		placements = append(placements, canvas.Placement{
			Index:   i,
			VirtPos: geom.Rect{X: m.VirtPos.X, Y: m.VirtPos.Y},
			Tile:    tile,
		})
	}
	return placements
}

func (d *Driver) outputPath() (string, error) {
	name := fmt.Sprintf("%s.%s", config.OutputFileName, d.cfg.OutputFormat)
	abs, err := filepath.Abs(filepath.Join(d.cfg.WorkDir, name))
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	return abs, nil
}
