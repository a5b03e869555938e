// Package platform abstracts the OS-specific halves of the compositor:
// enumerating monitor geometry/orientation, installing the composed
// canvas as the desktop wallpaper, and notifying the driver when the
// display configuration changes.
package platform

import (
	"context"

	"github.com/mosaicwall/mosaicwall/internal/model"
)

// OS is implemented once per target platform (linux.go, windows.go,
// darwin.go, selected by build tag).
type OS interface {
	// Displays enumerates the currently connected monitors with their
	// platform geometry and orientation. Active is always true for an
	// entry returned here; mirror-driver/duplicate outputs are excluded
	// by the platform layer before returning.
	Displays() ([]model.Info, error)

	// InstallWallpaper sets imagePath as the desktop wallpaper spanning
	// the full virtual desktop.
	InstallWallpaper(imagePath string) error

	// WatchDisplayChanges invokes fn every time the display
	// configuration changes (monitor plugged/unplugged, resolution or
	// orientation changed), until ctx is canceled. It blocks.
	WatchDisplayChanges(ctx context.Context, fn func()) error
}

// New returns the OS implementation for the running platform.
func New() OS {
	return newOS()
}
