//go:build windows

package platform

import (
	"context"
	"fmt"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows/registry"

	"github.com/mosaicwall/mosaicwall/internal/model"
)

var (
	modUser32                  = syscall.NewLazyDLL("user32.dll")
	procEnumDisplayMonitors    = modUser32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW        = modUser32.NewProc("GetMonitorInfoW")
	procEnumDisplaySettingsExW = modUser32.NewProc("EnumDisplaySettingsExW")
	procSystemParametersInfoW  = modUser32.NewProc("SystemParametersInfoW")
)

const (
	spiSetDeskWallpaper  = 0x0014
	spifUpdateINIFile    = 0x01
	spifSendWinIniChange = 0x02
	enumCurrentSettings  = 0xFFFFFFFF
	monitorInfoFMonitor  = 0x1

	// DMDO_* display orientation values from wingdi.h.
	dmdo0   = 0
	dmdo90  = 1
	dmdo180 = 2
	dmdo270 = 3
)

type rect struct {
	Left, Top, Right, Bottom int32
}

type monitorInfoEx struct {
	CbSize   uint32
	Monitor  rect
	WorkArea rect
	Flags    uint32
	Device   [32]uint16
}

type devMode struct {
	DeviceName    [32]uint16
	SpecVersion   uint16
	DriverVersion uint16
	Size          uint16
	DriverExtra   uint16
	Fields        uint32
	// Position union overlaps with orientation fields depending on Fields;
	// only the members this package touches are declared.
	PositionX          int32
	PositionY          int32
	DisplayOrientation uint32
	DisplayFixedOutput uint32
	Color              int16
	Duplex             int16
	YResolution        int16
	TTOption           int16
	Collate            int16
	FormName           [32]uint16
	LogPixels          uint16
	BitsPerPel         uint32
	PelsWidth          uint32
	PelsHeight         uint32
	DisplayFlags       uint32
	DisplayFrequency   uint32
}

type windowsOS struct{}

func newOS() OS { return &windowsOS{} }

// Displays enumerates monitors with EnumDisplayMonitors for geometry
// and EnumDisplaySettingsExW for orientation, the raw-syscall style the
// teacher uses for its IDesktopWallpaper COM calls, applied here to the
// simpler GDI multi-monitor APIs instead.
func (w *windowsOS) Displays() ([]model.Info, error) {
	var infos []model.Info
	primarySeen := false

	cb := syscall.NewCallback(func(hMonitor, _, lprcMonitor, _ uintptr) uintptr {
		r := (*rect)(unsafe.Pointer(lprcMonitor))

		var mi monitorInfoEx
		mi.CbSize = uint32(unsafe.Sizeof(mi))
		_, _, _ = procGetMonitorInfoW.Call(hMonitor, uintptr(unsafe.Pointer(&mi)))

		orientation, err := deviceOrientation(mi.Device)
		if err != nil {
			orientation = model.Orient0
		}

		primary := mi.Flags&monitorInfoFMonitor != 0 && !primarySeen
		if primary {
			primarySeen = true
		}

		infos = append(infos, model.Info{
			X:           int(r.Left),
			Y:           int(r.Top),
			Width:       int(r.Right - r.Left),
			Height:      int(r.Bottom - r.Top),
			Orientation: orientation,
			IsPrimary:   primary,
		})
		return 1 // continue enumeration
	})

	ret, _, _ := procEnumDisplayMonitors.Call(0, 0, cb, 0)
	if ret == 0 {
		return nil, fmt.Errorf("platform: EnumDisplayMonitors failed")
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("platform: no monitors reported")
	}
	return infos, nil
}

func deviceOrientation(device [32]uint16) (model.Orientation, error) {
	var dm devMode
	dm.Size = uint16(unsafe.Sizeof(dm))

	ret, _, _ := procEnumDisplaySettingsExW.Call(
		uintptr(unsafe.Pointer(&device[0])),
		uintptr(enumCurrentSettings),
		uintptr(unsafe.Pointer(&dm)),
		0,
	)
	if ret == 0 {
		return model.Orient0, fmt.Errorf("platform: EnumDisplaySettingsExW failed")
	}

	switch dm.DisplayOrientation {
	case dmdo90:
		return model.Orient90, nil
	case dmdo180:
		return model.Orient180, nil
	case dmdo270:
		return model.Orient270, nil
	default:
		return model.Orient0, nil
	}
}

// InstallWallpaper sets the composited image as the single desktop
// wallpaper, switching the registry style to "Span" (22) so it covers
// the full virtual desktop across every monitor rather than tiling per
// screen.
func (w *windowsOS) InstallWallpaper(imagePath string) error {
	key, _, err := registry.CreateKey(registry.CURRENT_USER, `Control Panel\Desktop`, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("platform: open desktop registry key: %w", err)
	}
	defer key.Close()

	if err := key.SetStringValue("WallpaperStyle", "22"); err != nil {
		return fmt.Errorf("platform: set WallpaperStyle: %w", err)
	}
	if err := key.SetStringValue("TileWallpaper", "0"); err != nil {
		return fmt.Errorf("platform: set TileWallpaper: %w", err)
	}

	pathPtr, err := syscall.UTF16PtrFromString(imagePath)
	if err != nil {
		return fmt.Errorf("platform: encode wallpaper path: %w", err)
	}

	ret, _, callErr := procSystemParametersInfoW.Call(
		uintptr(spiSetDeskWallpaper),
		0,
		uintptr(unsafe.Pointer(pathPtr)),
		uintptr(spifUpdateINIFile|spifSendWinIniChange),
	)
	if ret == 0 {
		return fmt.Errorf("platform: SystemParametersInfoW failed: %v", callErr)
	}
	return nil
}

// WatchDisplayChanges polls Displays on an interval and invokes fn
// whenever the reported geometry changes, mirroring the ticker-driven
// polling pattern the teacher uses for its own periodic checks (see
// startNightlyRefresher in the reference wallpaper rotation plugin).
func (w *windowsOS) WatchDisplayChanges(ctx context.Context, fn func()) error {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	last, _ := w.Displays()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			cur, err := w.Displays()
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
