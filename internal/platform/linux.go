//go:build linux

package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/godbus/dbus/v5"

	"github.com/mosaicwall/mosaicwall/internal/model"
	"github.com/mosaicwall/mosaicwall/util/log"
)

// linuxOS implements OS against X11 RandR for geometry/change events and
// a chain of desktop-environment tools for installing the wallpaper.
type linuxOS struct{}

func newOS() OS { return &linuxOS{} }

// Displays enumerates active CRTCs via RandR, the same resource walk
// termtile's x11 package performs, but read directly off xgb/randr
// instead of through xgbutil since this package has no other use for
// xgbutil's window-manager helpers.
func (l *linuxOS) Displays() ([]model.Info, error) {
	conn, root, err := dialRandR()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	res, err := randr.GetScreenResources(conn, root).Reply()
	if err != nil {
		return nil, fmt.Errorf("platform: get screen resources: %w", err)
	}

	var infos []model.Info
	for _, crtc := range res.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, res.ConfigTimestamp).Reply()
		if err != nil || info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		orientation := rotationToOrientation(info.Rotation)
		infos = append(infos, model.Info{
			X:           int(info.X),
			Y:           int(info.Y),
			Width:       int(info.Width),
			Height:      int(info.Height),
			Orientation: orientation,
			IsPrimary:   len(infos) == 0,
		})
	}

	if len(infos) == 0 {
		return nil, fmt.Errorf("platform: no active outputs reported by RandR")
	}
	return infos, nil
}

// rotationToOrientation maps RandR's bitmask rotation constants onto
// the compositor's clockwise Orientation enum.
func rotationToOrientation(r uint16) model.Orientation {
	switch {
	case r&randr.RotationRotate90 != 0:
		return model.Orient90
	case r&randr.RotationRotate180 != 0:
		return model.Orient180
	case r&randr.RotationRotate270 != 0:
		return model.Orient270
	default:
		return model.Orient0
	}
}

func dialRandR() (*xgb.Conn, xproto.Window, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, 0, fmt.Errorf("platform: connect to X server: %w", err)
	}
	if err := randr.Init(conn); err != nil {
		conn.Close()
		return nil, 0, fmt.Errorf("platform: init RandR extension: %w", err)
	}
	setup := xproto.Setup(conn)
	root := setup.DefaultScreen(conn).Root
	return conn, root, nil
}

// WatchDisplayChanges subscribes to RandR's ScreenChangeNotify events on
// the root window and invokes fn for each one received, until ctx is
// canceled.
func (l *linuxOS) WatchDisplayChanges(ctx context.Context, fn func()) error {
	conn, root, err := dialRandR()
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := randr.SelectInputChecked(conn, root, randr.NotifyMaskScreenChange).Check(); err != nil {
		return fmt.Errorf("platform: subscribe to RandR events: %w", err)
	}

	events := make(chan xgb.Event)
	errs := make(chan error, 1)
	go func() {
		for {
			ev, err := conn.WaitForEvent()
			if err != nil {
				errs <- err
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errs:
			return fmt.Errorf("platform: X event loop: %w", err)
		case ev := <-events:
			if _, ok := ev.(randr.ScreenChangeNotifyEvent); ok {
				fn()
			}
		}
	}
}

// InstallWallpaper sets the composited image as the desktop background,
// trying each desktop environment's native mechanism in turn, exactly
// as the teacher's Linux backend does — only the KDE path is upgraded
// from a shelled-out dbus-send to a direct session-bus call.
func (l *linuxOS) InstallWallpaper(imagePath string) error {
	var errs []string

	if err := setWallpaperGNOME(imagePath); err == nil {
		return nil
	} else {
		errs = append(errs, "gnome: "+err.Error())
	}
	if err := setWallpaperKDE(imagePath); err == nil {
		return nil
	} else {
		errs = append(errs, "kde: "+err.Error())
	}
	if err := setWallpaperXFCE(imagePath); err == nil {
		return nil
	} else {
		errs = append(errs, "xfce: "+err.Error())
	}
	if err := setWallpaperSway(imagePath); err == nil {
		return nil
	} else {
		errs = append(errs, "sway: "+err.Error())
	}

	return fmt.Errorf("platform: no desktop environment accepted the wallpaper: %s", strings.Join(errs, "; "))
}

func setWallpaperGNOME(imagePath string) error {
	cmd := exec.Command("gsettings", "set", "org.gnome.desktop.background", "picture-uri", fmt.Sprintf("file://%s", imagePath))
	return cmd.Run()
}

// setWallpaperKDE drives Plasma's scripting interface directly over the
// session bus with godbus, replacing the teacher's shelled-out
// dbus-send invocation with a native call.
func setWallpaperKDE(imagePath string) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("connect to session bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object("org.kde.plasmashell", "/PlasmaShell")
	script := fmt.Sprintf(`
		var allDesktops = desktops();
		for (i=0;i<allDesktops.length;i++) {
			d = allDesktops[i];
			d.wallpaperPlugin = "org.kde.image";
			d.currentConfigGroup = Array("Wallpaper", "org.kde.image", "General");
			d.writeConfig("Image", "file://%s");
		}
	`, imagePath)

	call := obj.Call("org.kde.PlasmaShell.evaluateScript", 0, script)
	if call.Err != nil {
		return fmt.Errorf("evaluateScript: %w", call.Err)
	}
	return nil
}

func setWallpaperXFCE(imagePath string) error {
	configFile := filepath.Join(os.Getenv("HOME"), ".config", "xfce4", "xfconf", "xfce-perchannel-xml", "xfce4-desktop.xml")
	if _, err := os.Stat(configFile); err != nil {
		return fmt.Errorf("xfce desktop config not found: %w", err)
	}

	cmd := exec.Command("xfconf-query",
		"--channel", "xfce4-desktop",
		"--property", "/backdrop/screen0/monitor0/workspace0/last-image",
		"--set", imagePath)
	return cmd.Run()
}

func setWallpaperSway(imagePath string) error {
	cmd := exec.Command("swaybg", "-i", imagePath, "-m", "fill")
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start swaybg: %w", err)
	}
	log.Debugf("platform: launched swaybg pid=%d for %s", cmd.Process.Pid, imagePath)
	return nil
}
