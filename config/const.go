// Package config holds process-wide constants shared by the daemon,
// its logger, and the config file loader.
package config

// AppVersion is set at build time via -ldflags.
var AppVersion string

// AppName names the daemon, its log file, and its state directory.
const AppName = "mosaicwall"

// LogSubDir is the log directory under the user's home on Linux/macOS.
const LogSubDir = ".local/state/mosaicwall/log"

// LogWinSubDir is the log directory under the user's cache dir on Windows.
const LogWinSubDir = "mosaicwall\\log"

// LogExt is the log file extension.
const LogExt = ".log"

// DefaultConfigPath is used when -c is not given on the command line.
const DefaultConfigPath = "config.json"

// DefaultOutputFormat matches the original tool's default of writing a
// BMP background (the cheapest format for Windows's desktop wallpaper API).
const DefaultOutputFormat = "bmp"

// DefaultBackgroundColor is used when a monitor's bg_color is unset or
// fails to parse as "#RRGGBB".
const DefaultBackgroundColor = "#000000"

// OutputFileName is the fixed basename written under settings.workdir.
const OutputFileName = "wallpaper_generated"

// MaxMonitors bounds the monitor array accepted from the config file.
const MaxMonitors = 8
