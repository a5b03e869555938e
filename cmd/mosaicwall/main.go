package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mosaicwall/mosaicwall/config"
	"github.com/mosaicwall/mosaicwall/internal/configfile"
	"github.com/mosaicwall/mosaicwall/internal/driver"
	"github.com/mosaicwall/mosaicwall/internal/platform"
	"github.com/mosaicwall/mosaicwall/util/log"

	"golang.org/x/time/rate"
)

const debounceInterval = 500 * time.Millisecond

func main() {
	configPath := flag.String("c", config.DefaultConfigPath, "path to the JSON configuration file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s composites per-monitor source images into a single desktop wallpaper.\n\n", config.AppName)
		fmt.Fprintf(os.Stderr, "Usage: %s [-c config.json]\n\n", config.AppName)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := configfile.Load(*configPath)
	if err != nil {
		log.Fatalf("mosaicwall: %v", err)
	}

	plat := platform.New()
	d := driver.New(plat, cfg, rate.Every(debounceInterval))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := d.Update(ctx); err != nil {
		log.Printf("mosaicwall: initial update failed: %v", err)
	}

	go func() {
		if err := plat.WatchDisplayChanges(ctx, func() {
			if err := d.Update(ctx); err != nil {
				log.Printf("mosaicwall: update failed: %v", err)
			}
		}); err != nil && ctx.Err() == nil {
			log.Printf("mosaicwall: display watcher stopped: %v", err)
		}
	}()

	<-ctx.Done()
	if d.Running() {
		log.Print("mosaicwall: shutting down, letting in-flight cycle finish")
		for d.Running() {
			time.Sleep(50 * time.Millisecond)
		}
	} else {
		log.Print("mosaicwall: shutting down")
	}
}
