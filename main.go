// ABOUTME: Entry point for the gatto terminal music player
// ABOUTME: Parses CLI flags, loads config, scans the library, and starts the TUI
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gattoplayer/gatto/internal/app"
	"github.com/gattoplayer/gatto/internal/config"
	"github.com/gattoplayer/gatto/internal/library"
	"github.com/gattoplayer/gatto/internal/player"
	"github.com/gattoplayer/gatto/internal/ui"
	"github.com/gattoplayer/gatto/internal/version"
	"github.com/gattoplayer/gatto/internal/visualizer"
)

var (
	musicDir    = flag.String("music-dir", "", "Music directory to scan (default: $XDG_MUSIC_DIR or ~/Music)")
	logFile     = flag.String("log-file", "gatto.log", "Log file path")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", version.Product, version.Version)
		return
	}

	// The TUI owns the terminal, so logs go to a file.
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()
	log.SetOutput(f)

	log.Printf("Starting %s %s", version.Product, version.Version)

	cfg := config.Load()

	dir := *musicDir
	if dir == "" {
		dir = library.DefaultMusicDir()
	}

	lib, err := library.New()
	if err != nil {
		log.Fatalf("Failed to open library: %v", err)
	}
	if err := lib.Scan(dir); err != nil {
		log.Printf("Library scan failed: %v", err)
	}
	log.Printf("Library: %d tracks in %s", lib.Count(), dir)

	engine, err := player.New()
	if err != nil {
		if errors.Is(err, player.ErrDeviceUnavailable) {
			fmt.Fprintln(os.Stderr, "gatto: no audio device available")
		}
		log.Fatalf("Failed to open audio device: %v", err)
	}
	defer engine.Close()
	engine.SetVolume(1.0)

	ctrl := app.NewController(engine, lib.Tracks)
	analyzer := visualizer.NewAnalyzer(engine, cfg.Visualizer.BarCount, cfg.Visualizer.Smoothing)

	m := ui.NewModel(ctrl, engine, analyzer, cfg, player.SystemVolume)
	if err := ui.Run(m); err != nil {
		log.Fatalf("TUI error: %v", err)
	}

	log.Printf("Player stopped")
}
