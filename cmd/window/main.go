// hero-blaster-window is the desktop build: keyboard for both ships,
// clickable settings and handshake buttons, and touch pads under the field.
//
//	go build -o hero-blaster-window ./cmd/window
package main

import (
	"errors"
	"flag"
	"fmt"
	"hero-blaster/internal/audio"
	"hero-blaster/internal/config"
	"hero-blaster/internal/game"
	"hero-blaster/internal/peer"
	"hero-blaster/internal/world"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config.toml (default: XDG config dir)")
	listen := flag.String("listen", "", "address a host listens on (overrides config)")
	advertise := flag.String("advertise", "", "host:port written into offers (overrides config)")
	noSound := flag.Bool("nosound", false, "disable sound")
	flag.Parse()

	cfg, err := config.LoadDefault(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Net.Listen = *listen
	}
	if *advertise != "" {
		cfg.Net.Advertise = *advertise
	}
	if *noSound {
		cfg.Sound = false
	}
	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	player := audio.NewPlayer(cfg.Sound)
	if err := player.Init(); err != nil {
		slog.Warn("sound disabled", "err", err)
	}
	defer player.Close()

	runDir, err := config.DataDir()
	if err != nil {
		slog.Warn("run log disabled", "err", err)
		runDir = ""
	}
	s := game.NewSession(game.Options{
		Net:       peer.Config{Listen: cfg.Net.Listen, Advertise: cfg.Net.Advertise},
		RunLogDir: runDir,
		Sounds:    player,
		Clipboard: game.DetectClipboard(),
	})
	defer s.Close()
	s.Configure(cfg)

	ebiten.SetWindowSize(world.Width, world.Height+game.PanelHeight)
	ebiten.SetWindowTitle("Hero Blaster Legends")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(newWindow(s)); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("window closed", "err", err)
		os.Exit(1)
	}
}
