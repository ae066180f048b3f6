// hero-blaster is the terminal build of the arcade shooter. Run it alone for
// single player or shared-keyboard co-op, or pair two instances over the
// network with the host/join hotkeys.
package main

import (
	"flag"
	"fmt"
	"hero-blaster/internal/audio"
	"hero-blaster/internal/config"
	"hero-blaster/internal/game"
	"hero-blaster/internal/peer"
	"log/slog"
	"os"
	"path/filepath"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config.toml (default: XDG config dir)")
	difficulty := flag.String("difficulty", "", "easy, medium or hard (overrides config)")
	mode := flag.String("mode", "", "single or multi (overrides config)")
	skin := flag.String("skin", "", "color skin (overrides config)")
	listen := flag.String("listen", "", "address a host listens on (overrides config)")
	advertise := flag.String("advertise", "", "host:port written into offers (overrides config)")
	remote := flag.String("remote", "", "handshake code from the other player")
	noSound := flag.Bool("nosound", false, "disable sound")
	writeCfg := flag.Bool("write-config", false, "save the effective settings to the config file and exit")
	flag.Parse()

	cfg, err := config.LoadDefault(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	override(&cfg.Difficulty, *difficulty)
	override(&cfg.Mode, *mode)
	override(&cfg.Skin, *skin)
	override(&cfg.Net.Listen, *listen)
	override(&cfg.Net.Advertise, *advertise)
	if *noSound {
		cfg.Sound = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *writeCfg {
		path := *cfgPath
		if path == "" {
			if path, err = config.Path(); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
		}
		if err := config.Save(path, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("wrote", path)
		return
	}

	// The screen owns stdout, so logs go to a file.
	closeLog := setupLogging(cfg)
	defer closeLog()

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

	g, err := game.New(game.Options{
		Net:        peer.Config{Listen: cfg.Net.Listen, Advertise: cfg.Net.Advertise},
		HoldFrames: cfg.HoldFrames,
		RunLogDir:  runDir,
		Sounds:     player,
		Clipboard:  game.DetectClipboard(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	g.Session().Configure(cfg)
	if *remote != "" {
		g.Session().SetRemoteCode(*remote)
	}
	g.Run()
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// setupLogging points the default logger at hero-blaster.log in the state
// directory. Logging is discarded if the file cannot be opened.
func setupLogging(cfg config.Config) func() {
	level, _ := cfg.Level()
	opts := &slog.HandlerOptions{Level: level}

	dir, err := config.StateDir()
	if err == nil {
		err = os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "hero-blaster.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return func() {}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, opts)))
	return func() { _ = f.Close() }
}
