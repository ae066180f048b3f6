// Package config loads player settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"hero-blaster/assets"
	"hero-blaster/internal/world"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// AppName names the per-user config, data and state directories.
const AppName = "hero-blaster"

// Net holds the peer listener settings.
type Net struct {
	Listen    string `toml:"listen"`
	Advertise string `toml:"advertise"`
}

// Config is the on-disk settings file.
type Config struct {
	Difficulty string `toml:"difficulty"`
	Mode       string `toml:"mode"`
	Skin       string `toml:"skin"`
	Sound      bool   `toml:"sound"`
	LogLevel   string `toml:"log_level"`
	// HoldFrames is how many frames a terminal key stays down after its
	// last press; terminals send no key-up events.
	HoldFrames int `toml:"hold_frames"`
	Net        Net `toml:"net"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Difficulty: world.Easy.String(),
		Mode:       "",
		Skin:       assets.SkinNames[0],
		Sound:      true,
		LogLevel:   "info",
		HoldFrames: 6,
		Net:        Net{Listen: ":7070"},
	}
}

// Path returns $XDG_CONFIG_HOME/hero-blaster/config.toml, defaulting to
// ~/.config.
func Path() (string, error) {
	dir, err := dirFor("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DataDir returns $XDG_DATA_HOME/hero-blaster, defaulting to ~/.local/share.
func DataDir() (string, error) {
	return dirFor("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// StateDir returns $XDG_STATE_HOME/hero-blaster, defaulting to
// ~/.local/state.
func StateDir() (string, error) {
	return dirFor("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func dirFor(env, fallback string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, fallback)
	}
	return filepath.Join(base, AppName), nil
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadDefault is Load for a -config flag: an empty path means the file at
// Path, and with no usable config directory the defaults apply.
func LoadDefault(path string) (Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}
	return Load(path)
}

// Save writes c to path, creating the directory.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Validate rejects values the game cannot apply.
func (c Config) Validate() error {
	if _, err := world.ParseDifficulty(c.Difficulty); err != nil {
		return err
	}
	if _, err := world.ParseMode(c.Mode); err != nil {
		return err
	}
	if !slices.Contains(assets.SkinNames, c.Skin) {
		return fmt.Errorf("unknown skin %q", c.Skin)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.HoldFrames < 1 || c.HoldFrames > 60 {
		return fmt.Errorf("hold_frames %d out of range 1..60", c.HoldFrames)
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// Apply sets difficulty, mode and skin on an idle world. Invalid values
// are skipped.
func (c Config) Apply(w *world.World) {
	if d, err := world.ParseDifficulty(c.Difficulty); err == nil {
		w.SetDifficulty(d)
	}
	if m, err := world.ParseMode(c.Mode); err == nil {
		w.SetMode(m)
	}
	w.SetSkin(c.Skin)
}
