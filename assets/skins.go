package assets

import (
	"fmt"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is the set of colors a skin paints entities with.
type Palette struct {
	RedTeam    colorful.Color
	BlueTeam   colorful.Color
	Enemy      colorful.Color
	Boss       colorful.Color
	Bullet     colorful.Color
	BossBullet colorful.Color
	BgTop      colorful.Color
	BgBottom   colorful.Color
}

// mustHex parses a "#rrggbb" literal and panics on a malformed one.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("assets: bad color %q: %v", s, err))
	}
	return c
}

// Fixed colors shared by every skin.
var (
	Background = mustHex("#0a173f")
	StarColor  = colorful.Color{R: 201.0 / 255, G: 238.0 / 255, B: 1}
	EyeColor   = mustHex("#ffd6eb")
	Cockpit    = mustHex("#f8fdff")
	HPBarFill  = mustHex("#67efad")
	Overlay    = colorful.Color{R: 1.0 / 255, G: 8.0 / 255, B: 28.0 / 255}
	TitleText  = mustHex("#ffd449")
	BodyText   = mustHex("#e8f8ff")
)

// SkinRandom names the skin whose palette is rolled on selection.
const SkinRandom = "random"

// SkinNames lists every selectable skin in menu order.
var SkinNames = []string{"avengers", "dc", SkinRandom}

var skins = map[string]Palette{
	"avengers": {
		RedTeam:    mustHex("#e63946"),
		BlueTeam:   mustHex("#2563eb"),
		Enemy:      mustHex("#a855f7"),
		Boss:       mustHex("#f59e0b"),
		Bullet:     mustHex("#ffd166"),
		BossBullet: mustHex("#ff9f4a"),
		BgTop:      mustHex("#0f235a"),
		BgBottom:   mustHex("#2e71cd"),
	},
	"dc": {
		RedTeam:    mustHex("#ff3b30"),
		BlueTeam:   mustHex("#1d4ed8"),
		Enemy:      mustHex("#10b981"),
		Boss:       mustHex("#f97316"),
		Bullet:     mustHex("#fde047"),
		BossBullet: mustHex("#fb923c"),
		BgTop:      mustHex("#0e1b44"),
		BgBottom:   mustHex("#1d4f9f"),
	},
}

// Skin returns the palette for name. The random skin rolls a fresh palette
// from rng on every call.
func Skin(name string, rng *rand.Rand) (Palette, error) {
	if name == SkinRandom {
		return RandomPalette(rng), nil
	}
	p, ok := skins[name]
	if !ok {
		return Palette{}, fmt.Errorf("unknown skin %q", name)
	}
	return p, nil
}

// NextSkin returns the skin following name in SkinNames, wrapping around.
func NextSkin(name string) string {
	for i, n := range SkinNames {
		if n == name {
			return SkinNames[(i+1)%len(SkinNames)]
		}
	}
	return SkinNames[0]
}

// RandomPalette picks every color at a random hue with 88% saturation and
// 62% lightness.
func RandomPalette(rng *rand.Rand) Palette {
	c := func() colorful.Color {
		return colorful.Hsl(float64(rng.Intn(360)), 0.88, 0.62)
	}
	return Palette{
		RedTeam:    c(),
		BlueTeam:   c(),
		Enemy:      c(),
		Boss:       c(),
		Bullet:     c(),
		BossBullet: c(),
		BgTop:      c(),
		BgBottom:   c(),
	}
}
