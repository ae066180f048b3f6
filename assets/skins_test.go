package assets

import (
	"math/rand"
	"testing"
)

func TestMustHex(t *testing.T) {
	r, g, b := mustHex("#0a173f").RGB255()
	if r != 0x0a || g != 0x17 || b != 0x3f {
		t.Errorf("mustHex(#0a173f) = %d,%d,%d", r, g, b)
	}

	defer func() {
		if recover() == nil {
			t.Error("mustHex accepted a malformed color")
		}
	}()
	mustHex("teal")
}

func TestSkinPalettes(t *testing.T) {
	for _, name := range []string{"avengers", "dc"} {
		p, err := Skin(name, nil)
		if err != nil {
			t.Fatalf("Skin(%q): %v", name, err)
		}
		if p.RedTeam == p.BlueTeam {
			t.Errorf("%s: teams share a color", name)
		}
	}
	if r, _, _ := skins["avengers"].RedTeam.RGB255(); r != 0xe6 {
		t.Errorf("avengers red channel = %#x; want 0xe6", r)
	}
	if _, err := Skin("marvel", nil); err == nil {
		t.Error("unknown skin accepted")
	}
}

func TestRandomSkin(t *testing.T) {
	p, err := Skin(SkinRandom, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	if !p.Enemy.IsValid() {
		t.Errorf("random enemy color out of gamut: %v", p.Enemy)
	}
}

func TestNextSkinWraps(t *testing.T) {
	cases := map[string]string{"avengers": "dc", "dc": SkinRandom, SkinRandom: "avengers", "bogus": "avengers"}
	for in, want := range cases {
		if got := NextSkin(in); got != want {
			t.Errorf("NextSkin(%q) = %q; want %q", in, got, want)
		}
	}
}
