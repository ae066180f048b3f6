package input

// KeySet tracks which keys are currently held.
//
// Window front ends get real key-up events and use a KeySet with no hold
// window: keys stay down until Release. Terminals only report presses and
// auto-repeats, so a terminal KeySet treats each press as holding the key for
// a fixed number of ticks.
type KeySet struct {
	hold int
	keys map[string]int // remaining ticks; <0 means until released
}

// NewKeySet returns an empty key set. holdTicks <= 0 disables expiry.
func NewKeySet(holdTicks int) *KeySet {
	return &KeySet{hold: holdTicks, keys: make(map[string]int)}
}

// Press marks key as held, refreshing its hold window.
func (k *KeySet) Press(key string) {
	key = NormalizeKey(key)
	if k.hold <= 0 {
		k.keys[key] = -1
		return
	}
	k.keys[key] = k.hold
}

// Release marks key as no longer held.
func (k *KeySet) Release(key string) {
	delete(k.keys, NormalizeKey(key))
}

// Down reports whether key is held. The empty key is never held.
func (k *KeySet) Down(key string) bool {
	if key == "" {
		return false
	}
	_, ok := k.keys[NormalizeKey(key)]
	return ok
}

// Tick ages timed keys by one step and drops the expired ones.
func (k *KeySet) Tick() {
	for key, left := range k.keys {
		if left < 0 {
			continue
		}
		if left <= 1 {
			delete(k.keys, key)
			continue
		}
		k.keys[key] = left - 1
	}
}

// Clear releases every key.
func (k *KeySet) Clear() {
	clear(k.keys)
}
