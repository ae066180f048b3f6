package peer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"hero-blaster/internal/input"
	"hero-blaster/internal/world"
	"slices"
)

var (
	// ErrMalformed is returned for payloads that are not a JSON object.
	ErrMalformed = errors.New("peer: malformed message")
	// ErrUnknownType is returned when "type" is neither "input" nor "state".
	ErrUnknownType = errors.New("peer: unknown message type")
	// ErrMissingField is returned when a required field is absent or null.
	ErrMissingField = errors.New("peer: missing field")
	// ErrUnknownField is returned when a message carries an unexpected field.
	ErrUnknownField = errors.New("peer: unknown field")
	// ErrBadCommand is returned for commands other than "start" and "pause",
	// and for input messages carrying both or neither of input and command.
	ErrBadCommand = errors.New("peer: bad command")
	// ErrPlayerCount is returned when a snapshot does not list two players.
	ErrPlayerCount = errors.New("peer: snapshot must carry two players")
)

// Command is a one-shot request from the guest to the host.
type Command string

const (
	CommandStart Command = "start"
	CommandPause Command = "pause"
)

// Message is one of InputMessage or StateMessage.
type Message interface {
	messageType() string
}

// InputMessage flows guest to host. Exactly one of Intent and Command is set.
type InputMessage struct {
	Intent  *input.Intent
	Command Command
}

func (InputMessage) messageType() string { return "input" }

// PlayerPos is a ship position inside a snapshot.
type PlayerPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StateMessage flows host to guest and replaces the guest's world wholesale.
type StateMessage struct {
	Running       bool               `json:"running"`
	Paused        bool               `json:"paused"`
	Score         int                `json:"score"`
	Lives         int                `json:"lives"`
	Level         int                `json:"level"`
	NextBossLevel int                `json:"nextBossLevel"`
	Bullets       []world.Bullet     `json:"bullets"`
	Enemies       []world.Enemy      `json:"enemies"`
	BossBullets   []world.BossBullet `json:"bossBullets"`
	Boss          *world.Boss        `json:"boss"`
	Players       [2]PlayerPos       `json:"players"`
}

func (StateMessage) messageType() string { return "state" }

// Snapshot captures the synchronized part of w.
func Snapshot(w *world.World) StateMessage {
	m := StateMessage{
		Running:       w.Running,
		Paused:        w.Paused,
		Score:         w.Score,
		Lives:         w.Lives,
		Level:         w.Level,
		NextBossLevel: w.NextBossLevel,
		Bullets:       slices.Clone(w.Bullets),
		Enemies:       slices.Clone(w.Enemies),
		BossBullets:   slices.Clone(w.BossBullets),
	}
	if w.Boss != nil {
		b := *w.Boss
		m.Boss = &b
	}
	for _, t := range world.Teams {
		p := w.Player(t)
		m.Players[t] = PlayerPos{X: p.X, Y: p.Y}
	}
	return m
}

// Apply replaces the synchronized part of w with the snapshot. Values are
// taken verbatim; a negative lives count stays negative.
func (m StateMessage) Apply(w *world.World) {
	w.Running = m.Running
	w.Paused = m.Paused
	w.Score = m.Score
	w.Lives = m.Lives
	w.Level = m.Level
	w.NextBossLevel = m.NextBossLevel
	w.Bullets = slices.Clone(m.Bullets)
	w.Enemies = slices.Clone(m.Enemies)
	w.BossBullets = slices.Clone(m.BossBullets)
	w.Boss = nil
	if m.Boss != nil {
		b := *m.Boss
		w.Boss = &b
	}
	for _, t := range world.Teams {
		p := w.Player(t)
		p.X, p.Y = m.Players[t].X, m.Players[t].Y
	}
}

type inputWire struct {
	Type    string        `json:"type"`
	Input   *input.Intent `json:"input,omitempty"`
	Command Command       `json:"command,omitempty"`
}

type stateWire struct {
	Type string `json:"type"`
	StateMessage
}

// Encode renders m as a JSON text frame.
func Encode(m Message) ([]byte, error) {
	switch m := m.(type) {
	case InputMessage:
		if (m.Intent == nil) == (m.Command == "") {
			return nil, ErrBadCommand
		}
		if m.Command != "" && m.Command != CommandStart && m.Command != CommandPause {
			return nil, fmt.Errorf("%w: %q", ErrBadCommand, m.Command)
		}
		return json.Marshal(inputWire{Type: m.messageType(), Input: m.Intent, Command: m.Command})
	case StateMessage:
		m.Bullets = nonNil(m.Bullets)
		m.Enemies = nonNil(m.Enemies)
		m.BossBullets = nonNil(m.BossBullets)
		return json.Marshal(stateWire{Type: m.messageType(), StateMessage: m})
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownType, m)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

var (
	intentKeys     = []string{"left", "right", "up", "down", "shoot"}
	stateKeys      = []string{"type", "running", "paused", "score", "lives", "level", "nextBossLevel", "bullets", "enemies", "bossBullets", "boss", "players"}
	bulletKeys     = []string{"x", "y", "w", "h", "speed", "team"}
	enemyKeys      = []string{"x", "y", "w", "h", "speed"}
	bossBulletKeys = []string{"x", "y", "w", "h", "speed"}
	bossKeys       = []string{"x", "y", "w", "h", "hp", "maxHp", "speed", "dir"}
	playerKeys     = []string{"x", "y"}
)

// Decode parses one frame. It fails closed: anything that is not exactly an
// input or state message is rejected with an error wrapping one of the
// sentinel errors above.
func Decode(data []byte) (Message, error) {
	fields, err := object(data)
	if err != nil {
		return nil, err
	}
	var typ string
	if err := field(fields, "type", &typ); err != nil {
		return nil, err
	}
	switch typ {
	case "input":
		return decodeInput(fields)
	case "state":
		return decodeState(fields)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
}

func decodeInput(fields map[string]json.RawMessage) (Message, error) {
	for k := range fields {
		if k != "type" && k != "input" && k != "command" {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, k)
		}
	}
	_, hasInput := fields["input"]
	_, hasCommand := fields["command"]
	if hasInput == hasCommand {
		return nil, fmt.Errorf("%w: need exactly one of input and command", ErrBadCommand)
	}

	var m InputMessage
	if hasCommand {
		if err := field(fields, "command", &m.Command); err != nil {
			return nil, err
		}
		if m.Command != CommandStart && m.Command != CommandPause {
			return nil, fmt.Errorf("%w: %q", ErrBadCommand, m.Command)
		}
		return m, nil
	}

	if err := strict(fields["input"], intentKeys); err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	m.Intent = &input.Intent{}
	if err := unmarshalStrict(fields["input"], m.Intent); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeState(fields map[string]json.RawMessage) (Message, error) {
	if err := keys(fields, stateKeys); err != nil {
		return nil, err
	}

	var m StateMessage
	scalars := []struct {
		name string
		dst  any
	}{
		{"running", &m.Running},
		{"paused", &m.Paused},
		{"score", &m.Score},
		{"lives", &m.Lives},
		{"level", &m.Level},
		{"nextBossLevel", &m.NextBossLevel},
	}
	for _, s := range scalars {
		if err := field(fields, s.name, s.dst); err != nil {
			return nil, err
		}
	}

	if err := list(fields, "bullets", bulletKeys, &m.Bullets); err != nil {
		return nil, err
	}
	if err := list(fields, "enemies", enemyKeys, &m.Enemies); err != nil {
		return nil, err
	}
	if err := list(fields, "bossBullets", bossBulletKeys, &m.BossBullets); err != nil {
		return nil, err
	}

	if raw := fields["boss"]; !isNull(raw) {
		if err := strict(raw, bossKeys); err != nil {
			return nil, fmt.Errorf("boss: %w", err)
		}
		m.Boss = &world.Boss{}
		if err := unmarshalStrict(raw, m.Boss); err != nil {
			return nil, err
		}
	}

	var players []json.RawMessage
	if err := field(fields, "players", &players); err != nil {
		return nil, err
	}
	if len(players) != len(m.Players) {
		return nil, fmt.Errorf("%w: got %d", ErrPlayerCount, len(players))
	}
	for i, raw := range players {
		if err := strict(raw, playerKeys); err != nil {
			return nil, fmt.Errorf("players[%d]: %w", i, err)
		}
		if err := unmarshalStrict(raw, &m.Players[i]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// object splits a JSON object into its raw fields.
func object(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: null", ErrMalformed)
	}
	return fields, nil
}

// strict checks that raw is an object with exactly the given keys, none null.
func strict(raw json.RawMessage, want []string) error {
	fields, err := object(raw)
	if err != nil {
		return err
	}
	return keys(fields, want)
}

func keys(fields map[string]json.RawMessage, want []string) error {
	for _, k := range want {
		if _, ok := fields[k]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingField, k)
		}
	}
	for k, v := range fields {
		if !slices.Contains(want, k) {
			return fmt.Errorf("%w: %q", ErrUnknownField, k)
		}
		if isNull(v) && k != "boss" {
			return fmt.Errorf("%w: %q is null", ErrMissingField, k)
		}
	}
	return nil
}

// field decodes a required, non-null field.
func field(fields map[string]json.RawMessage, name string, dst any) error {
	raw, ok := fields[name]
	if !ok || isNull(raw) {
		return fmt.Errorf("%w: %q", ErrMissingField, name)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrMalformed, name, err)
	}
	return nil
}

// list decodes an array of entity objects, each with exactly the given keys.
func list[T any](fields map[string]json.RawMessage, name string, want []string, dst *[]T) error {
	var items []json.RawMessage
	if err := field(fields, name, &items); err != nil {
		return err
	}
	out := make([]T, len(items))
	for i, raw := range items {
		if err := strict(raw, want); err != nil {
			return fmt.Errorf("%s[%d]: %w", name, i, err)
		}
		if err := unmarshalStrict(raw, &out[i]); err != nil {
			return fmt.Errorf("%s[%d]: %w", name, i, err)
		}
	}
	*dst = out
	return nil
}

func unmarshalStrict(raw json.RawMessage, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
