package game

import (
	"errors"

	"github.com/atotto/clipboard"
)

// Clipboard moves handshake blobs between players.
type Clipboard interface {
	Copy(text string) error
	Paste() (string, error)
}

// SystemClipboard uses the desktop clipboard.
type SystemClipboard struct{}

func (SystemClipboard) Copy(text string) error { return clipboard.WriteAll(text) }

func (SystemClipboard) Paste() (string, error) { return clipboard.ReadAll() }

var errNoClipboard = errors.New("no clipboard available")

// noClipboard is used when the front end has none, e.g. over SSH.
type noClipboard struct{}

func (noClipboard) Copy(string) error       { return errNoClipboard }
func (noClipboard) Paste() (string, error) { return "", errNoClipboard }

// DetectClipboard returns the system clipboard when one is usable.
func DetectClipboard() Clipboard {
	if clipboard.Unsupported {
		return noClipboard{}
	}
	return SystemClipboard{}
}
