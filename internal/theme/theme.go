// Package theme persists the light/dark display preference.
package theme

import (
	"encoding/json"
	"fmt"

	"github.com/skoskinen/biblio/internal/storage"
)

const (
	Light = "light"
	Dark  = "dark"

	// DefaultMode is used when nothing is stored or the value is invalid.
	DefaultMode = Light
)

func valid(mode string) bool {
	return mode == Light || mode == Dark
}

// Load returns the stored preference, falling back to the default.
func Load(st *storage.Store) string {
	raw, ok, err := st.Get(storage.KeyTheme)
	if err != nil || !ok {
		return DefaultMode
	}

	var mode string
	if err := json.Unmarshal([]byte(raw), &mode); err != nil || !valid(mode) {
		return DefaultMode
	}
	return mode
}

// Set stores mode, rejecting anything but light or dark.
func Set(st *storage.Store, mode string) error {
	if !valid(mode) {
		return fmt.Errorf("invalid theme %q; valid themes are: %s, %s", mode, Light, Dark)
	}

	data, err := json.Marshal(mode)
	if err != nil {
		return err
	}
	return st.Set(storage.KeyTheme, string(data))
}

// Toggle flips the stored preference and returns the new mode.
func Toggle(st *storage.Store) (string, error) {
	next := Dark
	if Load(st) == Dark {
		next = Light
	}
	if err := Set(st, next); err != nil {
		return "", err
	}
	return next, nil
}
