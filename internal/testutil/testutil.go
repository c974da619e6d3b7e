// Package testutil provides common test helpers for the biblio project.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/skoskinen/biblio/internal/cache"
	"github.com/skoskinen/biblio/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	GoogleBooksAPIKey string
	SearchLanguage    string
	MaxResults        int
	StoragePath       string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		GoogleBooksAPIKey: config.GoogleBooksAPIKey,
		SearchLanguage:    config.SearchLanguage,
		MaxResults:        config.MaxResults,
		StoragePath:       config.StoragePath,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.GoogleBooksAPIKey = state.GoogleBooksAPIKey
	config.SearchLanguage = state.SearchLanguage
	config.MaxResults = state.MaxResults
	config.StoragePath = state.StoragePath
}

// ResetConfig saves the current config state and schedules restoration when
// the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
	})
}

// SetupTestCache points the global response cache at a fresh temporary
// database and tears it down when the test completes.
func SetupTestCache(t *testing.T) {
	t.Helper()

	require := func(err error) {
		if err != nil {
			t.Fatalf("test cache setup: %v", err)
		}
	}

	require(cache.ResetGlobal())

	SetViperValue(t, "cache.dbfile", filepath.Join(t.TempDir(), "test-cache.db"))
	SetViperValue(t, "cache.ttl", "24h")

	t.Cleanup(func() {
		if err := cache.ResetGlobal(); err != nil {
			t.Errorf("test cache teardown: %v", err)
		}
	})
}
