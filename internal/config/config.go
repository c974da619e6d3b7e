package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// GoogleBooksAPIKey is the optional API key sent with catalog requests
	GoogleBooksAPIKey string
	// SearchLanguage restricts catalog results to a language code ("" = off)
	SearchLanguage string
	// MaxResults is the default result count for full searches
	MaxResults int
	// StoragePath is the sqlite file backing the local store
	StoragePath string
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("search.language", "en")
	viper.SetDefault("search.maxresults", 20)
	viper.SetDefault("storage.dbfile", "./biblio.db")

	// Get values from viper
	GoogleBooksAPIKey = viper.GetString("googlebooks.apikey")
	SearchLanguage = viper.GetString("search.language")
	MaxResults = viper.GetInt("search.maxresults")
	StoragePath = viper.GetString("storage.dbfile")
}

// SetStoragePath overrides the local store location (CLI flag)
func SetStoragePath(path string) {
	if path != "" {
		StoragePath = path
	}
}
