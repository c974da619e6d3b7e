package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func resetConfig(t *testing.T) {
	t.Helper()

	origKey := GoogleBooksAPIKey
	origLang := SearchLanguage
	origMax := MaxResults
	origStorage := StoragePath

	t.Cleanup(func() {
		GoogleBooksAPIKey = origKey
		SearchLanguage = origLang
		MaxResults = origMax
		StoragePath = origStorage
		viper.Reset()
	})

	viper.Reset()
}

func TestInitConfigDefaults(t *testing.T) {
	resetConfig(t)

	InitConfig()

	assert.Empty(t, GoogleBooksAPIKey)
	assert.Equal(t, "en", SearchLanguage)
	assert.Equal(t, 20, MaxResults)
	assert.Equal(t, "./biblio.db", StoragePath)
}

func TestInitConfigReadsViper(t *testing.T) {
	resetConfig(t)

	viper.Set("googlebooks.apikey", "secret")
	viper.Set("search.language", "fi")
	viper.Set("search.maxresults", 10)
	viper.Set("storage.dbfile", "/tmp/books.db")

	InitConfig()

	assert.Equal(t, "secret", GoogleBooksAPIKey)
	assert.Equal(t, "fi", SearchLanguage)
	assert.Equal(t, 10, MaxResults)
	assert.Equal(t, "/tmp/books.db", StoragePath)
}

func TestSetStoragePath(t *testing.T) {
	resetConfig(t)

	StoragePath = "./biblio.db"

	SetStoragePath("/tmp/override.db")
	assert.Equal(t, "/tmp/override.db", StoragePath)

	// Empty path keeps the current value
	SetStoragePath("")
	assert.Equal(t, "/tmp/override.db", StoragePath)
}
