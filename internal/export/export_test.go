package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/skoskinen/biblio/internal/shelf"
)

func sampleBooks() []shelf.SavedBook {
	added := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []shelf.SavedBook{
		{
			ID:        "d1",
			Title:     "Dune",
			Authors:   []string{"Frank Herbert"},
			Status:    shelf.StatusRead,
			DateAdded: added,
		},
		{
			ID:        "a1",
			Title:     "Anathem",
			Authors:   []string{"Neal Stephenson"},
			Status:    shelf.StatusWantToRead,
			DateAdded: added.AddDate(0, 0, 1),
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "json", want: FormatJSON},
		{input: "JSON", want: FormatJSON},
		{input: "yaml", want: FormatYAML},
		{input: "yml", want: FormatYAML},
		{input: " yaml ", want: FormatYAML},
		{input: "csv", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")

	written, err := Write(sampleBooks(), path, FormatJSON, false)
	require.NoError(t, err)
	assert.True(t, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []shelf.SavedBook
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, sampleBooks(), decoded)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.yaml")

	written, err := Write(sampleBooks(), path, FormatYAML, false)
	require.NoError(t, err)
	assert.True(t, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Dune", decoded[0]["title"])
}

func TestWriteSkipsExistingWithoutOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	written, err := Write(sampleBooks(), path, FormatJSON, false)
	require.NoError(t, err)
	assert.False(t, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestWriteOverwritesWhenAsked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	written, err := Write(sampleBooks(), path, FormatJSON, true)
	require.NoError(t, err)
	assert.True(t, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, "original", string(data))
}

func TestWriteCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "deep", "books.json")

	written, err := Write(sampleBooks(), path, FormatJSON, false)
	require.NoError(t, err)
	assert.True(t, written)
	assert.FileExists(t, path)
}

func TestWriteUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.out")

	_, err := Write(sampleBooks(), path, Format("xml"), false)
	require.Error(t, err)
	assert.NoFileExists(t, path)
}
