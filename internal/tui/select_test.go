package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skoskinen/biblio/internal/catalog"
)

func testBooks() []catalog.Book {
	return []catalog.Book{
		{
			ID:        "d1",
			Title:     "Dune",
			Authors:   []string{"Frank Herbert"},
			Thumbnail: "https://books.example/dune.jpg",
		},
		{
			ID:      "a1",
			Title:   "Anathem",
			Authors: []string{"Neal Stephenson"},
		},
		{
			// Untitled entries should never reach the list.
			ID: "x1",
		},
	}
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{}
}

// driveProgram replaces runProgram with one that feeds the given keys
// directly to the model.
func driveProgram(t *testing.T, keys ...string) {
	t.Helper()

	original := runProgram
	runProgram = func(m tea.Model) (tea.Model, error) {
		current := m
		for _, key := range keys {
			current, _ = current.Update(keyMsg(key))
		}
		return current, nil
	}
	t.Cleanup(func() { runProgram = original })
}

func TestSelectEnterPicksHighlightedBook(t *testing.T) {
	driveProgram(t, "enter")

	result, err := Select("dune", testBooks())
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}

	if result.Action != ActionSelected {
		t.Fatalf("expected ActionSelected, got %v", result.Action)
	}
	if result.Selection == nil || result.Selection.ID != "d1" {
		t.Errorf("expected first book selected, got %+v", result.Selection)
	}
}

func TestSelectNavigateThenEnter(t *testing.T) {
	driveProgram(t, "j", "enter")

	result, err := Select("dune", testBooks())
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}

	if result.Action != ActionSelected {
		t.Fatalf("expected ActionSelected, got %v", result.Action)
	}
	if result.Selection == nil || result.Selection.ID != "a1" {
		t.Errorf("expected second book selected, got %+v", result.Selection)
	}
}

func TestSelectSkip(t *testing.T) {
	for _, key := range []string{"s", "esc"} {
		driveProgram(t, key)

		result, err := Select("dune", testBooks())
		if err != nil {
			t.Fatalf("Select returned error: %v", err)
		}
		if result.Action != ActionSkipped {
			t.Errorf("key %q: expected ActionSkipped, got %v", key, result.Action)
		}
		if result.Selection != nil {
			t.Errorf("key %q: expected nil selection", key)
		}
	}
}

func TestSelectStop(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		driveProgram(t, key)

		result, err := Select("dune", testBooks())
		if err != nil {
			t.Fatalf("Select returned error: %v", err)
		}
		if result.Action != ActionStopped {
			t.Errorf("key %q: expected ActionStopped, got %v", key, result.Action)
		}
	}
}

func TestSelectAllUntitledSkips(t *testing.T) {
	books := []catalog.Book{{ID: "x1"}, {ID: "x2"}}

	result, err := Select("dune", books)
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if result.Action != ActionSkipped {
		t.Errorf("expected ActionSkipped for untitled-only results, got %v", result.Action)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"short", 72, "short"},
		{"a  collapsed   string", 72, "a collapsed string"},
		{"a very long title that keeps going", 10, "a very ..."},
		{"abcdef", 3, "abc"},
		{"anything", 0, "anything"},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
	}
}
