package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/skoskinen/biblio/internal/catalog"
	"github.com/skoskinen/biblio/internal/config"
	"github.com/skoskinen/biblio/internal/search"
	"github.com/skoskinen/biblio/internal/trending"
)

var fetchTrending = trending.Fetch

// SearchCmd represents the search command. It commits the query through
// the live search session, so a run always reflects the service rather
// than the response cache.
type SearchCmd struct {
	Query       []string `arg:"" help:"Search terms"`
	MaxResults  int      `short:"n" help:"Maximum number of results (defaults to search.maxresults)"`
	JSON        bool     `help:"Print results as JSON"`
	Interactive bool     `short:"i" help:"Pick a result and save it to the shelf"`
}

func (s *SearchCmd) Run() error {
	query := strings.Join(s.Query, " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search query is required")
	}

	maxResults := s.MaxResults
	if maxResults <= 0 {
		maxResults = config.MaxResults
	}

	ctrl := search.NewController(newCatalogClient(), search.WithMaxResults(maxResults))
	defer ctrl.Close()

	ctrl.Commit(query)
	ctrl.Flush()

	session := ctrl.Snapshot()
	if session.Status == search.StatusFailed {
		return fmt.Errorf("search failed: %s", session.Err)
	}

	if s.Interactive {
		return saveInteractively(query, session.Results)
	}

	if s.JSON {
		return printJSON(session.Results)
	}

	if len(session.Results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	printBooks(session.Results)
	return nil
}

// SuggestCmd represents the suggest command. It runs the partial input
// through the live suggestion pipeline and prints what an autocomplete
// dropdown would show.
type SuggestCmd struct {
	Query []string `arg:"" help:"Partial search input"`
	JSON  bool     `help:"Print suggestions as JSON"`
}

func (s *SuggestCmd) Run() error {
	text := strings.Join(s.Query, " ")

	ctrl := search.NewController(newCatalogClient())
	defer ctrl.Close()

	ctrl.Type(text)
	ctrl.Flush()

	session := ctrl.Snapshot()

	if s.JSON {
		return printJSON(session.Suggestions)
	}

	if len(session.Suggestions) == 0 {
		fmt.Println("No suggestions.")
		return nil
	}
	for _, suggestion := range session.Suggestions {
		fmt.Println(suggestion)
	}
	return nil
}

// TrendingCmd represents the trending command
type TrendingCmd struct {
	JSON bool `help:"Print books as JSON"`
}

func (t *TrendingCmd) Run() error {
	books, err := fetchTrending(context.Background(), newCatalogClient())
	if err != nil {
		return err
	}

	if t.JSON {
		return printJSON(books)
	}

	if len(books) == 0 {
		fmt.Println("Nothing trending right now.")
		return nil
	}

	printBooks(books)
	return nil
}

func printBooks(books []catalog.Book) {
	for _, book := range books {
		author := book.PrimaryAuthor()
		if author == "" {
			author = "Unknown author"
		}
		fmt.Printf("%-14s %-40s %s\n", book.ID, book.Title, author)
	}
}

func printJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
