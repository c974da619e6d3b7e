package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/skoskinen/biblio/internal/catalog"
	"github.com/skoskinen/biblio/internal/config"
	"github.com/skoskinen/biblio/internal/covers"
	"github.com/skoskinen/biblio/internal/export"
	"github.com/skoskinen/biblio/internal/shelf"
	"github.com/skoskinen/biblio/internal/tui"
)

var selectBook = tui.Select

// ShelfCmd represents the shelf command and its subcommands
type ShelfCmd struct {
	List   ShelfListCmd   `cmd:"" help:"List saved books"`
	Add    ShelfAddCmd    `cmd:"" help:"Search the catalog and save a book"`
	Remove ShelfRemoveCmd `cmd:"" help:"Remove a book from the shelf"`
	Status ShelfStatusCmd `cmd:"" help:"Change the reading status of a saved book"`
	Export ShelfExportCmd `cmd:"" help:"Export the shelf to a file"`
	Covers ShelfCoversCmd `cmd:"" help:"Download cover images for saved books"`
}

// ShelfListCmd lists the shelf, optionally filtered and sorted.
type ShelfListCmd struct {
	Status string `short:"s" help:"Filter by status: want-to-read, currently-reading, read"`
	Sort   string `help:"Sort order" default:"date-added-desc" enum:"title-asc,title-desc,author-asc,author-desc,date-added-asc,date-added-desc"`
	JSON   bool   `help:"Print books as JSON"`
}

func (l *ShelfListCmd) Run() error {
	var filter shelf.Status
	if l.Status != "" {
		parsed, err := shelf.ParseStatus(l.Status)
		if err != nil {
			return err
		}
		filter = parsed
	}

	sortKey, err := shelf.ParseSortKey(l.Sort)
	if err != nil {
		return err
	}

	books, closeStore, err := openShelf()
	if err != nil {
		return err
	}
	defer closeStore()

	listed := shelf.SortBooks(books.List(filter), sortKey)

	if l.JSON {
		return printJSON(listed)
	}

	if len(listed) == 0 {
		fmt.Println("Shelf is empty.")
		return nil
	}
	for _, book := range listed {
		author := book.PrimaryAuthor()
		if author == "" {
			author = "Unknown author"
		}
		fmt.Printf("%-14s %-20s %-40s %s\n", book.ID, book.Status, book.Title, author)
	}
	return nil
}

// ShelfAddCmd searches the catalog and saves one result to the shelf.
type ShelfAddCmd struct {
	Query       []string `arg:"" help:"Search terms"`
	Interactive bool     `short:"i" help:"Pick the result to save instead of taking the first match"`
}

func (a *ShelfAddCmd) Run() error {
	query := strings.Join(a.Query, " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search query is required")
	}

	result, err := newCatalogClient().CachedSearch(context.Background(), query, config.MaxResults)
	if err != nil {
		return err
	}

	if a.Interactive {
		return saveInteractively(query, result.Books)
	}

	if len(result.Books) == 0 {
		return fmt.Errorf("no catalog results for %q", query)
	}
	return saveToShelf(result.Books[0])
}

// saveInteractively runs the picker over books and saves the chosen one.
func saveInteractively(query string, books []catalog.Book) error {
	selection, err := selectBook(query, books)
	if err != nil {
		return err
	}
	if selection.Action != tui.ActionSelected {
		fmt.Println("Nothing saved.")
		return nil
	}
	return saveToShelf(*selection.Selection)
}

func saveToShelf(book catalog.Book) error {
	books, closeStore, err := openShelf()
	if err != nil {
		return err
	}
	defer closeStore()

	if books.Save(book) {
		fmt.Printf("Saved %q to the shelf.\n", book.Title)
	} else {
		fmt.Printf("%q is already on the shelf.\n", book.Title)
	}
	return nil
}

// ShelfRemoveCmd removes a saved book by ID.
type ShelfRemoveCmd struct {
	ID string `arg:"" help:"Book ID to remove"`
}

func (r *ShelfRemoveCmd) Run() error {
	books, closeStore, err := openShelf()
	if err != nil {
		return err
	}
	defer closeStore()

	if !books.Remove(r.ID) {
		return fmt.Errorf("no saved book with ID %q", r.ID)
	}
	fmt.Println("Removed.")
	return nil
}

// ShelfStatusCmd changes the reading status of a saved book.
type ShelfStatusCmd struct {
	ID     string `arg:"" help:"Book ID"`
	Status string `arg:"" help:"New status: want-to-read, currently-reading, read"`
}

func (s *ShelfStatusCmd) Run() error {
	status, err := shelf.ParseStatus(s.Status)
	if err != nil {
		return err
	}

	books, closeStore, err := openShelf()
	if err != nil {
		return err
	}
	defer closeStore()

	if !books.SetStatus(s.ID, status) {
		return fmt.Errorf("no saved book with ID %q", s.ID)
	}
	fmt.Println("Status updated.")
	return nil
}

// ShelfExportCmd writes the shelf to a JSON or YAML file.
type ShelfExportCmd struct {
	Output    string `short:"o" help:"Output file path (defaults to shelf.<format>)"`
	Format    string `help:"Export format" default:"json" enum:"json,yaml,yml"`
	Overwrite bool   `help:"Overwrite the output file if it exists"`
}

func (e *ShelfExportCmd) Run() error {
	format, err := export.ParseFormat(e.Format)
	if err != nil {
		return err
	}

	output := e.Output
	if output == "" {
		output = "shelf." + string(format)
	}

	books, closeStore, err := openShelf()
	if err != nil {
		return err
	}
	defer closeStore()

	listed := shelf.SortBooks(books.List(""), shelf.SortDateAddedAsc)

	written, err := export.Write(listed, output, format, e.Overwrite)
	if err != nil {
		return err
	}
	if !written {
		return fmt.Errorf("%s already exists, use --overwrite to replace it", output)
	}

	fmt.Printf("Exported %d books to %s\n", len(listed), output)
	return nil
}

// ShelfCoversCmd downloads cover thumbnails for every saved book.
type ShelfCoversCmd struct {
	Dir      string `help:"Directory for cover images (defaults to covers.dir)"`
	MaxWidth int    `help:"Maximum stored image width (defaults to covers.maxwidth)"`
	Update   bool   `help:"Re-download covers that already exist"`
}

func (c *ShelfCoversCmd) Run() error {
	dir := c.Dir
	if dir == "" {
		dir = viper.GetString("covers.dir")
	}
	maxWidth := c.MaxWidth
	if maxWidth <= 0 {
		maxWidth = viper.GetInt("covers.maxwidth")
	}

	books, closeStore, err := openShelf()
	if err != nil {
		return err
	}
	defer closeStore()

	downloader := covers.New(dir,
		covers.WithMaxWidth(maxWidth),
		covers.WithUpdate(c.Update),
	)

	downloaded, skipped, failed := 0, 0, 0
	for _, book := range books.List("") {
		result, err := downloader.Fetch(book.ID, book.Thumbnail)
		if err != nil {
			fmt.Printf("failed to fetch cover for %q: %v\n", book.Title, err)
			failed++
			continue
		}
		if result == nil || !result.Downloaded {
			skipped++
			continue
		}
		downloaded++
	}

	fmt.Printf("Covers: %d downloaded, %d skipped, %d failed\n", downloaded, skipped, failed)
	return nil
}
