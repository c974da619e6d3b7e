package catalog

// Book is a single catalog search hit, flattened from the volume JSON.
// It is never mutated after construction; a new search replaces the whole
// slice.
type Book struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	PreviewLink string   `json:"previewLink,omitempty"`
}

// PrimaryAuthor returns the first listed author, or "" when none is known.
func (b Book) PrimaryAuthor() string {
	if len(b.Authors) == 0 {
		return ""
	}
	return b.Authors[0]
}

// Result is the outcome of a successful catalog search. TotalItems is the
// raw count reported by the service, which may exceed len(Books).
type Result struct {
	Books      []Book `json:"books"`
	TotalItems int    `json:"totalItems"`
}

// volumesResponse mirrors the wire format of the volumes endpoint.
// A response without "items" is a valid zero-result success.
type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title       string     `json:"title"`
	Authors     []string   `json:"authors"`
	PreviewLink string     `json:"previewLink"`
	ImageLinks  imageLinks `json:"imageLinks"`
}

type imageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

func (v volume) toBook() Book {
	thumb := v.VolumeInfo.ImageLinks.Thumbnail
	if thumb == "" {
		thumb = v.VolumeInfo.ImageLinks.SmallThumbnail
	}
	return Book{
		ID:          v.ID,
		Title:       v.VolumeInfo.Title,
		Authors:     v.VolumeInfo.Authors,
		Thumbnail:   thumb,
		PreviewLink: v.VolumeInfo.PreviewLink,
	}
}
