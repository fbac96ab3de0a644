package http

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mrlokans/shelfsync/internal/catalog"
	"github.com/mrlokans/shelfsync/internal/entities"
)

// bookForm is the posted create/edit form for a book. IDs arrive as
// strings so a malformed value can be dropped rather than failing the
// whole bind.
type bookForm struct {
	ID        string   `form:"id"`
	Title     string   `form:"title"`
	AuthorIDs []string `form:"author_ids"`
}

func (f bookForm) viewModel() catalog.BookViewModel {
	return catalog.BookViewModel{
		ID:        parseFormID(f.ID),
		Title:     f.Title,
		AuthorIDs: catalog.ParseIDs(f.AuthorIDs),
	}
}

type authorForm struct {
	ID      string   `form:"id"`
	Name    string   `form:"name"`
	BookIDs []string `form:"book_ids"`
}

func (f authorForm) viewModel() catalog.AuthorViewModel {
	return catalog.AuthorViewModel{
		ID:      parseFormID(f.ID),
		Name:    f.Name,
		BookIDs: catalog.ParseIDs(f.BookIDs),
	}
}

// parseFormID returns uuid.Nil for a blank or malformed id field.
func parseFormID(raw string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// option is one entry of a multi-select list.
type option struct {
	ID       uuid.UUID
	Label    string
	Selected bool
}

func authorOptions(pool []entities.Author, vm catalog.BookViewModel) []option {
	options := make([]option, 0, len(pool))
	for _, a := range pool {
		options = append(options, option{ID: a.ID, Label: a.Name, Selected: vm.HasAuthor(a.ID)})
	}
	return options
}

func bookOptions(pool []entities.Book, vm catalog.AuthorViewModel) []option {
	options := make([]option, 0, len(pool))
	for _, b := range pool {
		options = append(options, option{ID: b.ID, Label: b.Title, Selected: vm.HasBook(b.ID)})
	}
	return options
}
