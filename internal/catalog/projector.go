package catalog

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mrlokans/shelfsync/internal/entities"
)

// ProjectBook converts a book into its view model. AuthorIDs always
// mirrors the loaded author set. Authors is filled only when depth > 0,
// each author projected at depth-1, so book and author views never expand
// into each other without bound.
func ProjectBook(book *entities.Book, depth int) (BookViewModel, error) {
	if book == nil {
		return BookViewModel{}, fmt.Errorf("project book: nil book: %w", ErrInvalidArgument)
	}

	vm := BookViewModel{
		ID:        book.ID,
		Title:     book.Title,
		AuthorIDs: AuthorIDs(book.Authors),
		Authors:   []AuthorViewModel{},
	}
	if depth <= 0 {
		return vm, nil
	}

	for i := range book.Authors {
		nested, err := ProjectAuthor(&book.Authors[i], depth-1)
		if err != nil {
			return BookViewModel{}, err
		}
		vm.Authors = append(vm.Authors, nested)
	}
	return vm, nil
}

// ProjectAuthor converts an author into its view model; see ProjectBook.
func ProjectAuthor(author *entities.Author, depth int) (AuthorViewModel, error) {
	if author == nil {
		return AuthorViewModel{}, fmt.Errorf("project author: nil author: %w", ErrInvalidArgument)
	}

	vm := AuthorViewModel{
		ID:      author.ID,
		Name:    author.Name,
		BookIDs: BookIDs(author.Books),
		Books:   []BookViewModel{},
	}
	if depth <= 0 {
		return vm, nil
	}

	for i := range author.Books {
		nested, err := ProjectBook(&author.Books[i], depth-1)
		if err != nil {
			return AuthorViewModel{}, err
		}
		vm.Books = append(vm.Books, nested)
	}
	return vm, nil
}

// ProjectBooks projects every book at the given depth.
func ProjectBooks(books []entities.Book, depth int) ([]BookViewModel, error) {
	vms := make([]BookViewModel, 0, len(books))
	for i := range books {
		vm, err := ProjectBook(&books[i], depth)
		if err != nil {
			return nil, err
		}
		vms = append(vms, vm)
	}
	return vms, nil
}

// ProjectAuthors projects every author at the given depth.
func ProjectAuthors(authors []entities.Author, depth int) ([]AuthorViewModel, error) {
	vms := make([]AuthorViewModel, 0, len(authors))
	for i := range authors {
		vm, err := ProjectAuthor(&authors[i], depth)
		if err != nil {
			return nil, err
		}
		vms = append(vms, vm)
	}
	return vms, nil
}

// ResolveBook builds a book entity from a view model. Authors are picked
// from available by vm.AuthorIDs; a zero ID gets a freshly generated one.
func ResolveBook(vm BookViewModel, available []entities.Author) *entities.Book {
	id := vm.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &entities.Book{
		ID:      id,
		Title:   vm.Title,
		Authors: SelectByIDs(available, vm.AuthorIDs, authorID),
	}
}

// ResolveAuthor builds an author entity from a view model; see ResolveBook.
func ResolveAuthor(vm AuthorViewModel, available []entities.Book) *entities.Author {
	id := vm.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &entities.Author{
		ID:    id,
		Name:  vm.Name,
		Books: SelectByIDs(available, vm.BookIDs, bookID),
	}
}
