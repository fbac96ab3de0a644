package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mrlokans/shelfsync/internal/catalog"
	"github.com/mrlokans/shelfsync/internal/entities"
)

const entityBook = "book"

// BookService runs the book list/detail/create/edit/delete flows. Every
// write happens inside a single transaction.
type BookService struct {
	uow   UnitOfWork
	audit AuditLogger
}

// NewBookService creates a book service. audit may be nil.
func NewBookService(uow UnitOfWork, audit AuditLogger) *BookService {
	return &BookService{uow: uow, audit: audit}
}

// List returns every book projected one level deep.
func (s *BookService) List() ([]catalog.BookViewModel, error) {
	books, err := s.uow.Books().GetAllBooks()
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return catalog.ProjectBooks(books, catalog.DefaultDepth)
}

// Get returns one book projected one level deep, or catalog.ErrNotFound.
func (s *BookService) Get(id uuid.UUID) (catalog.BookViewModel, error) {
	book, err := s.uow.Books().GetBookByID(id)
	if err != nil {
		return catalog.BookViewModel{}, err
	}
	return catalog.ProjectBook(book, catalog.DefaultDepth)
}

// Candidates returns every author that can be linked to a book.
func (s *BookService) Candidates() ([]entities.Author, error) {
	authors, err := s.uow.Authors().ListAuthors()
	if err != nil {
		return nil, fmt.Errorf("list candidate authors: %w", err)
	}
	return authors, nil
}

// Create validates vm and inserts a new book linked to the selected
// authors. Any ID on vm is ignored; the new book always gets a fresh one.
func (s *BookService) Create(vm catalog.BookViewModel) (catalog.BookViewModel, error) {
	if err := catalog.ValidateBook(&vm); err != nil {
		return catalog.BookViewModel{}, err
	}
	vm.ID = uuid.Nil

	var created *entities.Book
	err := s.uow.Transaction(func(tx UnitOfWork) error {
		pool, err := tx.Authors().ListAuthors()
		if err != nil {
			return fmt.Errorf("load candidate authors: %w", err)
		}

		book := catalog.ResolveBook(vm, pool)
		if err := tx.Books().CreateBook(book); err != nil {
			return fmt.Errorf("create book: %w", err)
		}

		created, err = tx.Books().GetBookByID(book.ID)
		return err
	})
	if err != nil {
		return catalog.BookViewModel{}, err
	}

	if s.audit != nil {
		s.audit.LogCreate(entityBook, created.ID, created.Title)
	}
	return catalog.ProjectBook(created, catalog.DefaultDepth)
}

// Update applies vm to the book identified by routeID. The author set is
// replaced by vm.AuthorIDs resolved against all authors; unknown IDs are
// ignored. Returns catalog.ErrBadRequest when routeID and vm.ID differ and
// catalog.ErrNotFound when the book does not exist.
func (s *BookService) Update(routeID uuid.UUID, vm catalog.BookViewModel) (catalog.BookViewModel, error) {
	if routeID != vm.ID {
		return catalog.BookViewModel{}, fmt.Errorf("book id %s does not match payload id %s: %w", routeID, vm.ID, catalog.ErrBadRequest)
	}
	if err := catalog.ValidateBook(&vm); err != nil {
		return catalog.BookViewModel{}, err
	}

	var updated *entities.Book
	err := s.uow.Transaction(func(tx UnitOfWork) error {
		book, err := tx.Books().GetBookByID(routeID)
		if err != nil {
			return err
		}

		pool, err := tx.Authors().ListAuthors()
		if err != nil {
			return fmt.Errorf("load candidate authors: %w", err)
		}

		book.Title = vm.Title
		if _, err := catalog.ReconcileBookAuthors(book, vm.AuthorIDs, pool); err != nil {
			return err
		}
		if err := tx.Books().UpdateBook(book); err != nil {
			return err
		}

		updated, err = tx.Books().GetBookByID(routeID)
		return err
	})
	if err != nil {
		return catalog.BookViewModel{}, err
	}

	if s.audit != nil {
		s.audit.LogUpdate(entityBook, updated.ID, updated.Title, len(updated.Authors))
	}
	return catalog.ProjectBook(updated, catalog.DefaultDepth)
}

// Delete removes the book and its author links. Authors are kept.
func (s *BookService) Delete(id uuid.UUID) error {
	var deleted *entities.Book
	err := s.uow.Transaction(func(tx UnitOfWork) error {
		var err error
		deleted, err = tx.Books().DeleteBook(id)
		return err
	})
	if err != nil {
		return err
	}

	if s.audit != nil {
		s.audit.LogDelete(entityBook, deleted.ID, deleted.Title)
	}
	return nil
}
