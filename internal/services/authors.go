package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mrlokans/shelfsync/internal/catalog"
	"github.com/mrlokans/shelfsync/internal/entities"
)

const entityAuthor = "author"

// AuthorService mirrors BookService for the author side of the relation.
type AuthorService struct {
	uow   UnitOfWork
	audit AuditLogger
}

func NewAuthorService(uow UnitOfWork, audit AuditLogger) *AuthorService {
	return &AuthorService{uow: uow, audit: audit}
}

func (s *AuthorService) List() ([]catalog.AuthorViewModel, error) {
	authors, err := s.uow.Authors().GetAllAuthors()
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return catalog.ProjectAuthors(authors, catalog.DefaultDepth)
}

func (s *AuthorService) Get(id uuid.UUID) (catalog.AuthorViewModel, error) {
	author, err := s.uow.Authors().GetAuthorByID(id)
	if err != nil {
		return catalog.AuthorViewModel{}, err
	}
	return catalog.ProjectAuthor(author, catalog.DefaultDepth)
}

// Candidates returns every book that can be linked to an author.
func (s *AuthorService) Candidates() ([]entities.Book, error) {
	books, err := s.uow.Books().ListBooks()
	if err != nil {
		return nil, fmt.Errorf("list candidate books: %w", err)
	}
	return books, nil
}

func (s *AuthorService) Create(vm catalog.AuthorViewModel) (catalog.AuthorViewModel, error) {
	if err := catalog.ValidateAuthor(&vm); err != nil {
		return catalog.AuthorViewModel{}, err
	}
	vm.ID = uuid.Nil

	var created *entities.Author
	err := s.uow.Transaction(func(tx UnitOfWork) error {
		pool, err := tx.Books().ListBooks()
		if err != nil {
			return fmt.Errorf("load candidate books: %w", err)
		}

		author := catalog.ResolveAuthor(vm, pool)
		if err := tx.Authors().CreateAuthor(author); err != nil {
			return fmt.Errorf("create author: %w", err)
		}

		created, err = tx.Authors().GetAuthorByID(author.ID)
		return err
	})
	if err != nil {
		return catalog.AuthorViewModel{}, err
	}

	if s.audit != nil {
		s.audit.LogCreate(entityAuthor, created.ID, created.Name)
	}
	return catalog.ProjectAuthor(created, catalog.DefaultDepth)
}

func (s *AuthorService) Update(routeID uuid.UUID, vm catalog.AuthorViewModel) (catalog.AuthorViewModel, error) {
	if routeID != vm.ID {
		return catalog.AuthorViewModel{}, fmt.Errorf("author id %s does not match payload id %s: %w", routeID, vm.ID, catalog.ErrBadRequest)
	}
	if err := catalog.ValidateAuthor(&vm); err != nil {
		return catalog.AuthorViewModel{}, err
	}

	var updated *entities.Author
	err := s.uow.Transaction(func(tx UnitOfWork) error {
		author, err := tx.Authors().GetAuthorByID(routeID)
		if err != nil {
			return err
		}

		pool, err := tx.Books().ListBooks()
		if err != nil {
			return fmt.Errorf("load candidate books: %w", err)
		}

		author.Name = vm.Name
		if _, err := catalog.ReconcileAuthorBooks(author, vm.BookIDs, pool); err != nil {
			return err
		}
		if err := tx.Authors().UpdateAuthor(author); err != nil {
			return err
		}

		updated, err = tx.Authors().GetAuthorByID(routeID)
		return err
	})
	if err != nil {
		return catalog.AuthorViewModel{}, err
	}

	if s.audit != nil {
		s.audit.LogUpdate(entityAuthor, updated.ID, updated.Name, len(updated.Books))
	}
	return catalog.ProjectAuthor(updated, catalog.DefaultDepth)
}

// Delete removes the author and its book links. Books are kept.
func (s *AuthorService) Delete(id uuid.UUID) error {
	var deleted *entities.Author
	err := s.uow.Transaction(func(tx UnitOfWork) error {
		var err error
		deleted, err = tx.Authors().DeleteAuthor(id)
		return err
	})
	if err != nil {
		return err
	}

	if s.audit != nil {
		s.audit.LogDelete(entityAuthor, deleted.ID, deleted.Name)
	}
	return nil
}
