package database

import (
	"gorm.io/gorm"

	"github.com/mrlokans/shelfsync/internal/database/authors"
	"github.com/mrlokans/shelfsync/internal/database/books"
	"github.com/mrlokans/shelfsync/internal/services"
)

// UnitOfWork hands out repositories bound to one connection or transaction.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Books() services.BookStore {
	return books.NewRepository(u.db)
}

func (u *UnitOfWork) Authors() services.AuthorStore {
	return authors.NewRepository(u.db)
}

// Transaction runs fn against repositories sharing one transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (u *UnitOfWork) Transaction(fn func(uow services.UnitOfWork) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(&UnitOfWork{db: tx})
	})
}
