package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/mrlokans/shelfsync/internal/entities"
)

// ParseIDs converts submitted identifier strings into UUIDs. Blank and
// malformed values are dropped, the same way unknown identifiers are
// dropped during reconciliation.
func ParseIDs(raw []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		id, err := uuid.Parse(s)
		if err != nil || id == uuid.Nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// NormalizeIDs resolves an absent list to an empty one and collapses
// duplicates, keeping first-seen order.
func NormalizeIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return []uuid.UUID{}
	}
	return lo.Uniq(ids)
}

// BookIDs returns the identifiers of books in the order given.
func BookIDs(books []entities.Book) []uuid.UUID {
	return lo.Map(books, func(b entities.Book, _ int) uuid.UUID { return b.ID })
}

// AuthorIDs returns the identifiers of authors in the order given.
func AuthorIDs(authors []entities.Author) []uuid.UUID {
	return lo.Map(authors, func(a entities.Author, _ int) uuid.UUID { return a.ID })
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	return lo.Contains(ids, id)
}
