package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/oggyb/movie-social/internal/db"
	"github.com/oggyb/movie-social/internal/ownership"
	"github.com/oggyb/movie-social/internal/reaction"
)

// ListEntryRepository reads one of the four list tables. It never writes:
// list CRUD belongs to the list services.
type ListEntryRepository struct {
	db    *gorm.DB
	kind  reaction.Kind
	table string
}

// NewListEntryRepository binds a repository to the table behind kind.
func NewListEntryRepository(database *gorm.DB, kind reaction.Kind) (*ListEntryRepository, error) {
	table, ok := db.ListTable(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", reaction.ErrInvalidEntryKind, kind)
	}
	return &ListEntryRepository{db: database, kind: kind, table: table}, nil
}

func (r *ListEntryRepository) Kind() reaction.Kind { return r.kind }

// OwnerOf implements ownership.OwnerLookup.
// Returns ownership.ErrNoOwner when the entry does not exist.
func (r *ListEntryRepository) OwnerOf(ctx context.Context, entryID uint64) (string, error) {
	var owners []string
	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("id = ?", entryID).
		Limit(1).
		Pluck("user_id", &owners).Error
	if err != nil {
		return "", err
	}
	if len(owners) == 0 {
		return "", ownership.ErrNoOwner
	}
	return owners[0], nil
}

// ListByOwner returns an owner's entries in list order, at most limit rows.
// Top-10 lists are ordered by rank.
func (r *ListEntryRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]db.ListEntry, error) {
	order := "id ASC"
	if r.kind == reaction.KindTop10 {
		order = "`rank` ASC, id ASC"
	}

	var rows []db.ListEntry
	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("user_id = ?", ownerID).
		Order(order).
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// FindByIDs loads the entries with the given ids in one query. Ids with no
// row are absent from the result.
func (r *ListEntryRepository) FindByIDs(ctx context.Context, ids []uint64) ([]db.ListEntry, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []db.ListEntry
	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("id IN ?", ids).
		Find(&rows).Error
	return rows, err
}

// ListSet holds one ListEntryRepository per kind.
type ListSet map[reaction.Kind]*ListEntryRepository

// FindByIDs loads entries of kind keyed by id.
func (s ListSet) FindByIDs(ctx context.Context, kind reaction.Kind, ids []uint64) (map[uint64]db.ListEntry, error) {
	repo, ok := s[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", reaction.ErrInvalidEntryKind, kind)
	}
	rows, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uint64]db.ListEntry, len(rows))
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

// RegisterListLookups wires a ListEntryRepository for every kind into reg and
// returns them by kind.
func RegisterListLookups(reg *ownership.Registry, database *gorm.DB) (ListSet, error) {
	repos := make(ListSet, len(reaction.Kinds()))
	for _, kind := range reaction.Kinds() {
		repo, err := NewListEntryRepository(database, kind)
		if err != nil {
			return nil, err
		}
		reg.Register(kind, repo)
		repos[kind] = repo
	}
	return repos, nil
}
