package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cradoe/crm/internal/models"
	"github.com/jmoiron/sqlx"
)

type entityTable struct {
	table string
	// label is the SQL expression used to describe a row to humans
	label      string
	softDelete bool
}

var entityTables = map[models.EntityKind]entityTable{
	models.KindUser:        {table: "users", label: "name"},
	models.KindLead:        {table: "leads", label: "first_name || ' ' || last_name"},
	models.KindOpportunity: {table: "opportunities", label: "name"},
	models.KindAccount:     {table: "accounts", label: "name"},
	models.KindContact:     {table: "contacts", label: "first_name || ' ' || last_name", softDelete: true},
	models.KindProject:     {table: "projects", label: "name"},
	models.KindTicket:      {table: "tickets", label: "title", softDelete: true},
}

// EntityRegistry answers "does this record exist" for every kind of record
// without the caller knowing which table backs it.
type EntityRegistry struct {
	db *sqlx.DB
}

func NewEntityRegistry(db *sqlx.DB) *EntityRegistry {
	return &EntityRegistry{db: db}
}

func lookup(kind models.EntityKind) (entityTable, error) {
	t, ok := entityTables[kind]
	if !ok {
		return entityTable{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return t, nil
}

func (t entityTable) where() string {
	if t.softDelete {
		return "id = $1 AND deleted_at IS NULL"
	}
	return "id = $1"
}

// Exists treats an id that cannot be a key of kind (say "abc" for a lead) as absent.
func (reg *EntityRegistry) Exists(ctx context.Context, kind models.EntityKind, id string) (bool, error) {
	t, err := lookup(kind)
	if err != nil {
		return false, err
	}

	canonical, ok := kind.CanonicalID(id)
	if !ok {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var exists bool

	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s)`, t.table, t.where())

	if err := reg.db.GetContext(ctx, &exists, query, canonical); err != nil {
		return false, err
	}

	return exists, nil
}

// Describe resolves the label of a record. A record that no longer exists is
// returned without a label rather than as an error.
func (reg *EntityRegistry) Describe(ctx context.Context, kind models.EntityKind, id string) (*models.RelatedEntity, error) {
	t, err := lookup(kind)
	if err != nil {
		return nil, err
	}

	related := &models.RelatedEntity{Kind: kind, ID: id}

	canonical, ok := kind.CanonicalID(id)
	if !ok {
		return related, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s`, t.label, t.table, t.where())

	err = reg.db.GetContext(ctx, &related.Label, query, canonical)
	if errors.Is(err, sql.ErrNoRows) {
		return related, nil
	}
	if err != nil {
		return nil, err
	}

	return related, nil
}
