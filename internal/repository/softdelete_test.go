package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cradoe/crm/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

const (
	testContactID = "0b6f1e9a-2c3d-4e5f-8a9b-0c1d2e3f4a5b"
	testTicketID  = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func TestContactReadsSkipDeletedRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectQuery(`WHERE c\.id = \$1 AND c\.deleted_at IS NULL`).
		WithArgs(testContactID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	contact, found, err := repo.GetOne(context.Background(), testContactID)
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, contact)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM contacts WHERE deleted_at IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`WHERE c\.deleted_at IS NULL\s+ORDER BY`).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	contacts, total, err := repo.List(context.Background(), models.NewPage(1, 20))
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, contacts)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactSoftDeleteKeepsRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectExec(`UPDATE contacts SET deleted_at = NOW\(\) WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs(testContactID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.SoftDelete(context.Background(), testContactID)

	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketReadsSkipDeletedRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTicketRepository(db)

	mock.ExpectQuery(`WHERE t\.id = \$1 AND t\.deleted_at IS NULL`).
		WithArgs(testTicketID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, found, err := repo.GetOne(context.Background(), testTicketID)
	require.NoError(t, err)
	require.False(t, found)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tickets WHERE deleted_at IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`WHERE t\.deleted_at IS NULL\s+ORDER BY`).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err = repo.List(context.Background(), models.NewPage(1, 20))
	require.NoError(t, err)

	mock.ExpectExec(`UPDATE tickets SET deleted_at = NOW\(\) WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs(testTicketID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.SoftDelete(context.Background(), testTicketID)
	require.NoError(t, err)
	require.Zero(t, n)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistryExists(t *testing.T) {
	tests := []struct {
		name  string
		kind  models.EntityKind
		id    string
		query string
		arg   string
	}{
		{"soft deleted contacts are absent", models.KindContact, testContactID,
			`SELECT EXISTS\(SELECT 1 FROM contacts WHERE id = \$1 AND deleted_at IS NULL\)`, testContactID},
		{"soft deleted tickets are absent", models.KindTicket, " " + testTicketID + " ",
			`SELECT EXISTS\(SELECT 1 FROM tickets WHERE id = \$1 AND deleted_at IS NULL\)`, testTicketID},
		{"accounts are hard deleted", models.KindAccount, "6F1C2B7E-3D4A-4C8E-9B2F-1A2B3C4D5E6F",
			`SELECT EXISTS\(SELECT 1 FROM accounts WHERE id = \$1\)`, "6f1c2b7e-3d4a-4c8e-9b2f-1a2b3c4d5e6f"},
		{"lead ids are integers", models.KindLead, "042",
			`SELECT EXISTS\(SELECT 1 FROM leads WHERE id = \$1\)`, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			reg := NewEntityRegistry(db)

			mock.ExpectQuery(tt.query).
				WithArgs(tt.arg).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

			exists, err := reg.Exists(context.Background(), tt.kind, tt.id)

			require.NoError(t, err)
			require.True(t, exists)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistryExists_MalformedIDSkipsQuery(t *testing.T) {
	db, mock := newMockDB(t)
	reg := NewEntityRegistry(db)

	exists, err := reg.Exists(context.Background(), models.KindLead, "abc")

	require.NoError(t, err)
	require.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistryDescribe_DeletedTicketHasNoLabel(t *testing.T) {
	db, mock := newMockDB(t)
	reg := NewEntityRegistry(db)

	mock.ExpectQuery(`SELECT title FROM tickets WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs(testTicketID).
		WillReturnRows(sqlmock.NewRows([]string{"title"}))

	related, err := reg.Describe(context.Background(), models.KindTicket, testTicketID)

	require.NoError(t, err)
	require.Equal(t, models.KindTicket, related.Kind)
	require.Empty(t, related.Label)
	require.NoError(t, mock.ExpectationsWereMet())
}
