package repository

import (
	"io"
	"testing"

	"github.com/cradoe/crm/assets"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/require"
)

func readUp(t *testing.T, version uint) string {
	t.Helper()

	src, err := iofs.New(assets.EmbeddedFiles, "migrations")
	require.NoError(t, err)
	defer src.Close()

	r, _, err := src.ReadUp(version)
	require.NoError(t, err)
	defer r.Close()

	body, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(body)
}

func TestMigrationsArePaired(t *testing.T) {
	src, err := iofs.New(assets.EmbeddedFiles, "migrations")
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)

	count := 0
	for {
		up, _, err := src.ReadUp(version)
		require.NoError(t, err, "version %d has no up migration", version)
		up.Close()

		down, _, err := src.ReadDown(version)
		require.NoError(t, err, "version %d has no down migration", version)
		down.Close()

		count++
		next, err := src.Next(version)
		if err != nil {
			break
		}
		version = next
	}

	require.Equal(t, 8, count)
}

func TestUniqueNamesWithoutAccount(t *testing.T) {
	require.Contains(t, readUp(t, 5), "ON opportunities (name)\n    WHERE account_id IS NULL")
	require.Contains(t, readUp(t, 3), "WHERE deleted_at IS NULL AND email IS NOT NULL AND account_id IS NULL")
}
