package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")

	// ErrReferenceMissing is returned when a foreign key points at a row that no longer exists.
	ErrReferenceMissing = errors.New("referenced record does not exist")

	// ErrUnknownKind is returned by the entity registry for kinds it has no table for.
	ErrUnknownKind = errors.New("unknown entity kind")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%w (%s): %v", ErrDuplicate, pqErr.Constraint, err)
		case pqForeignKeyViolation:
			return fmt.Errorf("%w (%s): %v", ErrReferenceMissing, pqErr.Constraint, err)
		}
	}

	return err
}

func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

func IsReferenceMissing(err error) bool {
	return errors.Is(err, ErrReferenceMissing)
}

// conn picks the transaction when one is in progress.
func conn(db *sqlx.DB, tx *sqlx.Tx) sqlx.ExtContext {
	if tx != nil {
		return tx
	}
	return db
}

// namedGet runs a named query and scans its first row into dest.
func namedGet(ctx context.Context, q sqlx.ExtContext, dest any, query string, arg any) error {
	rows, err := sqlx.NamedQueryContext(ctx, q, query, arg)
	if err != nil {
		return mapError(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return mapError(err)
		}
		return sql.ErrNoRows
	}

	if err := rows.StructScan(dest); err != nil {
		return err
	}

	return mapError(rows.Err())
}

// affected returns the number of rows changed by an exec.
func affected(result sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected()
}
