package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrConflict         = errors.New("record already exists")
	ErrHasDependents    = errors.New("record is still referenced")
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// Postgres SQLSTATE codes mapped to the sentinel errors above.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps driver errors onto the package sentinels. onForeignKey picks the
// sentinel for a foreign key violation, which depends on the direction of the statement.
func translate(err error, onForeignKey error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrConflict
		case pgForeignKeyViolation:
			if onForeignKey != nil {
				return onForeignKey
			}
		}
	}
	return err
}
