package sqlite

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
)

// Repo is the shared base of the Squirrel-backed repositories: the database
// handle plus a statement builder using ? placeholders.
type Repo struct {
	DB *sql.DB
	SQ sq.StatementBuilderType
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db, SQ: sq.StatementBuilder}
}
