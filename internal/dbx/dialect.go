package dbx

import sq "github.com/Masterminds/squirrel"

// Dialect describes the differences between the relational engines the
// durable backend can run on.
type Dialect struct {
	// Name identifies the dialect in configuration and logs.
	Name string
	// DriverName is the database/sql driver name.
	DriverName string
	// GooseDialect is passed to goose.SetDialect.
	GooseDialect string
	// Placeholder is the bind parameter style.
	Placeholder sq.PlaceholderFormat
}

var (
	Postgres = Dialect{Name: "postgres", DriverName: "pgx", GooseDialect: "postgres", Placeholder: sq.Dollar}
	SQLite   = Dialect{Name: "sqlite", DriverName: "sqlite", GooseDialect: "sqlite3", Placeholder: sq.Question}
)

// Builder returns a squirrel statement builder using the dialect's
// placeholder format.
func (d Dialect) Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.Placeholder)
}
