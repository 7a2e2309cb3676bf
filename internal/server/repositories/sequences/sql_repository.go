package sequences

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/srvtrack/internal/dbx"
)

// SQLRepository reads PostgreSQL sequence objects (<name>_seq) via nextval.
// SQLite has no sequences; there a row of the sequences table is
// incremented instead.
type SQLRepository struct {
	db dbx.DBTX
	d  dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, d: d}
}

func (r *SQLRepository) Next(ctx context.Context, name string) (int64, error) {
	var (
		query string
		args  []any
		err   error
	)
	if r.d.Name == dbx.Postgres.Name {
		query, args, err = r.d.Builder().Select().Column(sq.Expr("nextval(?::regclass)", name+"_seq")).ToSql()
	} else {
		query, args, err = r.d.Builder().
			Update("sequences").
			Set("value", sq.Expr("value + 1")).
			Where(sq.Eq{"name": name}).
			Suffix("RETURNING value").
			ToSql()
	}
	if err != nil {
		return 0, err
	}

	var v int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&v); err != nil {
		return 0, fmt.Errorf("sequence %s: %w", name, dbx.Classify(err))
	}
	return v, nil
}
