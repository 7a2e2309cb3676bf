package dbx

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Exec renders b, executes it and returns the number of affected rows.
func Exec(ctx context.Context, db DBTX, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

// InsertReturningID appends RETURNING id to b, runs it and scans the
// generated id.
func InsertReturningID(ctx context.Context, db DBTX, b sq.InsertBuilder) (int64, error) {
	query, args, err := b.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", Classify(err))
	}
	return id, nil
}
