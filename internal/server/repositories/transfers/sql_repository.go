package transfers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/srvtrack/internal/common"
	"github.com/dmitrijs2005/srvtrack/internal/dbx"
	"github.com/dmitrijs2005/srvtrack/internal/server/models"
)

var columns = []string{
	"id", "server_id", "from_location_id", "to_location_id",
	"transferred_by", "transfer_date", "notes", "created_at",
}

type SQLRepository struct {
	db dbx.DBTX
	d  dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, d: d}
}

func scanTransfer(row dbx.Scanner) (*models.ServerTransfer, error) {
	var t models.ServerTransfer
	var from, by sql.NullInt64
	if err := row.Scan(&t.ID, &t.ServerID, &from, &t.ToLocationID, &by, &t.TransferDate, &t.Notes, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.FromLocationID = dbx.Int64Ptr(from)
	t.TransferredBy = dbx.Int64Ptr(by)
	return &t, nil
}

func (r *SQLRepository) Create(ctx context.Context, t *models.ServerTransfer) (*models.ServerTransfer, error) {
	id, err := dbx.InsertReturningID(ctx, r.db, r.d.Builder().
		Insert("server_transfers").
		Columns("server_id", "from_location_id", "to_location_id", "transferred_by", "transfer_date", "notes", "created_at").
		Values(t.ServerID, dbx.NullInt64(t.FromLocationID), t.ToLocationID, dbx.NullInt64(t.TransferredBy),
			t.TransferDate, t.Notes, t.CreatedAt))
	if err != nil {
		return nil, err
	}
	t.ID = id
	return t, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.ServerTransfer, error) {
	query, args, err := r.d.Builder().Select(columns...).From("server_transfers").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	t, err := scanTransfer(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return t, nil
}

func (r *SQLRepository) list(ctx context.Context, b sq.SelectBuilder) ([]*models.ServerTransfer, error) {
	query, args, err := b.OrderBy("transfer_date DESC", "id DESC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select transfers: %w", dbx.Classify(err))
	}
	defer rows.Close()

	var result []*models.ServerTransfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (r *SQLRepository) ListByServer(ctx context.Context, serverID int64) ([]*models.ServerTransfer, error) {
	return r.list(ctx, r.d.Builder().Select(columns...).From("server_transfers").Where(sq.Eq{"server_id": serverID}))
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.ServerTransfer, error) {
	return r.list(ctx, r.d.Builder().Select(columns...).From("server_transfers"))
}

func (r *SQLRepository) DeleteByServer(ctx context.Context, serverID int64) (int64, error) {
	return dbx.Exec(ctx, r.db, r.d.Builder().Delete("server_transfers").Where(sq.Eq{"server_id": serverID}))
}
