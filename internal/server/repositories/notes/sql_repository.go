package notes

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

var columns = []string{"id", "server_id", "note", "created_by", "created_at", "updated_at", "updated_by", "is_deleted"}

type SQLRepository struct {
	db dbx.DBTX
	d  dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, d: d}
}

func scanNote(row dbx.Scanner) (*models.ServerNote, error) {
	var n models.ServerNote
	var createdBy, updatedBy sql.NullInt64
	var updatedAt sql.NullTime
	if err := row.Scan(&n.ID, &n.ServerID, &n.Note, &createdBy, &n.CreatedAt, &updatedAt, &updatedBy, &n.IsDeleted); err != nil {
		return nil, err
	}
	n.CreatedBy = dbx.Int64Ptr(createdBy)
	n.UpdatedBy = dbx.Int64Ptr(updatedBy)
	n.UpdatedAt = dbx.TimePtr(updatedAt)
	return &n, nil
}

func (r *SQLRepository) Create(ctx context.Context, n *models.ServerNote) (*models.ServerNote, error) {
	id, err := dbx.InsertReturningID(ctx, r.db, r.d.Builder().
		Insert("server_notes").
		Columns("server_id", "note", "created_by", "created_at", "is_deleted").
		Values(n.ServerID, n.Note, dbx.NullInt64(n.CreatedBy), n.CreatedAt, n.IsDeleted))
	if err != nil {
		return nil, err
	}
	n.ID = id
	return n, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.ServerNote, error) {
	query, args, err := r.d.Builder().Select(columns...).From("server_notes").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	n, err := scanNote(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return n, nil
}

func (r *SQLRepository) ListByServer(ctx context.Context, serverID int64, includeDeleted bool) ([]*models.ServerNote, error) {
	where := sq.And{sq.Eq{"server_id": serverID}}
	if !includeDeleted {
		where = append(where, sq.Eq{"is_deleted": false})
	}
	query, args, err := r.d.Builder().Select(columns...).From("server_notes").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", dbx.Classify(err))
	}
	defer rows.Close()

	var result []*models.ServerNote
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

func (r *SQLRepository) Update(ctx context.Context, n *models.ServerNote) error {
	affected, err := dbx.Exec(ctx, r.db, r.d.Builder().
		Update("server_notes").
		Set("note", n.Note).
		Set("updated_at", dbx.NullTime(n.UpdatedAt)).
		Set("updated_by", dbx.NullInt64(n.UpdatedBy)).
		Set("is_deleted", n.IsDeleted).
		Where(sq.Eq{"id": n.ID}))
	if err != nil {
		return err
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) DeleteByServer(ctx context.Context, serverID int64) (int64, error) {
	return dbx.Exec(ctx, r.db, r.d.Builder().Delete("server_notes").Where(sq.Eq{"server_id": serverID}))
}
