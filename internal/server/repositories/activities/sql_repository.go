package activities

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/srvtrack/internal/dbx"
	"github.com/dmitrijs2005/srvtrack/internal/server/models"
)

var columns = []string{"id", "server_id", "type", "description", "user_id", "created_at"}

type SQLRepository struct {
	db dbx.DBTX
	d  dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, d: d}
}

func (r *SQLRepository) Create(ctx context.Context, a *models.Activity) (*models.Activity, error) {
	id, err := dbx.InsertReturningID(ctx, r.db, r.d.Builder().
		Insert("activities").
		Columns("server_id", "type", "description", "user_id", "created_at").
		Values(dbx.NullInt64(a.ServerID), string(a.Type), a.Description, dbx.NullInt64(a.UserID), a.CreatedAt))
	if err != nil {
		return nil, err
	}
	a.ID = id
	return a, nil
}

func (r *SQLRepository) List(ctx context.Context, limit int) ([]*models.Activity, error) {
	b := r.d.Builder().Select(columns...).From("activities")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	return r.list(ctx, b)
}

func (r *SQLRepository) ListByServer(ctx context.Context, serverID int64) ([]*models.Activity, error) {
	return r.list(ctx, r.d.Builder().Select(columns...).From("activities").Where(sq.Eq{"server_id": serverID}))
}

func (r *SQLRepository) list(ctx context.Context, b sq.SelectBuilder) ([]*models.Activity, error) {
	query, args, err := b.OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select activities: %w", dbx.Classify(err))
	}
	defer rows.Close()

	var result []*models.Activity
	for rows.Next() {
		var a models.Activity
		var serverID, userID sql.NullInt64
		if err := rows.Scan(&a.ID, &serverID, (*string)(&a.Type), &a.Description, &userID, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.ServerID = dbx.Int64Ptr(serverID)
		a.UserID = dbx.Int64Ptr(userID)
		result = append(result, &a)
	}
	return result, rows.Err()
}
