package servers

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

const table = "servers"

var columns = []string{
	"id", "server_id", "model", "specs", "location_id", "status",
	"ip_address", "username", "password", "created_at", "updated_at",
}

// SQLRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db dbx.DBTX
	d  dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, d: d}
}

func scanServer(row dbx.Scanner) (*models.Server, error) {
	var s models.Server
	var location sql.NullInt64
	err := row.Scan(&s.ID, &s.ServerID, &s.Model, &s.Specs, &location, (*string)(&s.Status),
		&s.IPAddress, &s.Username, &s.Password, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.LocationID = dbx.Int64Ptr(location)
	return &s, nil
}

func (r *SQLRepository) Create(ctx context.Context, s *models.Server) (*models.Server, error) {
	query, args, err := r.d.Builder().
		Insert(table).
		Columns("server_id", "model", "specs", "location_id", "status",
			"ip_address", "username", "password", "created_at", "updated_at").
		Values(s.ServerID, s.Model, s.Specs, dbx.NullInt64(s.LocationID), string(s.Status),
			s.IPAddress, s.Username, s.Password, s.CreatedAt, s.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, err
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return s, nil
}

func (r *SQLRepository) getOne(ctx context.Context, where sq.Eq) (*models.Server, error) {
	query, args, err := r.d.Builder().Select(columns...).From(table).Where(where).ToSql()
	if err != nil {
		return nil, err
	}

	s, err := scanServer(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return s, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Server, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *SQLRepository) GetBySerial(ctx context.Context, serverID string) (*models.Server, error) {
	return r.getOne(ctx, sq.Eq{"server_id": serverID})
}

func (r *SQLRepository) list(ctx context.Context, where sq.Sqlizer) ([]*models.Server, error) {
	b := r.d.Builder().Select(columns...).From(table).OrderBy("id")
	if where != nil {
		b = b.Where(where)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select servers: %w", dbx.Classify(err))
	}
	defer rows.Close()

	var result []*models.Server
	for rows.Next() {
		s, err := scanServer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.Server, error) {
	return r.list(ctx, nil)
}

func (r *SQLRepository) ListByLocation(ctx context.Context, locationID int64) ([]*models.Server, error) {
	return r.list(ctx, sq.Eq{"location_id": locationID})
}

func (r *SQLRepository) count(ctx context.Context, where sq.Eq) (int, error) {
	query, args, err := r.d.Builder().Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return n, nil
}

func (r *SQLRepository) CountByLocation(ctx context.Context, locationID int64) (int, error) {
	return r.count(ctx, sq.Eq{"location_id": locationID})
}

func (r *SQLRepository) CountByModel(ctx context.Context, model string) (int, error) {
	return r.count(ctx, sq.Eq{"model": model})
}

// Update writes every mutable column of s. server_id is never rewritten.
func (r *SQLRepository) Update(ctx context.Context, s *models.Server) error {
	query, args, err := r.d.Builder().
		Update(table).
		SetMap(map[string]any{
			"model":       s.Model,
			"specs":       s.Specs,
			"location_id": dbx.NullInt64(s.LocationID),
			"status":      string(s.Status),
			"ip_address":  s.IPAddress,
			"username":    s.Username,
			"password":    s.Password,
			"updated_at":  s.UpdatedAt,
		}).
		Where(sq.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := r.d.Builder().Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}
