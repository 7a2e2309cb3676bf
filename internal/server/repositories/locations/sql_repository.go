package locations

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

var columns = []string{"id", "name", "type", "address", "capacity", "is_active", "created_at"}

type SQLRepository struct {
	db dbx.DBTX
	d  dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, d: d}
}

func scanLocation(row dbx.Scanner) (*models.Location, error) {
	var l models.Location
	if err := row.Scan(&l.ID, &l.Name, (*string)(&l.Type), &l.Address, &l.Capacity, &l.IsActive, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *SQLRepository) Create(ctx context.Context, l *models.Location) (*models.Location, error) {
	id, err := dbx.InsertReturningID(ctx, r.db, r.d.Builder().
		Insert("locations").
		Columns("name", "type", "address", "capacity", "is_active", "created_at").
		Values(l.Name, string(l.Type), l.Address, l.Capacity, l.IsActive, l.CreatedAt))
	if err != nil {
		return nil, err
	}
	l.ID = id
	return l, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	query, args, err := r.d.Builder().Select(columns...).From("locations").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	l, err := scanLocation(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return l, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.Location, error) {
	query, args, err := r.d.Builder().Select(columns...).From("locations").OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select locations: %w", dbx.Classify(err))
	}
	defer rows.Close()

	var result []*models.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func (r *SQLRepository) Update(ctx context.Context, l *models.Location) error {
	n, err := dbx.Exec(ctx, r.db, r.d.Builder().
		Update("locations").
		Set("name", l.Name).
		Set("type", string(l.Type)).
		Set("address", l.Address).
		Set("capacity", l.Capacity).
		Set("is_active", l.IsActive).
		Where(sq.Eq{"id": l.ID}))
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := dbx.Exec(ctx, r.db, r.d.Builder().Delete("locations").Where(sq.Eq{"id": id}))
	return n > 0, err
}
