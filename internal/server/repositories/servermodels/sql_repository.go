package servermodels

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

var columns = []string{"id", "name", "brand", "specs", "created_at"}

type SQLRepository struct {
	db dbx.DBTX
	d  dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, d: d}
}

func scanModel(row dbx.Scanner) (*models.ServerModel, error) {
	var m models.ServerModel
	if err := row.Scan(&m.ID, &m.Name, &m.Brand, &m.Specs, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *SQLRepository) Create(ctx context.Context, m *models.ServerModel) (*models.ServerModel, error) {
	id, err := dbx.InsertReturningID(ctx, r.db, r.d.Builder().
		Insert("server_models").
		Columns("name", "brand", "specs", "created_at").
		Values(m.Name, m.Brand, m.Specs, m.CreatedAt))
	if err != nil {
		return nil, err
	}
	m.ID = id
	return m, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.ServerModel, error) {
	query, args, err := r.d.Builder().Select(columns...).From("server_models").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	m, err := scanModel(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return m, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.ServerModel, error) {
	query, args, err := r.d.Builder().Select(columns...).From("server_models").OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select server models: %w", dbx.Classify(err))
	}
	defer rows.Close()

	var result []*models.ServerModel
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *SQLRepository) Update(ctx context.Context, m *models.ServerModel) error {
	n, err := dbx.Exec(ctx, r.db, r.d.Builder().
		Update("server_models").
		Set("name", m.Name).
		Set("brand", m.Brand).
		Set("specs", m.Specs).
		Where(sq.Eq{"id": m.ID}))
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := dbx.Exec(ctx, r.db, r.d.Builder().Delete("server_models").Where(sq.Eq{"id": id}))
	return n > 0, err
}
