package details

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

var columns = []string{"id", "server_id", "vm_name", "ip_address", "username", "password", "notes", "created_at", "updated_at"}

type SQLRepository struct {
	db dbx.DBTX
	d  dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, d: d}
}

func scanDetail(row dbx.Scanner) (*models.ServerDetail, error) {
	var d models.ServerDetail
	err := row.Scan(&d.ID, &d.ServerID, &d.VMName, &d.IPAddress, &d.Username, &d.Password, &d.Notes, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *SQLRepository) Create(ctx context.Context, d *models.ServerDetail) (*models.ServerDetail, error) {
	id, err := dbx.InsertReturningID(ctx, r.db, r.d.Builder().
		Insert("server_details").
		Columns("server_id", "vm_name", "ip_address", "username", "password", "notes", "created_at", "updated_at").
		Values(d.ServerID, d.VMName, d.IPAddress, d.Username, d.Password, d.Notes, d.CreatedAt, d.UpdatedAt))
	if err != nil {
		return nil, err
	}
	d.ID = id
	return d, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.ServerDetail, error) {
	query, args, err := r.d.Builder().Select(columns...).From("server_details").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	d, err := scanDetail(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return d, nil
}

func (r *SQLRepository) ListByServer(ctx context.Context, serverID int64) ([]*models.ServerDetail, error) {
	query, args, err := r.d.Builder().Select(columns...).From("server_details").
		Where(sq.Eq{"server_id": serverID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select server details: %w", dbx.Classify(err))
	}
	defer rows.Close()

	var result []*models.ServerDetail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (r *SQLRepository) Update(ctx context.Context, d *models.ServerDetail) error {
	n, err := dbx.Exec(ctx, r.db, r.d.Builder().
		Update("server_details").
		SetMap(map[string]any{
			"vm_name":    d.VMName,
			"ip_address": d.IPAddress,
			"username":   d.Username,
			"password":   d.Password,
			"notes":      d.Notes,
			"updated_at": d.UpdatedAt,
		}).
		Where(sq.Eq{"id": d.ID}))
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := dbx.Exec(ctx, r.db, r.d.Builder().Delete("server_details").Where(sq.Eq{"id": id}))
	return n > 0, err
}

func (r *SQLRepository) DeleteByServer(ctx context.Context, serverID int64) (int64, error) {
	return dbx.Exec(ctx, r.db, r.d.Builder().Delete("server_details").Where(sq.Eq{"server_id": serverID}))
}
