package users

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

var columns = []string{"id", "username", "password", "full_name", "email", "role", "is_active", "created_at"}

type SQLRepository struct {
	db dbx.DBTX
	d  dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, d: d}
}

func scanUser(row dbx.Scanner) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Email, (*string)(&u.Role), &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts user. A taken username yields common.ErrorDuplicateIdentifier.
func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	id, err := dbx.InsertReturningID(ctx, r.db, r.d.Builder().
		Insert("users").
		Columns("username", "password", "full_name", "email", "role", "is_active", "created_at").
		Values(user.Username, user.PasswordHash, user.FullName, user.Email, string(user.Role), user.IsActive, user.CreatedAt))
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

func (r *SQLRepository) getOne(ctx context.Context, where sq.Eq) (*models.User, error) {
	query, args, err := r.d.Builder().Select(columns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, err
	}

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return u, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *SQLRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, sq.Eq{"username": username})
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.User, error) {
	query, args, err := r.d.Builder().Select(columns...).From("users").OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select users: %w", dbx.Classify(err))
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

func (r *SQLRepository) Update(ctx context.Context, user *models.User) error {
	n, err := dbx.Exec(ctx, r.db, r.d.Builder().
		Update("users").
		Set("password", user.PasswordHash).
		Set("full_name", user.FullName).
		Set("email", user.Email).
		Set("role", string(user.Role)).
		Set("is_active", user.IsActive).
		Where(sq.Eq{"id": user.ID}))
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := dbx.Exec(ctx, r.db, r.d.Builder().Delete("users").Where(sq.Eq{"id": id}))
	return n > 0, err
}

func (r *SQLRepository) Count(ctx context.Context) (int, error) {
	query, args, err := r.d.Builder().Select("COUNT(*)").From("users").ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return n, nil
}
