package postgres

import (
	"context"
	"database/sql"
	"errors"

	"whoofsy-server/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, provider, external_id,
			email, name, phone, tier,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		u.ID,
		u.Provider,
		toNullString(u.ExternalID),
		u.Email,
		toNullString(u.Name),
		toNullString(u.Phone),
		string(u.Tier),
		u.CreatedAt,
		u.UpdatedAt,
	)
	return err
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			external_id = $2,
			email = $3,
			name = $4,
			phone = $5,
			tier = $6,
			updated_at = $7
		WHERE id = $1
	`,
		u.ID,
		toNullString(u.ExternalID),
		u.Email,
		toNullString(u.Name),
		toNullString(u.Phone),
		string(u.Tier),
		u.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.getBy(ctx, `WHERE email = $1`, email)
}

func (r *UsersRepo) getBy(ctx context.Context, where string, arg any) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, provider, external_id,
			email, name, phone, tier,
			created_at, updated_at
		FROM users
	`+where, arg)

	var u users.User
	var externalID, name, phone sql.NullString
	var tier string
	if err := row.Scan(
		&u.ID,
		&u.Provider,
		&externalID,
		&u.Email,
		&name,
		&phone,
		&tier,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}

	u.ExternalID = externalID.String
	u.Name = name.String
	u.Phone = phone.String
	u.Tier = users.Tier(tier)

	return u, nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
