package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"whoofsy-server/internal/domain/tags"
)

type TagsRepo struct {
	db *sql.DB
}

func NewTagsRepo(db *sql.DB) *TagsRepo {
	return &TagsRepo{db: db}
}

func (r *TagsRepo) Create(ctx context.Context, t tags.Tag) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tags (
			id, code, owner_id, pet_id,
			activated, model,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		t.ID,
		t.Code,
		toNullString(t.OwnerID),
		toNullString(t.PetID),
		t.Activated,
		string(t.Model),
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func (r *TagsRepo) Update(ctx context.Context, t tags.Tag) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tags
		SET
			owner_id = $2,
			pet_id = $3,
			activated = $4,
			model = $5,
			updated_at = $6
		WHERE code = $1
	`,
		t.Code,
		toNullString(t.OwnerID),
		toNullString(t.PetID),
		t.Activated,
		string(t.Model),
		t.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return tags.ErrNotFound
	}
	return nil
}

func (r *TagsRepo) GetByCode(ctx context.Context, code string) (tags.Tag, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return tags.Tag{}, tags.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, code, owner_id, pet_id,
			activated, model,
			created_at, updated_at
		FROM tags
		WHERE code = $1
	`, code)

	var t tags.Tag
	var ownerID, petID sql.NullString
	var model string
	if err := row.Scan(
		&t.ID,
		&t.Code,
		&ownerID,
		&petID,
		&t.Activated,
		&model,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tags.Tag{}, tags.ErrNotFound
		}
		return tags.Tag{}, err
	}

	t.OwnerID = ownerID.String
	t.PetID = petID.String
	t.Model = tags.Model(model)

	return t, nil
}
