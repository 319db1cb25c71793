package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"whoofsy-server/internal/domain/coupons"
)

type CouponsRepo struct {
	db *sql.DB
}

func NewCouponsRepo(db *sql.DB) *CouponsRepo {
	return &CouponsRepo{db: db}
}

func (r *CouponsRepo) Create(ctx context.Context, c coupons.Coupon) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO coupons (
			id, code, offer, redeemed,
			created_at, redeemed_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		c.ID,
		c.Code,
		c.Offer,
		c.Redeemed,
		c.CreatedAt,
		toNullTime(c.RedeemedAt),
	)
	return err
}

func (r *CouponsRepo) Update(ctx context.Context, c coupons.Coupon) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE coupons
		SET
			offer = $2,
			redeemed = $3,
			redeemed_at = $4
		WHERE id = $1
	`,
		c.ID,
		c.Offer,
		c.Redeemed,
		toNullTime(c.RedeemedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return coupons.ErrNotFound
	}
	return nil
}

func (r *CouponsRepo) GetByID(ctx context.Context, id string) (coupons.Coupon, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *CouponsRepo) GetUnredeemedByCode(ctx context.Context, code string) (coupons.Coupon, error) {
	// Si por una carrera quedaron dos sin canjear, devolvemos el más viejo.
	return r.getBy(ctx, `WHERE code = $1 AND redeemed = FALSE ORDER BY created_at ASC LIMIT 1`, code)
}

func (r *CouponsRepo) getBy(ctx context.Context, where string, arg any) (coupons.Coupon, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, code, offer, redeemed,
			created_at, redeemed_at
		FROM coupons
	`+where, arg)

	var c coupons.Coupon
	var redeemedAt sql.NullTime
	if err := row.Scan(
		&c.ID,
		&c.Code,
		&c.Offer,
		&c.Redeemed,
		&c.CreatedAt,
		&redeemedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return coupons.Coupon{}, coupons.ErrNotFound
		}
		return coupons.Coupon{}, err
	}

	if redeemedAt.Valid {
		t := redeemedAt.Time
		c.RedeemedAt = &t
	}

	return c, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
