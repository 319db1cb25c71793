package postgres

import (
	"context"
	"database/sql"

	"whoofsy-server/internal/domain/scans"
)

type ScansRepo struct {
	db *sql.DB
}

func NewScansRepo(db *sql.DB) *ScansRepo {
	return &ScansRepo{db: db}
}

func (r *ScansRepo) Create(ctx context.Context, e scans.ScanEvent) error {
	// Cada coordenada se persiste tal cual llegó, NULL incluido.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO scan_events (
			id, code, pet_id, owner_id, ts,
			lat, lng, accuracy,
			user_agent, referrer
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		e.ID,
		e.Code,
		toNullString(e.PetID),
		toNullString(e.OwnerID),
		e.Timestamp,
		toNullFloat(e.Geo.Lat),
		toNullFloat(e.Geo.Lng),
		toNullFloat(e.Geo.Accuracy),
		toNullString(e.UserAgent),
		toNullString(e.Referrer),
	)
	return err
}

func (r *ScansRepo) ListByCode(ctx context.Context, code string) ([]scans.ScanEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, code, pet_id, owner_id, ts,
			lat, lng, accuracy,
			user_agent, referrer
		FROM scan_events
		WHERE code = $1
		ORDER BY ts ASC
	`, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]scans.ScanEvent, 0)
	for rows.Next() {
		var e scans.ScanEvent
		var petID, ownerID, userAgent, referrer sql.NullString
		var lat, lng, accuracy sql.NullFloat64

		if err := rows.Scan(
			&e.ID,
			&e.Code,
			&petID,
			&ownerID,
			&e.Timestamp,
			&lat,
			&lng,
			&accuracy,
			&userAgent,
			&referrer,
		); err != nil {
			return nil, err
		}

		e.PetID = petID.String
		e.OwnerID = ownerID.String
		e.UserAgent = userAgent.String
		e.Referrer = referrer.String
		e.Geo.Lat = fromNullFloat(lat)
		e.Geo.Lng = fromNullFloat(lng)
		e.Geo.Accuracy = fromNullFloat(accuracy)

		out = append(out, e)
	}

	return out, rows.Err()
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func fromNullFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
