package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"whoofsy-server/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	photos, err := marshalPhotos(p.Photos)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, owner_id,
			name, breed, color, photos,
			medical_notes, allergies,
			status, contact_visibility,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		p.ID,
		p.OwnerID,
		p.Name,
		toNullString(p.Breed),
		toNullString(p.Color),
		photos,
		toNullString(p.MedicalNotes),
		toNullString(p.Allergies),
		string(p.Status),
		string(p.ContactVisibility),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	photos, err := marshalPhotos(p.Photos)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			breed = $3,
			color = $4,
			photos = $5,
			medical_notes = $6,
			allergies = $7,
			status = $8,
			contact_visibility = $9,
			updated_at = $10
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		toNullString(p.Breed),
		toNullString(p.Color),
		photos,
		toNullString(p.MedicalNotes),
		toNullString(p.Allergies),
		string(p.Status),
		string(p.ContactVisibility),
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_id,
			name, breed, color, photos,
			medical_notes, allergies,
			status, contact_visibility,
			created_at, updated_at
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_id,
			name, breed, color, photos,
			medical_notes, allergies,
			status, contact_visibility,
			created_at, updated_at
		FROM pets
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func scanPet(scan func(dest ...any) error) (pets.Pet, error) {
	var p pets.Pet
	var breed, color, medicalNotes, allergies sql.NullString
	var photos []byte
	var status, visibility string

	if err := scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&breed,
		&color,
		&photos,
		&medicalNotes,
		&allergies,
		&status,
		&visibility,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	p.Breed = breed.String
	p.Color = color.String
	p.MedicalNotes = medicalNotes.String
	p.Allergies = allergies.String
	p.Status = pets.Status(status)
	p.ContactVisibility = pets.ContactVisibility(visibility)

	p.Photos = []string{}
	if len(photos) > 0 {
		if err := json.Unmarshal(photos, &p.Photos); err != nil {
			return pets.Pet{}, err
		}
	}

	return p, nil
}

// photos va como JSONB; un TEXT[] obligaría a depender de pgtype acá.
func marshalPhotos(photos []string) ([]byte, error) {
	if photos == nil {
		photos = []string{}
	}
	return json.Marshal(photos)
}
