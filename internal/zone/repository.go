package zone

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateZone(ctx context.Context, zone GymZone) (*GymZone, error) {
	query := `
		INSERT INTO gym_zones (name, capacity, open_time, close_time, interval_lengths, covid_passport)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, capacity, open_time, close_time, interval_lengths, covid_passport, created_at
	`

	var created GymZone
	err := r.db.GetContext(ctx, &created, query,
		zone.Name, zone.Capacity, zone.OpenTime, zone.CloseTime, zone.IntervalLengths, zone.CovidPassport)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetAllZones(ctx context.Context) ([]GymZone, error) {
	query := `
		SELECT id, name, capacity, open_time, close_time, interval_lengths, covid_passport, created_at
		FROM gym_zones
		ORDER BY name ASC
	`

	var zones []GymZone
	err := r.db.SelectContext(ctx, &zones, query)
	if err != nil {
		return nil, err
	}

	return zones, nil
}

func (r *repository) GetZoneByID(ctx context.Context, id int) (*GymZone, error) {
	query := `
		SELECT id, name, capacity, open_time, close_time, interval_lengths, covid_passport, created_at
		FROM gym_zones
		WHERE id = $1
	`

	var zone GymZone
	err := r.db.GetContext(ctx, &zone, query, id)
	if err != nil {
		return nil, err
	}

	return &zone, nil
}

func (r *repository) UpdateZone(ctx context.Context, zone GymZone) (*GymZone, error) {
	query := `
		UPDATE gym_zones
		SET name = $2, capacity = $3, open_time = $4, close_time = $5, interval_lengths = $6, covid_passport = $7
		WHERE id = $1
		RETURNING id, name, capacity, open_time, close_time, interval_lengths, covid_passport, created_at
	`

	var updated GymZone
	err := r.db.GetContext(ctx, &updated, query,
		zone.ID, zone.Name, zone.Capacity, zone.OpenTime, zone.CloseTime, zone.IntervalLengths, zone.CovidPassport)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}
