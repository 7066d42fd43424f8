package booking

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/mikededo/hubbl-sub002/internal/schedule"
)

var ErrAppointmentNotFoundOrCancelled = errors.New("appointment not found or already cancelled")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateAppointment(ctx context.Context, appt Appointment) (*Appointment, error) {
	query := `
		INSERT INTO appointments (user_id, zone_id, date, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, zone_id, date, start_time, end_time, cancelled, created_at, updated_at
	`

	var created Appointment
	err := r.db.GetContext(ctx, &created, query,
		appt.UserID, appt.ZoneID, appt.Date, appt.StartTime, appt.EndTime)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetAppointmentByID(ctx context.Context, id int) (*Appointment, error) {
	query := `
		SELECT id, user_id, zone_id, date, start_time, end_time, cancelled, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`

	var appt Appointment
	err := r.db.GetContext(ctx, &appt, query, id)
	if err != nil {
		return nil, err
	}

	return &appt, nil
}

func (r *repository) ListActiveForZoneDate(ctx context.Context, zoneID int, date schedule.Date) ([]Appointment, error) {
	query := `
		SELECT id, user_id, zone_id, date, start_time, end_time, cancelled, created_at, updated_at
		FROM appointments
		WHERE zone_id = $1 AND date = $2 AND cancelled = FALSE
		ORDER BY start_time ASC
	`

	var appts []Appointment
	err := r.db.SelectContext(ctx, &appts, query, zoneID, date.String())
	if err != nil {
		return nil, err
	}

	return appts, nil
}

func (r *repository) HasActiveDuplicate(ctx context.Context, userID, zoneID int, date schedule.Date, start, end schedule.TimeOfDay) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE user_id = $1 AND zone_id = $2 AND date = $3
				AND start_time = $4 AND end_time = $5 AND cancelled = FALSE
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, zoneID, date.String(), start.String(), end.String())
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) MarkCancelled(ctx context.Context, id int) error {
	query := `
		UPDATE appointments
		SET cancelled = TRUE, updated_at = NOW()
		WHERE id = $1 AND cancelled = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFoundOrCancelled
	}

	return nil
}

func (r *repository) DeleteAppointment(ctx context.Context, id int) error {
	query := `DELETE FROM appointments WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFoundOrCancelled
	}

	return nil
}

func (r *repository) GetUserAppointments(ctx context.Context, userID int) ([]Appointment, error) {
	query := `
		SELECT id, user_id, zone_id, date, start_time, end_time, cancelled, created_at, updated_at
		FROM appointments
		WHERE user_id = $1
		ORDER BY date DESC, start_time DESC
	`

	var appts []Appointment
	err := r.db.SelectContext(ctx, &appts, query, userID)
	if err != nil {
		return nil, err
	}

	return appts, nil
}
