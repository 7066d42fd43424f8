package booking

import (
	"context"

	"github.com/mikededo/hubbl-sub002/internal/schedule"
)

type Repository interface {
	CreateAppointment(ctx context.Context, appt Appointment) (*Appointment, error)
	GetAppointmentByID(ctx context.Context, id int) (*Appointment, error)
	// ListActiveForZoneDate returns non-cancelled appointments for the zone
	// and date, ordered by start time.
	ListActiveForZoneDate(ctx context.Context, zoneID int, date schedule.Date) ([]Appointment, error)
	// HasActiveDuplicate reports whether the user already holds a
	// non-cancelled appointment for the exact same zone, date and times.
	HasActiveDuplicate(ctx context.Context, userID, zoneID int, date schedule.Date, start, end schedule.TimeOfDay) (bool, error)
	MarkCancelled(ctx context.Context, id int) error
	DeleteAppointment(ctx context.Context, id int) error
	GetUserAppointments(ctx context.Context, userID int) ([]Appointment, error)
}
