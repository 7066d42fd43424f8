package booking

import (
	"time"

	"github.com/mikededo/hubbl-sub002/internal/schedule"
)

// Appointment is a booked interval on a gym zone's calendar. Cancelling only
// flips the flag: the row stays for history and is excluded from every
// capacity computation. Physical deletion is a separate, owner-only action.
type Appointment struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	ZoneID    int       `db:"zone_id" json:"zone_id"`
	Date      time.Time `db:"date" json:"date"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Cancelled bool      `db:"cancelled" json:"cancelled"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Interval converts the stored row into the scheduling engine's value type.
func (a *Appointment) Interval() (schedule.Interval, error) {
	start, err := schedule.ParseTimeOfDay(a.StartTime)
	if err != nil {
		return schedule.Interval{}, err
	}
	end, err := schedule.ParseTimeOfDay(a.EndTime)
	if err != nil {
		return schedule.Interval{}, err
	}

	iv, err := schedule.NewInterval(a.ZoneID, schedule.DateOf(a.Date), start, end)
	if err != nil {
		return schedule.Interval{}, err
	}
	iv.Cancelled = a.Cancelled
	return iv, nil
}

// Request is a fully parsed booking request as the admission pipeline sees
// it. Handlers are responsible for parsing the wire format into it.
type Request struct {
	UserID int
	ZoneID int
	Date   schedule.Date
	Start  schedule.TimeOfDay
	End    schedule.TimeOfDay
}

type BookAppointmentRequest struct {
	ZoneID    int    `json:"zone_id" binding:"required"`
	Date      string `json:"date" binding:"required" example:"2024-03-01"`
	StartTime string `json:"start_time" binding:"required" example:"09:00:00"`
	EndTime   string `json:"end_time" binding:"required" example:"10:00:00"`
}

type AvailabilityResponse struct {
	ZoneID          int      `json:"zone_id"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"duration_minutes"`
	Starts          []string `json:"starts"`
}

type CancelAppointmentResponse struct {
	Message string `json:"message" example:"Appointment cancelled successfully"`
}
