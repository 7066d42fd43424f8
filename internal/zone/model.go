package zone

import (
	"time"

	"github.com/lib/pq"

	"github.com/mikededo/hubbl-sub002/internal/schedule"
)

// GymZone is the bookable resource: appointments are admitted against its
// capacity and operating hours. Times are stored as "HH:MM:SS" strings, the
// format of the TIME columns they come from.
type GymZone struct {
	ID              int           `db:"id" json:"id"`
	Name            string        `db:"name" json:"name"`
	Capacity        int           `db:"capacity" json:"capacity"`
	OpenTime        string        `db:"open_time" json:"open_time"`
	CloseTime       string        `db:"close_time" json:"close_time"`
	IntervalLengths pq.Int64Array `db:"interval_lengths" json:"interval_lengths" swaggertype:"array,integer"`
	CovidPassport   bool          `db:"covid_passport" json:"covid_passport"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
}

// Profile converts the zone's stored constraints into the scheduling
// engine's validated form.
func (z *GymZone) Profile() (schedule.Profile, error) {
	open, err := schedule.ParseTimeOfDay(z.OpenTime)
	if err != nil {
		return schedule.Profile{}, err
	}
	close, err := schedule.ParseTimeOfDay(z.CloseTime)
	if err != nil {
		return schedule.Profile{}, err
	}
	return schedule.NewProfile(z.Capacity, open, close)
}

type CreateZoneRequest struct {
	Name            string  `json:"name" binding:"required"`
	Capacity        int     `json:"capacity" binding:"required,min=1"`
	OpenTime        string  `json:"open_time" binding:"required"`
	CloseTime       string  `json:"close_time" binding:"required"`
	IntervalLengths []int64 `json:"interval_lengths"`
	CovidPassport   bool    `json:"covid_passport"`
}

type UpdateZoneRequest struct {
	Name            string  `json:"name" binding:"required"`
	Capacity        int     `json:"capacity" binding:"required,min=1"`
	OpenTime        string  `json:"open_time" binding:"required"`
	CloseTime       string  `json:"close_time" binding:"required"`
	IntervalLengths []int64 `json:"interval_lengths"`
	CovidPassport   bool    `json:"covid_passport"`
}
