package booking

import (
	"context"
	"errors"
	"time"

	"github.com/mikededo/hubbl-sub002/internal/schedule"
	"github.com/mikededo/hubbl-sub002/internal/zone"
)

var (
	ErrInvalidTimeRange      = errors.New("start time must be before end time")
	ErrPastEvent             = errors.New("cannot book an appointment in the past")
	ErrOutsideOperatingHours = errors.New("appointment is outside the zone's operating hours")
	ErrCapacityExceeded      = errors.New("gym zone is at capacity for the requested time")
	ErrDuplicateBooking      = errors.New("user already has this exact appointment")
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrAlreadyCancelled      = errors.New("appointment is already cancelled")
	ErrNotOwner              = errors.New("can only cancel own appointments")
	ErrDeleteNotAllowed      = errors.New("role is not allowed to delete appointments")
)

// Clock supplies the current time so the past-date check is testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

// DeleteAuthorizer decides whether a role may physically delete
// appointments. The authorization matrix itself lives outside this package.
type DeleteAuthorizer func(role string) bool

// AvailabilityCache is an optional read-through cache for availability
// results. Implementations must treat lookups as best effort: a miss or a
// backend error simply means recompute.
type AvailabilityCache interface {
	Get(ctx context.Context, zoneID int, date schedule.Date, durationMinutes int) ([]schedule.TimeOfDay, bool)
	Set(ctx context.Context, zoneID int, date schedule.Date, durationMinutes int, starts []schedule.TimeOfDay)
	Invalidate(ctx context.Context, zoneID int, date schedule.Date)
}

type Service interface {
	Book(ctx context.Context, req Request) (*Appointment, error)
	Cancel(ctx context.Context, userID, appointmentID int) error
	Delete(ctx context.Context, role string, appointmentID int) error
	Availability(ctx context.Context, zoneID int, date schedule.Date, durationMinutes int) ([]schedule.TimeOfDay, error)
	GetUserAppointments(ctx context.Context, userID int) ([]Appointment, error)
}

type service struct {
	repo       Repository
	zoneRepo   zone.Repository
	clock      Clock
	cache      AvailabilityCache
	policies   []Policy
	deleteAuth DeleteAuthorizer
	locks      *zoneLocks
}

func NewService(
	repo Repository,
	zoneRepo zone.Repository,
	clock Clock,
	cache AvailabilityCache,
	policies []Policy,
	deleteAuth DeleteAuthorizer,
) Service {
	if clock == nil {
		clock = SystemClock()
	}
	return &service{
		repo:       repo,
		zoneRepo:   zoneRepo,
		clock:      clock,
		cache:      cache,
		policies:   policies,
		deleteAuth: deleteAuth,
		locks:      newZoneLocks(),
	}
}

// Book runs the admission pipeline. Checks run cheapest first and the first
// failure decides the returned error: time range, past date, zone lookup,
// operating hours, capacity, injected policies, duplicate. Callers can rely
// on this order being stable.
func (s *service) Book(ctx context.Context, req Request) (*Appointment, error) {
	if req.Start >= req.End {
		return nil, ErrInvalidTimeRange
	}

	if s.isPast(req.Date, req.Start) {
		return nil, ErrPastEvent
	}

	z, err := s.zoneRepo.GetZoneByID(ctx, req.ZoneID)
	if err != nil {
		return nil, zone.ErrZoneNotFound
	}

	profile, err := z.Profile()
	if err != nil {
		return nil, err
	}

	if req.Start < profile.Open || req.End > profile.Close {
		return nil, ErrOutsideOperatingHours
	}

	// Serialize the read-validate-write against other admissions for the
	// same zone and date, otherwise two requests could both validate
	// against the same snapshot and jointly break the capacity invariant.
	unlock := s.locks.lock(req.ZoneID, req.Date)
	defer unlock()

	intervals, err := s.activeIntervals(ctx, req.ZoneID, req.Date)
	if err != nil {
		return nil, err
	}

	if schedule.MaxConcurrency(intervals, req.Start, req.End) >= profile.Capacity {
		return nil, ErrCapacityExceeded
	}

	for _, policy := range s.policies {
		if err := policy(ctx, req); err != nil {
			return nil, &PolicyError{Reason: err.Error()}
		}
	}

	duplicate, err := s.repo.HasActiveDuplicate(ctx, req.UserID, req.ZoneID, req.Date, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, ErrDuplicateBooking
	}

	appt, err := s.repo.CreateAppointment(ctx, Appointment{
		UserID:    req.UserID,
		ZoneID:    req.ZoneID,
		Date:      time.Date(req.Date.Year, req.Date.Month, req.Date.Day, 0, 0, 0, 0, time.UTC),
		StartTime: req.Start.String(),
		EndTime:   req.End.String(),
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.ZoneID, req.Date)

	return appt, nil
}

// Cancel flips an appointment to cancelled. Cancelling an already cancelled
// appointment is rejected rather than silently accepted. No capacity
// re-check is needed: cancelling only ever frees capacity.
func (s *service) Cancel(ctx context.Context, userID, appointmentID int) error {
	appt, err := s.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return ErrAppointmentNotFound
	}

	if appt.UserID != userID {
		return ErrNotOwner
	}

	if appt.Cancelled {
		return ErrAlreadyCancelled
	}

	if err := s.repo.MarkCancelled(ctx, appointmentID); err != nil {
		if errors.Is(err, ErrAppointmentNotFoundOrCancelled) {
			return ErrAlreadyCancelled
		}
		return err
	}

	s.invalidate(ctx, appt.ZoneID, schedule.DateOf(appt.Date))

	return nil
}

// Delete removes the appointment row irrevocably. The injected authorizer is
// consulted first; which roles pass is the caller's concern.
func (s *service) Delete(ctx context.Context, role string, appointmentID int) error {
	if s.deleteAuth != nil && !s.deleteAuth(role) {
		return ErrDeleteNotAllowed
	}

	appt, err := s.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return ErrAppointmentNotFound
	}

	if err := s.repo.DeleteAppointment(ctx, appointmentID); err != nil {
		return err
	}

	s.invalidate(ctx, appt.ZoneID, schedule.DateOf(appt.Date))

	return nil
}

// Availability lists the grid start times still bookable for the given
// duration on a zone's day.
func (s *service) Availability(ctx context.Context, zoneID int, date schedule.Date, durationMinutes int) ([]schedule.TimeOfDay, error) {
	z, err := s.zoneRepo.GetZoneByID(ctx, zoneID)
	if err != nil {
		return nil, zone.ErrZoneNotFound
	}

	profile, err := z.Profile()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if starts, ok := s.cache.Get(ctx, zoneID, date, durationMinutes); ok {
			return starts, nil
		}
	}

	intervals, err := s.activeIntervals(ctx, zoneID, date)
	if err != nil {
		return nil, err
	}

	starts := profile.AvailableStarts(intervals, durationMinutes)

	if s.cache != nil {
		s.cache.Set(ctx, zoneID, date, durationMinutes, starts)
	}

	return starts, nil
}

func (s *service) GetUserAppointments(ctx context.Context, userID int) ([]Appointment, error) {
	return s.repo.GetUserAppointments(ctx, userID)
}

func (s *service) activeIntervals(ctx context.Context, zoneID int, date schedule.Date) ([]schedule.Interval, error) {
	appts, err := s.repo.ListActiveForZoneDate(ctx, zoneID, date)
	if err != nil {
		return nil, err
	}

	intervals := make([]schedule.Interval, 0, len(appts))
	for i := range appts {
		iv, err := appts[i].Interval()
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}

	return intervals, nil
}

func (s *service) isPast(date schedule.Date, start schedule.TimeOfDay) bool {
	now := s.clock.Now()
	today := schedule.DateOf(now)

	if date.Before(today) {
		return true
	}
	if today.Before(date) {
		return false
	}

	nowMinutes := schedule.TimeOfDay(now.Hour()*60 + now.Minute())
	return start < nowMinutes
}

func (s *service) invalidate(ctx context.Context, zoneID int, date schedule.Date) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, zoneID, date)
	}
}
