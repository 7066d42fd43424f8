package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mikededo/hubbl-sub002/internal/schedule"
)

// memoryRepo is a minimal in-memory Repository so concurrent admissions read
// their own writes, which mocks with canned responses cannot express.
type memoryRepo struct {
	mu     sync.Mutex
	nextID int
	rows   []Appointment
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1}
}

func (r *memoryRepo) CreateAppointment(ctx context.Context, appt Appointment) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, appt)
	return &appt, nil
}

func (r *memoryRepo) GetAppointmentByID(ctx context.Context, id int) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rows {
		if r.rows[i].ID == id {
			appt := r.rows[i]
			return &appt, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *memoryRepo) ListActiveForZoneDate(ctx context.Context, zoneID int, date schedule.Date) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Appointment
	for _, appt := range r.rows {
		if appt.ZoneID == zoneID && schedule.DateOf(appt.Date) == date && !appt.Cancelled {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (r *memoryRepo) HasActiveDuplicate(ctx context.Context, userID, zoneID int, date schedule.Date, start, end schedule.TimeOfDay) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, appt := range r.rows {
		if appt.UserID == userID && appt.ZoneID == zoneID &&
			schedule.DateOf(appt.Date) == date &&
			appt.StartTime == start.String() && appt.EndTime == end.String() &&
			!appt.Cancelled {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) MarkCancelled(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rows {
		if r.rows[i].ID == id && !r.rows[i].Cancelled {
			r.rows[i].Cancelled = true
			return nil
		}
	}
	return ErrAppointmentNotFoundOrCancelled
}

func (r *memoryRepo) DeleteAppointment(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return ErrAppointmentNotFoundOrCancelled
}

func (r *memoryRepo) GetUserAppointments(ctx context.Context, userID int) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Appointment
	for _, appt := range r.rows {
		if appt.UserID == userID {
			out = append(out, appt)
		}
	}
	return out, nil
}

func TestBook_ConcurrentAdmissionsRespectCapacity(t *testing.T) {
	const capacity = 3
	const contenders = 20

	repo := newMemoryRepo()
	zones := new(MockZoneRepo)
	zones.On("GetZoneByID", mock.Anything, 1).Return(testZone(capacity), nil)

	svc := newTestService(repo, zones, nil)

	date := schedule.Date{Year: 2026, Month: time.March, Day: 1}
	start := mustParse(t, "10:00:00")
	end := mustParse(t, "11:00:00")

	var wg sync.WaitGroup
	results := make(chan error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()
			_, err := svc.Book(context.Background(), Request{
				UserID: userID,
				ZoneID: 1,
				Date:   date,
				Start:  start,
				End:    end,
			})
			results <- err
		}(i + 1)
	}

	wg.Wait()
	close(results)

	admitted, rejected := 0, 0
	for err := range results {
		if err == nil {
			admitted++
		} else {
			assert.ErrorIs(t, err, ErrCapacityExceeded)
			rejected++
		}
	}

	assert.Equal(t, capacity, admitted)
	assert.Equal(t, contenders-capacity, rejected)

	active, err := repo.ListActiveForZoneDate(context.Background(), 1, date)
	assert.NoError(t, err)
	assert.Len(t, active, capacity)
}

func TestBook_DifferentZonesDoNotSerialize(t *testing.T) {
	repo := newMemoryRepo()
	zones := new(MockZoneRepo)
	zones.On("GetZoneByID", mock.Anything, mock.AnythingOfType("int")).Return(testZone(1), nil)

	svc := newTestService(repo, zones, nil)

	date := schedule.Date{Year: 2026, Month: time.March, Day: 1}
	start := mustParse(t, "10:00:00")
	end := mustParse(t, "11:00:00")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Book(context.Background(), Request{
				UserID: i + 1,
				ZoneID: i + 1,
				Date:   date,
				Start:  start,
				End:    end,
			})
		}(i)
	}
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
}
