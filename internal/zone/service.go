package zone

import (
	"context"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrZoneNotFound = errors.New("gym zone not found")
	ErrInvalidZone  = errors.New("invalid gym zone")
)

type Service interface {
	CreateZone(ctx context.Context, req CreateZoneRequest) (*GymZone, error)
	GetAllZones(ctx context.Context) ([]GymZone, error)
	GetZoneByID(ctx context.Context, id int) (*GymZone, error)
	UpdateZone(ctx context.Context, id int, req UpdateZoneRequest) (*GymZone, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateZone(ctx context.Context, req CreateZoneRequest) (*GymZone, error) {
	zone := GymZone{
		Name:            req.Name,
		Capacity:        req.Capacity,
		OpenTime:        req.OpenTime,
		CloseTime:       req.CloseTime,
		IntervalLengths: pq.Int64Array(req.IntervalLengths),
		CovidPassport:   req.CovidPassport,
	}

	if err := validateZone(&zone); err != nil {
		return nil, err
	}

	return s.repo.CreateZone(ctx, zone)
}

func (s *service) GetAllZones(ctx context.Context) ([]GymZone, error) {
	return s.repo.GetAllZones(ctx)
}

func (s *service) GetZoneByID(ctx context.Context, id int) (*GymZone, error) {
	zone, err := s.repo.GetZoneByID(ctx, id)
	if err != nil {
		return nil, ErrZoneNotFound
	}
	return zone, nil
}

func (s *service) UpdateZone(ctx context.Context, id int, req UpdateZoneRequest) (*GymZone, error) {
	if _, err := s.repo.GetZoneByID(ctx, id); err != nil {
		return nil, ErrZoneNotFound
	}

	zone := GymZone{
		ID:              id,
		Name:            req.Name,
		Capacity:        req.Capacity,
		OpenTime:        req.OpenTime,
		CloseTime:       req.CloseTime,
		IntervalLengths: pq.Int64Array(req.IntervalLengths),
		CovidPassport:   req.CovidPassport,
	}

	if err := validateZone(&zone); err != nil {
		return nil, err
	}

	return s.repo.UpdateZone(ctx, zone)
}

// validateZone rejects a zone whose constraints the scheduling engine would
// refuse: capacity below one, unparsable times or open >= close.
func validateZone(zone *GymZone) error {
	if _, err := zone.Profile(); err != nil {
		return ErrInvalidZone
	}

	for _, length := range zone.IntervalLengths {
		if length <= 0 {
			return ErrInvalidZone
		}
	}

	return nil
}
