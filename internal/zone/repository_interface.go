package zone

import "context"

type Repository interface {
	CreateZone(ctx context.Context, zone GymZone) (*GymZone, error)
	GetAllZones(ctx context.Context) ([]GymZone, error)
	GetZoneByID(ctx context.Context, id int) (*GymZone, error)
	UpdateZone(ctx context.Context, zone GymZone) (*GymZone, error)
}
