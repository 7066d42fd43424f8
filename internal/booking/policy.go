package booking

import (
	"context"
	"errors"

	"github.com/mikededo/hubbl-sub002/internal/user"
	"github.com/mikededo/hubbl-sub002/internal/zone"
)

// Policy is a caller-injected admission predicate. Policies run in the order
// they were supplied, after the capacity check and before the duplicate
// check; the first failure rejects the request with its message verbatim.
type Policy func(ctx context.Context, req Request) error

// PolicyError carries the rejecting policy's message.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string { return e.Reason }

// CovidPassportPolicy rejects bookings into zones that require a covid
// passport when the requester does not hold one.
func CovidPassportPolicy(users user.Repository, zones zone.Repository) Policy {
	return func(ctx context.Context, req Request) error {
		z, err := zones.GetZoneByID(ctx, req.ZoneID)
		if err != nil {
			return err
		}
		if !z.CovidPassport {
			return nil
		}

		u, err := users.FindByID(ctx, req.UserID)
		if err != nil {
			return errors.New("requester identity not found")
		}
		if !u.CovidPassport {
			return errors.New("a covid passport is required to book this zone")
		}

		return nil
	}
}
