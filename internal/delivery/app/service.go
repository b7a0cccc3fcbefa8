package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dwikikusuma/storefront/internal/delivery/domain"
)

var (
	ErrInvalidAddress = errors.New("delivery address is missing required fields")
	ErrGeocode        = errors.New("failed to geocode delivery address")
)

// BlockedError reports that a store cannot deliver to an address, with
// the reason the resolver decided so.
type BlockedError struct {
	Reason domain.BlockedReason
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("delivery blocked: %s", e.Reason)
}

type Resolver struct {
	geocoder Geocoder
}

func NewResolver(geocoder Geocoder) *Resolver {
	return &Resolver{geocoder: geocoder}
}

// Resolve maps a delivery address and a store location onto one priced
// zone tier. zones must be the store's full schedule; ordering does not
// matter, selection sorts deterministically. A *BlockedError is returned
// when no tier covers the address.
func (r *Resolver) Resolve(ctx context.Context, storeLoc domain.Coordinates, zones []domain.Zone, addr domain.Address) (domain.Selection, error) {
	if !addr.Complete() {
		return domain.Selection{}, ErrInvalidAddress
	}
	if len(zones) == 0 {
		return domain.Selection{}, &BlockedError{Reason: domain.BlockedNoZonesConfigured}
	}

	loc, err := r.geocoder.Geocode(ctx, addr)
	if err != nil {
		return domain.Selection{}, fmt.Errorf("%w: %v", ErrGeocode, err)
	}

	distance := domain.HaversineKm(storeLoc, loc)
	zone, blocked := domain.SelectZone(zones, distance)
	if blocked != "" {
		return domain.Selection{}, &BlockedError{Reason: blocked}
	}

	return domain.Selection{Zone: zone, DistanceKm: distance}, nil
}
