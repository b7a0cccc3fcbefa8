package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/delivery/domain"
)

// Geocoder turns a delivery address into coordinates. It is an external
// capability and always injected; the resolver never picks a provider
// itself.
type Geocoder interface {
	Geocode(ctx context.Context, addr domain.Address) (domain.Coordinates, error)
}
