package adapter

import (
	"context"

	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutdomain "github.com/dwikikusuma/storefront/internal/checkout/domain"
	deliveryapp "github.com/dwikikusuma/storefront/internal/delivery/app"
	deliverydomain "github.com/dwikikusuma/storefront/internal/delivery/domain"
)

// DeliveryZoneResolver bridges checkout onto the delivery resolver.
// Blocked and invalid-address errors from the resolver pass through
// unchanged so the HTTP layer can map them.
type DeliveryZoneResolver struct {
	resolver *deliveryapp.Resolver
}

func NewDeliveryZoneResolver(resolver *deliveryapp.Resolver) *DeliveryZoneResolver {
	return &DeliveryZoneResolver{resolver: resolver}
}

func (a *DeliveryZoneResolver) Resolve(ctx context.Context, store checkoutapp.Store, zones []checkoutapp.Zone, addr checkoutdomain.Address) (checkoutapp.ZoneSelection, error) {
	dzones := make([]deliverydomain.Zone, 0, len(zones))
	for _, z := range zones {
		dzones = append(dzones, deliverydomain.Zone{
			ID:        z.ID,
			RadiusKm:  z.RadiusKm,
			Fee:       deliverydomain.Money{Currency: "BRL", Amount: z.FeeAmount},
			CreatedAt: z.CreatedAt,
		})
	}

	sel, err := a.resolver.Resolve(ctx,
		deliverydomain.Coordinates{Latitude: store.Latitude, Longitude: store.Longitude},
		dzones,
		deliverydomain.Address{
			Street:  addr.Street,
			City:    addr.City,
			State:   addr.State,
			ZipCode: addr.ZipCode,
		})
	if err != nil {
		return checkoutapp.ZoneSelection{}, err
	}

	return checkoutapp.ZoneSelection{
		ZoneID:     sel.Zone.ID,
		RadiusKm:   sel.Zone.RadiusKm,
		FeeAmount:  sel.Zone.Fee.Amount,
		DistanceKm: sel.DistanceKm,
	}, nil
}
