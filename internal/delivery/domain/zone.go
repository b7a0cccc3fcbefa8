package domain

import (
	"sort"
	"time"
)

type Money struct {
	Currency string
	Amount   int64
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Address is the candidate delivery address as submitted at checkout.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
}

func (a Address) Complete() bool {
	return a.Street != "" && a.City != "" && a.ZipCode != ""
}

// Zone is one (radius, fee) tier. The ordered set of a store's zones
// forms a step function from distance to fee.
type Zone struct {
	ID        string
	RadiusKm  float64
	Fee       Money
	CreatedAt time.Time
}

type BlockedReason string

const (
	BlockedNoZonesConfigured BlockedReason = "NO_ZONES_CONFIGURED"
	BlockedOutOfRange        BlockedReason = "OUT_OF_RANGE"
)

// Selection is a resolved zone plus the distance that selected it.
type Selection struct {
	Zone       Zone
	DistanceKm float64
}

// SelectZone picks the smallest-radius zone whose radius_km covers the
// distance, treating the radius as an inclusive upper bound. Equal radii
// are broken by creation order, then id, so resolution is deterministic
// regardless of input order.
func SelectZone(zones []Zone, distanceKm float64) (Zone, BlockedReason) {
	if len(zones) == 0 {
		return Zone{}, BlockedNoZonesConfigured
	}

	sorted := make([]Zone, len(zones))
	copy(sorted, zones)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RadiusKm != sorted[j].RadiusKm {
			return sorted[i].RadiusKm < sorted[j].RadiusKm
		}
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})

	for _, z := range sorted {
		if z.RadiusKm >= distanceKm {
			return z, ""
		}
	}
	return Zone{}, BlockedOutOfRange
}
