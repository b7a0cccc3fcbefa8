package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	saoPaulo := Coordinates{Latitude: -23.5505, Longitude: -46.6333}
	rio := Coordinates{Latitude: -22.9068, Longitude: -43.1729}

	t.Run("zero for identical points", func(t *testing.T) {
		assert.Zero(t, HaversineKm(saoPaulo, saoPaulo))
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.InDelta(t, HaversineKm(saoPaulo, rio), HaversineKm(rio, saoPaulo), 1e-9)
	})

	t.Run("sao paulo to rio is about 360km", func(t *testing.T) {
		assert.InDelta(t, 360, HaversineKm(saoPaulo, rio), 5)
	})

	t.Run("one degree of latitude is about 111km", func(t *testing.T) {
		a := Coordinates{Latitude: 0, Longitude: 0}
		b := Coordinates{Latitude: 1, Longitude: 0}
		assert.InDelta(t, 111.2, HaversineKm(a, b), 0.5)
	})
}
