package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feeZone(id string, radius float64, fee int64, created time.Time) Zone {
	return Zone{
		ID:        id,
		RadiusKm:  radius,
		Fee:       Money{Currency: "BRL", Amount: fee},
		CreatedAt: created,
	}
}

func TestSelectZone(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	zones := []Zone{
		feeZone("near", 3, 500, base),
		feeZone("far", 10, 800, base.Add(time.Hour)),
	}

	t.Run("distance inside outer tier", func(t *testing.T) {
		z, blocked := SelectZone(zones, 7)
		require.Empty(t, blocked)
		assert.Equal(t, "far", z.ID)
		assert.Equal(t, int64(800), z.Fee.Amount)
	})

	t.Run("distance beyond every tier", func(t *testing.T) {
		_, blocked := SelectZone(zones, 12)
		assert.Equal(t, BlockedOutOfRange, blocked)
	})

	t.Run("exact boundary is inclusive", func(t *testing.T) {
		z, blocked := SelectZone(zones, 10)
		require.Empty(t, blocked)
		assert.Equal(t, "far", z.ID)
	})

	t.Run("distance inside inner tier picks smallest radius", func(t *testing.T) {
		z, blocked := SelectZone(zones, 2)
		require.Empty(t, blocked)
		assert.Equal(t, "near", z.ID)
	})

	t.Run("no zones configured", func(t *testing.T) {
		_, blocked := SelectZone(nil, 1)
		assert.Equal(t, BlockedNoZonesConfigured, blocked)
	})

	t.Run("equal radius broken by creation order", func(t *testing.T) {
		tied := []Zone{
			feeZone("younger", 5, 700, base.Add(time.Hour)),
			feeZone("older", 5, 600, base),
		}
		z, blocked := SelectZone(tied, 4)
		require.Empty(t, blocked)
		assert.Equal(t, "older", z.ID)
	})

	t.Run("input order does not matter", func(t *testing.T) {
		reversed := []Zone{zones[1], zones[0]}
		z, blocked := SelectZone(reversed, 2)
		require.Empty(t, blocked)
		assert.Equal(t, "near", z.ID)
	})
}

func TestSelectZoneDoesNotMutateInput(t *testing.T) {
	base := time.Now()
	zones := []Zone{
		feeZone("b", 10, 800, base),
		feeZone("a", 3, 500, base),
	}
	SelectZone(zones, 2)
	assert.Equal(t, "b", zones[0].ID)
	assert.Equal(t, "a", zones[1].ID)
}
