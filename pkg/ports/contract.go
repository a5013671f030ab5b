package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/pkg/domain"
)

// RunTripServiceContract runs a suite of tests to verify that a TripService
// implementation adheres to the defined interface contract.
func RunTripServiceContract(t *testing.T, svc TripService) {
	ctx := context.Background()
	token := "contract-token-" + time.Now().Format("20060102150405")

	sample := TripRecord{
		Name:     "Contract Trip",
		Currency: domain.CurrencyUSD,
		Days: []DayRecord{{
			DayNumber: 1,
			Destinations: []DestinationRecord{{
				Name:    "Harbor",
				Order:   0,
				Costs:   []CostRecord{{Amount: "10", OriginalAmount: "10", OriginalCurrency: domain.CurrencyUSD}},
				Address: "1 Quay St",
			}},
		}},
	}

	t.Run("Create assigns id", func(t *testing.T) {
		created, err := svc.Create(ctx, token, sample)
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		got, err := svc.Get(ctx, token, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Contract Trip", got.Name)
		assert.Len(t, got.Days, 1)
		assert.Equal(t, 1, got.Days[0].DayNumber)
	})

	t.Run("Update overwrites", func(t *testing.T) {
		created, err := svc.Create(ctx, token, sample)
		require.NoError(t, err)

		created.Name = "Renamed"
		_, err = svc.Update(ctx, token, created)
		require.NoError(t, err)

		got, err := svc.Get(ctx, token, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
	})

	t.Run("Get non-existent", func(t *testing.T) {
		_, err := svc.Get(ctx, token, "no-such-trip")
		assert.ErrorIs(t, err, domain.ErrTripNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		created, err := svc.Create(ctx, token, sample)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, token, created.ID))

		_, err = svc.Get(ctx, token, created.ID)
		assert.ErrorIs(t, err, domain.ErrTripNotFound)
	})

	t.Run("List", func(t *testing.T) {
		created, err := svc.Create(ctx, token, sample)
		require.NoError(t, err)
		defer func() { _ = svc.Delete(ctx, token, created.ID) }()

		all, err := svc.List(ctx, token)
		require.NoError(t, err)

		var found bool
		for _, tr := range all {
			if tr.ID == created.ID {
				found = true
			}
		}
		assert.True(t, found, "created trip should appear in List")
	})
}
