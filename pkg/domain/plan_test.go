package domain_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/pkg/domain"
)

func makeDays(n int) []domain.DayPlan {
	days := make([]domain.DayPlan, 0, n)
	for i := 1; i <= n; i++ {
		d := domain.NewDay(i)
		d.Destinations = []domain.Destination{{
			ID:    "dest-" + strconv.Itoa(i),
			Name:  "Stop " + strconv.Itoa(i),
			Costs: []domain.CostItem{{ID: "c", OriginalAmount: "10", OriginalCurrency: domain.CurrencyUSD}},
		}}
		days = append(days, d)
	}
	return days
}

func assertContiguous(t *testing.T, days []domain.DayPlan) {
	t.Helper()
	for i, d := range days {
		assert.Equal(t, strconv.Itoa(i+1), d.ID)
		assert.Equal(t, i+1, d.DayNumber)
	}
}

func TestAddDayAfter(t *testing.T) {
	days, err := domain.AddDayAfter(makeDays(3), "2")
	require.NoError(t, err)

	require.Len(t, days, 4)
	assertContiguous(t, days)
	// The inserted day is empty and sits at position 3; the old day 3
	// moved to position 4 keeping its content.
	assert.Empty(t, days[2].Destinations)
	assert.Equal(t, "Stop 3", days[3].Destinations[0].Name)
}

func TestAddDayAfterUnknownDay(t *testing.T) {
	_, err := domain.AddDayAfter(makeDays(2), "9")
	assert.ErrorIs(t, err, domain.ErrDayNotFound)
}

func TestRemoveDayRenumbers(t *testing.T) {
	days, err := domain.RemoveDay(makeDays(3), "2")
	require.NoError(t, err)

	require.Len(t, days, 2)
	assertContiguous(t, days)
	// The former day 3 is now day 2 but keeps its destinations.
	assert.Equal(t, "Stop 3", days[1].Destinations[0].Name)
}

func TestRemoveLastRemainingDay(t *testing.T) {
	original := makeDays(1)
	days, err := domain.RemoveDay(original, "1")

	assert.ErrorIs(t, err, domain.ErrLastDay)
	// The slice comes back unchanged, not nil.
	require.Len(t, days, 1)
	assert.Equal(t, "Stop 1", days[0].Destinations[0].Name)
}

func TestSwapDays(t *testing.T) {
	days, err := domain.SwapDays(makeDays(3), "1", "3")
	require.NoError(t, err)

	assertContiguous(t, days)
	assert.Equal(t, "Stop 3", days[0].Destinations[0].Name)
	assert.Equal(t, "Stop 1", days[2].Destinations[0].Name)
}

func TestDeleteRange(t *testing.T) {
	days, err := domain.DeleteRange(makeDays(5), 2, 4)
	require.NoError(t, err)

	require.Len(t, days, 2)
	assertContiguous(t, days)
	assert.Equal(t, "Stop 1", days[0].Destinations[0].Name)
	assert.Equal(t, "Stop 5", days[1].Destinations[0].Name)
}

func TestDeleteRangeSingleDay(t *testing.T) {
	days, err := domain.DeleteRange(makeDays(3), 2, 2)
	require.NoError(t, err)

	require.Len(t, days, 2)
	assert.Equal(t, "Stop 1", days[0].Destinations[0].Name)
	assert.Equal(t, "Stop 3", days[1].Destinations[0].Name)
}

func TestDeleteRangeEverything(t *testing.T) {
	days, err := domain.DeleteRange(makeDays(3), 1, 3)
	require.NoError(t, err)

	// Deleting every day leaves one fresh empty day.
	require.Len(t, days, 1)
	assert.Equal(t, "1", days[0].ID)
	assert.Empty(t, days[0].Destinations)
}

func TestDeleteRangeOutOfBounds(t *testing.T) {
	_, err := domain.DeleteRange(makeDays(3), 2, 5)
	assert.ErrorIs(t, err, domain.ErrDayNotFound)

	_, err = domain.DeleteRange(makeDays(3), 0, 2)
	assert.ErrorIs(t, err, domain.ErrDayNotFound)
}

func TestResize(t *testing.T) {
	grown := domain.Resize(makeDays(2), 4)
	require.Len(t, grown, 4)
	assertContiguous(t, grown)
	assert.Equal(t, "Stop 2", grown[1].Destinations[0].Name)
	assert.Empty(t, grown[3].Destinations)

	shrunk := domain.Resize(makeDays(4), 2)
	require.Len(t, shrunk, 2)
	assertContiguous(t, shrunk)
	assert.Equal(t, "Stop 2", shrunk[1].Destinations[0].Name)
}

func TestRenumberAfterOperationSequence(t *testing.T) {
	days := makeDays(2)

	var err error
	days = domain.AddDay(days)
	days, err = domain.AddDayAfter(days, "1")
	require.NoError(t, err)
	days, err = domain.SwapDays(days, "2", "4")
	require.NoError(t, err)
	days, err = domain.RemoveDay(days, "3")
	require.NoError(t, err)

	require.Len(t, days, 3)
	assertContiguous(t, days)
	require.NoError(t, domain.Check(domain.TripPlan{Name: "t", Days: days}))
}

func TestCheckRejectsDriftedNumbering(t *testing.T) {
	days := makeDays(2)
	days[1].ID = "5"
	assert.Error(t, domain.Check(domain.TripPlan{Days: days}))

	assert.Error(t, domain.Check(domain.TripPlan{Days: nil}))
}

func TestCloneIsDeep(t *testing.T) {
	plan := domain.TripPlan{Name: "t", Days: makeDays(2)}
	cp := plan.Clone()

	cp.Days[0].Destinations[0].Name = "changed"
	cp.Days[0].Destinations[0].Costs[0].Amount = "999"

	assert.Equal(t, "Stop 1", plan.Days[0].Destinations[0].Name)
	assert.Empty(t, plan.Days[0].Destinations[0].Costs[0].Amount)
}
