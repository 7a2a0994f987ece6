package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoRowInventory(t *testing.T) []CompiledSeat {
	t.Helper()
	seats, err := Compile([]CategoryConfig{
		{Name: "VIP", Price: 100, Rows: []string{"A"}, SeatsPerRow: 5},
		{Name: "General", Price: 25, Rows: []string{"B"}, SeatsPerRow: 5},
	})
	require.NoError(t, err)
	require.Len(t, seats, 10)
	return seats
}

func TestReconcileBookedDominatesSelection(t *testing.T) {
	inventory := twoRowInventory(t)

	booked := map[string]bool{"A-2": true}
	selection := NewSelectionFrom([]string{"A-2", "B-1"}, DefaultMaxSelectable)

	states := Reconcile(inventory, booked, selection)

	// A stale-selected seat renders as booked, never both.
	assert.Equal(t, SeatBooked, states["A-2"])
	assert.Equal(t, SeatSelected, states["B-1"])
	assert.Equal(t, SeatAvailable, states["A-1"])
	assert.Len(t, states, len(inventory))
}

func TestToggleSelectAndDeselect(t *testing.T) {
	selection := NewSelection(5)
	booked := map[string]bool{}

	require.NoError(t, selection.Toggle("A-1", booked))
	assert.True(t, selection.Has("A-1"))
	assert.Equal(t, 1, selection.Count())

	require.NoError(t, selection.Toggle("A-1", booked))
	assert.False(t, selection.Has("A-1"))
	assert.Equal(t, 0, selection.Count())
}

func TestToggleRejectedAtCap(t *testing.T) {
	selection := NewSelection(2)
	booked := map[string]bool{}

	require.NoError(t, selection.Toggle("A-1", booked))
	require.NoError(t, selection.Toggle("A-2", booked))

	err := selection.Toggle("A-3", booked)
	require.Error(t, err)

	var rejected *SelectionRejected
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "A-3", rejected.SeatID)

	// Selection unchanged after the rejection.
	assert.Equal(t, []string{"A-1", "A-2"}, selection.IDs())

	// De-selecting at the cap still works.
	require.NoError(t, selection.Toggle("A-2", booked))
	assert.Equal(t, 1, selection.Count())
}

func TestToggleRejectedOnBookedSeat(t *testing.T) {
	selection := NewSelection(5)
	booked := map[string]bool{"A-1": true}

	err := selection.Toggle("A-1", booked)
	require.Error(t, err)

	var rejected *SelectionRejected
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "A-1", rejected.SeatID)
	assert.Equal(t, 0, selection.Count())
}

func TestDefaultSelectionCap(t *testing.T) {
	selection := NewSelection(0)
	assert.Equal(t, DefaultMaxSelectable, selection.Max())
}

func TestTotalPriceRecomputedOnSelectionChange(t *testing.T) {
	inventory := twoRowInventory(t)
	booked := map[string]bool{}
	selection := NewSelection(DefaultMaxSelectable)

	require.NoError(t, selection.Toggle("A-1", booked))
	assert.Equal(t, 100.0, TotalPrice(inventory, selection))

	require.NoError(t, selection.Toggle("B-1", booked))
	assert.Equal(t, 125.0, TotalPrice(inventory, selection))

	require.NoError(t, selection.Toggle("A-1", booked))
	assert.Equal(t, 25.0, TotalPrice(inventory, selection))
}

// Mixing categories in one selection is allowed; prices sum per seat.
func TestBookingExampleEndToEnd(t *testing.T) {
	inventory := twoRowInventory(t)
	booked := map[string]bool{}

	selection := NewSelection(DefaultMaxSelectable)
	require.NoError(t, selection.Toggle("A-3", booked))
	require.NoError(t, selection.Toggle("B-1", booked))

	states := Reconcile(inventory, booked, selection)
	assert.Equal(t, SeatSelected, states["A-3"])
	assert.Equal(t, SeatSelected, states["B-1"])
	assert.Equal(t, 125.0, TotalPrice(inventory, selection))
}

func TestReconcileWithNilSelection(t *testing.T) {
	inventory := twoRowInventory(t)
	booked := map[string]bool{"B-5": true}

	states := Reconcile(inventory, booked, nil)
	assert.Equal(t, SeatBooked, states["B-5"])
	assert.Equal(t, SeatAvailable, states["A-1"])
	assert.Equal(t, 0.0, TotalPrice(inventory, nil))
}
