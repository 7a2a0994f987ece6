package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSeatCount(t *testing.T) {
	categories := []CategoryConfig{
		{Name: "VIP", Price: 100, Rows: []string{"A", "B"}, SeatsPerRow: 8},
		{Name: "General", Price: 25, Rows: []string{"C", "D", "E"}, SeatsPerRow: 12},
	}

	seats, err := Compile(categories)
	require.NoError(t, err)
	assert.Len(t, seats, 2*8+3*12)

	ids := make(map[string]bool)
	for _, seat := range seats {
		assert.False(t, ids[seat.ID], "duplicate seat id %s", seat.ID)
		ids[seat.ID] = true
	}
}

func TestCompileEmptyConfiguration(t *testing.T) {
	seats, err := Compile(nil)
	require.NoError(t, err)
	assert.Empty(t, seats)
}

func TestCompileDeterministicAcrossInsertionOrder(t *testing.T) {
	forward := []CategoryConfig{
		{Name: "VIP", Price: 100, ColorTag: "gold", Rows: []string{"A", "B"}, SeatsPerRow: 6, AisleAfter: []int{3}},
		{Name: "General", Price: 25, ColorTag: "blue", Rows: []string{"C"}, SeatsPerRow: 10},
	}
	reversed := []CategoryConfig{
		{Name: "General", Price: 25, ColorTag: "blue", Rows: []string{"C"}, SeatsPerRow: 10},
		{Name: "VIP", Price: 100, ColorTag: "gold", Rows: []string{"B", "A"}, SeatsPerRow: 6, AisleAfter: []int{3}},
	}

	first, err := Compile(forward)
	require.NoError(t, err)
	second, err := Compile(reversed)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// Reordering categories must never reassign existing bookings: the id set is
// fixed by (row, slot), not by array position.
func TestSeatIdentitySurvivesCategoryReordering(t *testing.T) {
	original := []CategoryConfig{
		{Name: "Front", Price: 80, Rows: []string{"A"}, SeatsPerRow: 4},
		{Name: "Middle", Price: 50, Rows: []string{"B"}, SeatsPerRow: 4},
		{Name: "Back", Price: 20, Rows: []string{"C"}, SeatsPerRow: 4},
	}
	reordered := []CategoryConfig{original[2], original[0], original[1]}

	idSet := func(seats []CompiledSeat) map[string]string {
		set := make(map[string]string)
		for _, seat := range seats {
			set[seat.ID] = seat.CategoryName
		}
		return set
	}

	first, err := Compile(original)
	require.NoError(t, err)
	second, err := Compile(reordered)
	require.NoError(t, err)

	assert.Equal(t, idSet(first), idSet(second))
}

func TestCompileAisleColumns(t *testing.T) {
	categories := []CategoryConfig{
		{Name: "Main", Price: 40, Rows: []string{"A"}, SeatsPerRow: 10, AisleAfter: []int{3, 7}},
	}

	seats, err := Compile(categories)
	require.NoError(t, err)
	require.Len(t, seats, 10)

	columns := make(map[int]int)
	for _, seat := range seats {
		columns[seat.SlotIndex] = seat.DisplayColumn
	}

	assert.Equal(t, 1, columns[1])
	assert.Equal(t, 3, columns[3])
	assert.Equal(t, 6, columns[4])
	assert.Equal(t, 9, columns[7])
	assert.Equal(t, 12, columns[8])
	assert.Equal(t, 14, columns[10])
}

func TestCompileRowsInNaturalLabelOrder(t *testing.T) {
	categories := []CategoryConfig{
		{Name: "Mixed", Price: 10, Rows: []string{"B", "A10", "A2"}, SeatsPerRow: 1},
	}

	seats, err := Compile(categories)
	require.NoError(t, err)
	require.Len(t, seats, 3)

	assert.Equal(t, "A2", seats[0].Row)
	assert.Equal(t, "A10", seats[1].Row)
	assert.Equal(t, "B", seats[2].Row)
}

func TestCompileRowConflict(t *testing.T) {
	categories := []CategoryConfig{
		{Name: "VIP", Price: 100, Rows: []string{"A"}, SeatsPerRow: 5},
		{Name: "General", Price: 25, Rows: []string{"A"}, SeatsPerRow: 5},
	}

	_, err := Compile(categories)
	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "A", conflict.Row)
	assert.Equal(t, "VIP", conflict.FirstCategory)
	assert.Equal(t, "General", conflict.SecondCategory)
}

func TestCompileValidation(t *testing.T) {
	tests := []struct {
		name     string
		category CategoryConfig
		field    string
	}{
		{
			name:     "non-positive seats per row",
			category: CategoryConfig{Name: "VIP", Price: 100, Rows: []string{"A"}, SeatsPerRow: 0},
			field:    "seats_per_row",
		},
		{
			name:     "empty name",
			category: CategoryConfig{Name: "  ", Price: 100, Rows: []string{"A"}, SeatsPerRow: 5},
			field:    "name",
		},
		{
			name:     "negative price",
			category: CategoryConfig{Name: "VIP", Price: -1, Rows: []string{"A"}, SeatsPerRow: 5},
			field:    "price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile([]CategoryConfig{tt.category})
			require.Error(t, err)

			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.field, validation.Field)
		})
	}
}

func TestCompileDenormalizesCategoryFields(t *testing.T) {
	categories := []CategoryConfig{
		{Name: "VIP", Price: 100, ColorTag: "gold", Rows: []string{"A"}, SeatsPerRow: 2},
	}

	seats, err := Compile(categories)
	require.NoError(t, err)
	require.Len(t, seats, 2)

	for _, seat := range seats {
		assert.Equal(t, "VIP", seat.CategoryName)
		assert.Equal(t, 100.0, seat.Price)
		assert.Equal(t, "gold", seat.ColorTag)
		assert.Equal(t, SeatID(seat.Row, seat.SlotIndex), seat.ID)
	}
}
