package layout

import (
	"fmt"
	"sort"
	"strings"
)

// SeatID derives the stable identifier for a seat from its row label and
// 1-based slot index.
func SeatID(row string, slotIndex int) string {
	return fmt.Sprintf("%s-%d", row, slotIndex)
}

// Compile turns a vendor's seat-category configuration into the flat seat
// inventory. Output order is (row, slot) with rows in natural label order,
// so the result is identical regardless of category or row insertion order.
func Compile(categories []CategoryConfig) ([]CompiledSeat, error) {
	claimedBy := make(map[string]string)
	for _, cat := range categories {
		if strings.TrimSpace(cat.Name) == "" {
			return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		if cat.SeatsPerRow <= 0 {
			return nil, &ValidationError{Category: cat.Name, Field: "seats_per_row", Reason: "must be positive"}
		}
		if cat.Price < 0 {
			return nil, &ValidationError{Category: cat.Name, Field: "price", Reason: "must not be negative"}
		}
		for _, row := range cat.Rows {
			if owner, taken := claimedBy[row]; taken {
				return nil, &ConflictError{Row: row, FirstCategory: owner, SecondCategory: cat.Name}
			}
			claimedBy[row] = cat.Name
		}
	}

	type rowSpec struct {
		row string
		cat *CategoryConfig
	}
	var specs []rowSpec
	for i := range categories {
		for _, row := range categories[i].Rows {
			specs = append(specs, rowSpec{row: row, cat: &categories[i]})
		}
	}
	// Rows are unique across categories, so sorting by label alone is total.
	sort.Slice(specs, func(i, j int) bool {
		return naturalLess(specs[i].row, specs[j].row)
	})

	var seats []CompiledSeat
	for _, spec := range specs {
		columns := displayColumns(spec.cat.SeatsPerRow, spec.cat.AisleAfter)
		for slot := 1; slot <= spec.cat.SeatsPerRow; slot++ {
			seats = append(seats, CompiledSeat{
				ID:            SeatID(spec.row, slot),
				Row:           spec.row,
				SlotIndex:     slot,
				DisplayColumn: columns[slot],
				CategoryName:  spec.cat.Name,
				Price:         spec.cat.Price,
				ColorTag:      spec.cat.ColorTag,
			})
		}
	}

	return seats, nil
}

// displayColumns maps each 1-based slot to its rendering column. A slot
// listed in aisleAfter pushes every later slot right by two empty columns.
// Computed per row; gaps never change seat identity or count.
func displayColumns(seatsPerRow int, aisleAfter []int) []int {
	gapAfter := make(map[int]bool, len(aisleAfter))
	for _, slot := range aisleAfter {
		gapAfter[slot] = true
	}

	columns := make([]int, seatsPerRow+1)
	column := 0
	for slot := 1; slot <= seatsPerRow; slot++ {
		column++
		if slot > 1 && gapAfter[slot-1] {
			column += 2
		}
		columns[slot] = column
	}
	return columns
}

// naturalLess orders row labels so numeric runs compare by value:
// "A2" < "A10", "B" > "A10".
func naturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		aRun, aNum, aRest := nextRun(a)
		bRun, bNum, bRest := nextRun(b)

		if aNum && bNum {
			if len(aRun) != len(bRun) {
				// Equal-value runs compare by length once leading zeros are trimmed.
				at, bt := strings.TrimLeft(aRun, "0"), strings.TrimLeft(bRun, "0")
				if len(at) != len(bt) {
					return len(at) < len(bt)
				}
				if at != bt {
					return at < bt
				}
			} else if aRun != bRun {
				return aRun < bRun
			}
		} else if aRun != bRun {
			return aRun < bRun
		}
		a, b = aRest, bRest
	}
	return len(a) < len(b)
}

func nextRun(s string) (run string, numeric bool, rest string) {
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }
	numeric = isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == numeric {
		i++
	}
	return s[:i], numeric, s[i:]
}
