package seat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryForRow(t *testing.T) {
	tests := []struct {
		row      byte
		expected Category
		ok       bool
	}{
		{'A', CategoryRecliner, true},
		{'B', CategoryRecliner, true},
		{'C', CategoryGold, true},
		{'D', CategoryGold, true},
		{'E', CategorySilver, true},
		{'F', CategorySilver, true},
		{'G', CategorySilver, true},
		{'H', "", false},
		{'Z', "", false},
		{'a', "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.row), func(t *testing.T) {
			category, ok := CategoryForRow(tt.row)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, category)
		})
	}
}

func TestParseCategory(t *testing.T) {
	for _, name := range []string{"Recliner", "Gold", "Silver"} {
		category, ok := ParseCategory(name)
		assert.True(t, ok)
		assert.Equal(t, Category(name), category)
	}

	for _, name := range []string{"", "gold", "Platinum", "recliner"} {
		_, ok := ParseCategory(name)
		assert.False(t, ok, "expected %q to be rejected", name)
	}
}

func TestBuildGrid_DefaultPricing(t *testing.T) {
	seats := BuildGrid(1, DefaultPricing())

	require.Len(t, seats, 63)

	counts := map[Category]int{}
	byNo := map[string]*Seat{}
	for _, s := range seats {
		counts[s.Category()]++
		byNo[s.SeatNo()] = s

		assert.Equal(t, uint(1), s.ShowtimeID())
		assert.False(t, s.Booked())
	}

	// 2 rows of 9 Recliner, 2 of Gold, 3 of Silver.
	assert.Equal(t, 18, counts[CategoryRecliner])
	assert.Equal(t, 18, counts[CategoryGold])
	assert.Equal(t, 27, counts[CategorySilver])

	assert.Equal(t, int64(700), byNo["A1"].Price())
	assert.Equal(t, int64(700), byNo["B9"].Price())
	assert.Equal(t, int64(500), byNo["C5"].Price())
	assert.Equal(t, int64(500), byNo["D1"].Price())
	assert.Equal(t, int64(300), byNo["E3"].Price())
	assert.Equal(t, int64(300), byNo["G9"].Price())
}

func TestBuildGrid_SeatNumbersCoverGrid(t *testing.T) {
	seats := BuildGrid(7, nil)

	seen := map[string]bool{}
	for _, s := range seats {
		seen[s.SeatNo()] = true
	}

	for row := byte(FirstRow); row <= LastRow; row++ {
		for col := 1; col <= ColumnsMax; col++ {
			no := fmt.Sprintf("%c%d", row, col)
			assert.True(t, seen[no], "missing seat %s", no)
		}
	}
}

func TestBuildGrid_CustomPricingFallsBackToDefaults(t *testing.T) {
	seats := BuildGrid(3, CategoryPricing{CategoryGold: 550})

	for _, s := range seats {
		switch s.Category() {
		case CategoryGold:
			assert.Equal(t, int64(550), s.Price())
		case CategoryRecliner:
			assert.Equal(t, int64(700), s.Price())
		case CategorySilver:
			assert.Equal(t, int64(300), s.Price())
		}
	}
}
