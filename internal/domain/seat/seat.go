package seat

import (
	"fmt"
	"time"
)

// Category is the pricing tier of a seat, derived from its row letter.
type Category string

const (
	CategoryRecliner Category = "Recliner"
	CategoryGold     Category = "Gold"
	CategorySilver   Category = "Silver"
)

// Default auditorium grid: rows A-G, columns 1-9.
const (
	FirstRow   = 'A'
	LastRow    = 'G'
	ColumnsMax = 9
)

// CategoryPricing maps each category to a per-seat price in whole currency units.
type CategoryPricing map[Category]int64

// DefaultPricing returns the standard tier prices.
func DefaultPricing() CategoryPricing {
	return CategoryPricing{
		CategoryRecliner: 700,
		CategoryGold:     500,
		CategorySilver:   300,
	}
}

// CategoryForRow maps a row letter to its pricing tier. Rows A-B are
// Recliner, C-D Gold, E-G Silver. The second return value is false for
// rows outside the grid.
func CategoryForRow(row byte) (Category, bool) {
	switch {
	case row >= 'A' && row <= 'B':
		return CategoryRecliner, true
	case row >= 'C' && row <= 'D':
		return CategoryGold, true
	case row >= 'E' && row <= LastRow:
		return CategorySilver, true
	default:
		return "", false
	}
}

// ParseCategory validates a category name supplied by a caller.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryRecliner, CategoryGold, CategorySilver:
		return Category(s), true
	default:
		return "", false
	}
}

// Seat is the aggregate for one seat of one showtime. The booked flag is
// the single source of truth for availability and is only mutated through
// the store's conditional-write primitive.
type Seat struct {
	id         uint
	showtimeID uint
	seatNo     string
	category   Category
	price      int64
	booked     bool
	createdAt  time.Time
	updatedAt  time.Time
}

// --- Getters ---

func (s *Seat) ID() uint            { return s.id }
func (s *Seat) ShowtimeID() uint    { return s.showtimeID }
func (s *Seat) SeatNo() string      { return s.seatNo }
func (s *Seat) Category() Category  { return s.category }
func (s *Seat) Price() int64        { return s.price }
func (s *Seat) Booked() bool        { return s.booked }
func (s *Seat) CreatedAt() time.Time { return s.createdAt }
func (s *Seat) UpdatedAt() time.Time { return s.updatedAt }

// BuildGrid produces the seats for the default row-by-column auditorium
// grid of a showtime, priced per category. Unpriced categories fall back
// to the default tier prices.
func BuildGrid(showtimeID uint, pricing CategoryPricing) []*Seat {
	defaults := DefaultPricing()
	now := time.Now().UTC()

	seats := make([]*Seat, 0, int(LastRow-FirstRow+1)*ColumnsMax)
	for row := byte(FirstRow); row <= LastRow; row++ {
		category, _ := CategoryForRow(row)
		price, ok := pricing[category]
		if !ok {
			price = defaults[category]
		}
		for col := 1; col <= ColumnsMax; col++ {
			seats = append(seats, &Seat{
				showtimeID: showtimeID,
				seatNo:     fmt.Sprintf("%c%d", row, col),
				category:   category,
				price:      price,
				booked:     false,
				createdAt:  now,
				updatedAt:  now,
			})
		}
	}
	return seats
}

// Reconstitute rebuilds a Seat from persisted data.
func Reconstitute(
	id, showtimeID uint,
	seatNo string,
	category Category,
	price int64,
	booked bool,
	createdAt, updatedAt time.Time,
) *Seat {
	return &Seat{
		id:         id,
		showtimeID: showtimeID,
		seatNo:     seatNo,
		category:   category,
		price:      price,
		booked:     booked,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}
