package seat

import "context"

// Repository defines the persistence contract for the seatmap store.
type Repository interface {
	// GenerateSeatmap bulk-inserts the seats for a showtime. It fails with a
	// conflict error if any seats already exist for that showtime; the
	// insert is all-or-nothing.
	GenerateSeatmap(ctx context.Context, showtimeID uint, seats []*Seat) error

	// GetSeat retrieves one seat by showtime and seat number.
	GetSeat(ctx context.Context, showtimeID uint, seatNo string) (*Seat, error)

	// ListByShowtime returns every seat of a showtime.
	ListByShowtime(ctx context.Context, showtimeID uint) ([]*Seat, error)

	// ListAvailable returns the unbooked seats of a showtime.
	ListAvailable(ctx context.Context, showtimeID uint) ([]*Seat, error)

	// ListByCategory returns the seats of one category for a showtime.
	ListByCategory(ctx context.Context, showtimeID uint, category Category) ([]*Seat, error)

	// TrySetOccupancy performs a compare-and-set on the booked flag: the
	// write succeeds only if the seat's current flag equals expected at
	// write time. It returns the updated seat, a not-found error if the
	// seat does not exist, or a conflict error if the flag did not match.
	// This is the only mutating primitive the reservation protocol uses.
	TrySetOccupancy(ctx context.Context, showtimeID uint, seatNo string, expected, next bool) (*Seat, error)

	// UpdateCategoryPrice sets the price of every seat in a category and
	// returns the updated seats.
	UpdateCategoryPrice(ctx context.Context, showtimeID uint, category Category, price int64) ([]*Seat, error)
}
