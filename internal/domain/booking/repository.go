package booking

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for booking receipts.
type Repository interface {
	// Create persists a new booking and returns it with its generated key.
	Create(ctx context.Context, b *Booking) (*Booking, error)

	// FindForCancellation locates the booking a buyer holds on one seat of
	// one showtime.
	FindForCancellation(ctx context.Context, buyerID, seatNo string, showtimeID uint) (*Booking, error)

	// ListByBuyer returns every booking of a buyer, newest first.
	ListByBuyer(ctx context.Context, buyerID string) ([]*Booking, error)

	// CountByTransaction reports how many bookings reference a transaction.
	// Used for orphan cleanup on cancellation.
	CountByTransaction(ctx context.Context, transactionID uuid.UUID) (int64, error)

	// Delete removes a booking by its key.
	Delete(ctx context.Context, id uint) error
}
