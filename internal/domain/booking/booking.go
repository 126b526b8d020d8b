package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking is the user-facing receipt for one confirmed seat assignment.
// Movie, theater and show time are denormalized at booking time so the
// receipt stays stable even if catalog rows later change. A booking
// exists iff its transaction is paid and its seat is marked booked.
type Booking struct {
	id            uint
	buyerID       string
	buyerName     string
	transactionID uuid.UUID
	showtimeID    uint
	movieName     string
	theaterName   string
	showTime      time.Time
	seatNo        string
	bookedAt      time.Time
}

// New creates a Booking receipt for a committed seat.
func New(
	buyerID, buyerName string,
	transactionID uuid.UUID,
	showtimeID uint,
	movieName, theaterName string,
	showTime time.Time,
	seatNo string,
) *Booking {
	return &Booking{
		buyerID:       buyerID,
		buyerName:     buyerName,
		transactionID: transactionID,
		showtimeID:    showtimeID,
		movieName:     movieName,
		theaterName:   theaterName,
		showTime:      showTime,
		seatNo:        seatNo,
		bookedAt:      time.Now().UTC(),
	}
}

// --- Getters ---

func (b *Booking) ID() uint                 { return b.id }
func (b *Booking) BuyerID() string          { return b.buyerID }
func (b *Booking) BuyerName() string        { return b.buyerName }
func (b *Booking) TransactionID() uuid.UUID { return b.transactionID }
func (b *Booking) ShowtimeID() uint         { return b.showtimeID }
func (b *Booking) MovieName() string        { return b.movieName }
func (b *Booking) TheaterName() string      { return b.theaterName }
func (b *Booking) ShowTime() time.Time      { return b.showTime }
func (b *Booking) SeatNo() string           { return b.seatNo }
func (b *Booking) BookedAt() time.Time      { return b.bookedAt }

// Reconstitute rebuilds a Booking from persisted data.
func Reconstitute(
	id uint,
	buyerID, buyerName string,
	transactionID uuid.UUID,
	showtimeID uint,
	movieName, theaterName string,
	showTime time.Time,
	seatNo string,
	bookedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		buyerID:       buyerID,
		buyerName:     buyerName,
		transactionID: transactionID,
		showtimeID:    showtimeID,
		movieName:     movieName,
		theaterName:   theaterName,
		showTime:      showTime,
		seatNo:        seatNo,
		bookedAt:      bookedAt,
	}
}
