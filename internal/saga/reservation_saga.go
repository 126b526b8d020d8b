package saga

import (
	"context"
	"errors"
	"time"

	"github.com/cinetix/service-booking/internal/adapter"
	"github.com/cinetix/service-booking/internal/domain"
	bookingDomain "github.com/cinetix/service-booking/internal/domain/booking"
	"github.com/cinetix/service-booking/internal/domain/catalog"
	seatDomain "github.com/cinetix/service-booking/internal/domain/seat"
	txnDomain "github.com/cinetix/service-booking/internal/domain/transaction"
	"github.com/cinetix/service-booking/internal/events"
	"go.uber.org/zap"
)

// MinorUnitsPerUnit converts a seat price to gateway minor currency units.
const MinorUnitsPerUnit = 100

// ReservationSagaService orchestrates the booking and cancellation
// protocol. The protocol is three storage round trips interleaved with an
// external gateway call, so each step carries a compensating action
// instead of relying on one database transaction.
type ReservationSagaService struct {
	seats          seatDomain.Repository
	transactions   txnDomain.Repository
	bookings       bookingDomain.Repository
	catalog        catalog.Repository
	gateway        adapter.PaymentGateway
	publisher      events.Publisher
	currency       string
	gatewayTimeout time.Duration
	logger         *zap.Logger
}

// NewReservationSagaService creates a new ReservationSagaService.
func NewReservationSagaService(
	seats seatDomain.Repository,
	transactions txnDomain.Repository,
	bookings bookingDomain.Repository,
	cat catalog.Repository,
	gateway adapter.PaymentGateway,
	publisher events.Publisher,
	currency string,
	gatewayTimeout time.Duration,
	logger *zap.Logger,
) *ReservationSagaService {
	return &ReservationSagaService{
		seats:          seats,
		transactions:   transactions,
		bookings:       bookings,
		catalog:        cat,
		gateway:        gateway,
		publisher:      publisher,
		currency:       currency,
		gatewayTimeout: gatewayTimeout,
		logger:         logger,
	}
}

// BookSeat runs the full booking protocol for one seat: record a pending
// transaction, collect payment, then claim the seat with a compare-and-set
// and write the receipt. If the seat claim loses a race after payment, the
// compensation chain refunds the gateway order and moves the transaction
// to refunded, so no paid-but-unfulfilled attempt leaks.
func (s *ReservationSagaService) BookSeat(
	ctx context.Context,
	buyerID, buyerName string,
	showtimeID uint,
	seatNo string,
) (*bookingDomain.Booking, *seatDomain.Seat, error) {
	showtime, err := s.catalog.GetShowtime(ctx, showtimeID)
	if err != nil {
		return nil, nil, err
	}
	movie, err := s.catalog.GetMovie(ctx, showtime.MovieID)
	if err != nil {
		return nil, nil, err
	}
	theater, err := s.catalog.GetTheater(ctx, showtime.TheaterID)
	if err != nil {
		return nil, nil, err
	}

	st, err := s.seats.GetSeat(ctx, showtimeID, seatNo)
	if err != nil {
		return nil, nil, err
	}
	// Fast path: don't start a payment for a seat that is already taken.
	// The compare-and-set below still guards the race where two requests
	// pass this check simultaneously.
	if st.Booked() {
		return nil, nil, domain.NewConflictError("seat " + seatNo + " is already booked")
	}

	txn := txnDomain.New(buyerID)
	amountMinor := st.Price() * MinorUnitsPerUnit

	var (
		order   *adapter.Order
		claimed *seatDomain.Seat
		created *bookingDomain.Booking
	)

	sg := New("book_seat", s.logger)

	// Step 1: persist the pending transaction before anything else, so an
	// audit record exists even if the process dies during the gateway call.
	sg.AddStep(Step{
		Name: "create_transaction",
		Execute: func(ctx context.Context) error {
			return s.transactions.Save(ctx, txn)
		},
		Compensate: func(ctx context.Context) error {
			if txn.Status() != txnDomain.StatusPending {
				return nil
			}
			if err := txn.MarkFailed(); err != nil {
				return err
			}
			txn.IncrementVersion()
			return s.transactions.Update(ctx, txn)
		},
	})

	// Step 2: create the gateway order under a bounded timeout. Timeout and
	// decline look the same to the caller: transaction failed, seat untouched.
	sg.AddStep(Step{
		Name: "create_gateway_order",
		Execute: func(ctx context.Context) error {
			gwCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
			defer cancel()

			o, err := s.gateway.CreateOrder(gwCtx, amountMinor, s.currency)
			if err != nil {
				return domain.NewUnprocessableError("payment declined: " + err.Error())
			}
			order = o
			return nil
		},
		Compensate: func(ctx context.Context) error {
			if order == nil {
				return nil
			}
			return s.gateway.RefundOrder(ctx, order.ID, amountMinor)
		},
	})

	// Step 3: record the payment outcome on the ledger.
	sg.AddStep(Step{
		Name: "mark_paid",
		Execute: func(ctx context.Context) error {
			if err := txn.MarkPaid(order.ID); err != nil {
				return err
			}
			txn.IncrementVersion()
			return s.transactions.Update(ctx, txn)
		},
		Compensate: func(ctx context.Context) error {
			if err := txn.MarkRefunded(); err != nil {
				return err
			}
			txn.IncrementVersion()
			return s.transactions.Update(ctx, txn)
		},
	})

	// Step 4: claim the seat. The conditional write is the concurrency
	// guard: among concurrent attempts on this seat, at most one
	// available->booked transition succeeds.
	sg.AddStep(Step{
		Name: "claim_seat",
		Execute: func(ctx context.Context) error {
			updated, err := s.seats.TrySetOccupancy(ctx, showtimeID, seatNo, false, true)
			if err != nil {
				return err
			}
			claimed = updated
			return nil
		},
		Compensate: func(ctx context.Context) error {
			_, err := s.seats.TrySetOccupancy(ctx, showtimeID, seatNo, true, false)
			if err != nil && !errors.Is(err, domain.ErrConflict) {
				return err
			}
			return nil
		},
	})

	// Step 5: write the receipt with its denormalized catalog snapshot.
	sg.AddStep(Step{
		Name: "create_booking",
		Execute: func(ctx context.Context) error {
			b := bookingDomain.New(
				buyerID, buyerName,
				txn.ID(),
				showtimeID,
				movie.Name, theater.Name,
				showtime.ShowTime,
				seatNo,
			)
			persisted, err := s.bookings.Create(ctx, b)
			if err != nil {
				return err
			}
			created = persisted
			return nil
		},
		Compensate: nil,
	})

	if err := sg.Execute(ctx); err != nil {
		return nil, nil, err
	}

	s.publishConfirmed(ctx, created, txn, amountMinor)
	return created, claimed, nil
}

// Cancel reverses a booking: the seat is released with a compare-and-set,
// the receipt is deleted, and the transaction is removed if no sibling
// booking still references it. A seat that is already available is treated
// as already released, so cancellation is idempotent.
func (s *ReservationSagaService) Cancel(ctx context.Context, buyerID, seatNo string, showtimeID uint) error {
	b, err := s.bookings.FindForCancellation(ctx, buyerID, seatNo, showtimeID)
	if err != nil {
		return err
	}

	if _, err := s.seats.TrySetOccupancy(ctx, showtimeID, seatNo, true, false); err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			return err
		}
		s.logger.Info("seat already released, continuing cancellation",
			zap.String("seat_no", seatNo),
			zap.Uint("showtime_id", showtimeID),
		)
	}

	if err := s.bookings.Delete(ctx, b.ID()); err != nil {
		return err
	}

	remaining, err := s.bookings.CountByTransaction(ctx, b.TransactionID())
	if err != nil {
		return err
	}
	if remaining == 0 {
		if err := s.transactions.Delete(ctx, b.TransactionID()); err != nil {
			return err
		}
	}

	s.publishCancelled(ctx, b)
	return nil
}

// publishConfirmed emits a BookingConfirmedEvent. Publishing is
// best-effort: the booking is already committed, so a broker outage must
// not fail the request.
func (s *ReservationSagaService) publishConfirmed(ctx context.Context, b *bookingDomain.Booking, txn *txnDomain.Transaction, amountMinor int64) {
	event := events.BookingConfirmedEvent{
		BookingID:     b.ID(),
		TransactionID: txn.ID(),
		BuyerID:       b.BuyerID(),
		ShowtimeID:    b.ShowtimeID(),
		SeatNo:        b.SeatNo(),
		AmountMinor:   amountMinor,
		Currency:      s.currency,
		OccurredAt:    time.Now().UTC(),
	}
	ce, err := events.NewCloudEvent("service-booking", events.BookingConfirmed, event)
	if err != nil {
		s.logger.Error("failed to build booking confirmed event", zap.Error(err))
		return
	}
	if err := s.publisher.PublishEvent(ctx, events.TopicBookingEvents, ce); err != nil {
		s.logger.Error("failed to publish booking confirmed event", zap.Error(err))
	}
}

// publishCancelled emits a BookingCancelledEvent, best-effort.
func (s *ReservationSagaService) publishCancelled(ctx context.Context, b *bookingDomain.Booking) {
	event := events.BookingCancelledEvent{
		BookingID:     b.ID(),
		TransactionID: b.TransactionID(),
		BuyerID:       b.BuyerID(),
		ShowtimeID:    b.ShowtimeID(),
		SeatNo:        b.SeatNo(),
		OccurredAt:    time.Now().UTC(),
	}
	ce, err := events.NewCloudEvent("service-booking", events.BookingCancelled, event)
	if err != nil {
		s.logger.Error("failed to build booking cancelled event", zap.Error(err))
		return
	}
	if err := s.publisher.PublishEvent(ctx, events.TopicBookingEvents, ce); err != nil {
		s.logger.Error("failed to publish booking cancelled event", zap.Error(err))
	}
}
