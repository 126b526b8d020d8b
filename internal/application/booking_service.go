package application

import (
	"context"
	"time"

	bookingDomain "github.com/cinetix/service-booking/internal/domain/booking"
	"github.com/cinetix/service-booking/internal/saga"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookSeatRequest is the DTO for booking one seat through the payment protocol.
type BookSeatRequest struct {
	BuyerID    string `json:"buyer_id" binding:"required,email"`
	BuyerName  string `json:"buyer_name" binding:"required"`
	ShowtimeID uint   `json:"showtime_id" binding:"required"`
	SeatNo     string `json:"seat_no" binding:"required"`
}

// CancelBookingRequest is the DTO for cancelling a booking.
type CancelBookingRequest struct {
	BuyerID    string `json:"buyer_id" binding:"required,email"`
	ShowtimeID uint   `json:"showtime_id" binding:"required"`
	SeatNo     string `json:"seat_no" binding:"required"`
}

// BookingDTO is the API response DTO for a booking receipt.
type BookingDTO struct {
	ID            uint      `json:"id"`
	BuyerID       string    `json:"buyer_id"`
	BuyerName     string    `json:"buyer_name"`
	TransactionID uuid.UUID `json:"transaction_id"`
	ShowtimeID    uint      `json:"showtime_id"`
	MovieName     string    `json:"movie_name"`
	TheaterName   string    `json:"theater_name"`
	ShowTime      time.Time `json:"show_time"`
	SeatNo        string    `json:"seat_no"`
	BookedAt      time.Time `json:"booked_at"`
}

// BookingResultDTO pairs the receipt with the committed seat.
type BookingResultDTO struct {
	Booking BookingDTO `json:"booking"`
	Seat    SeatDTO    `json:"seat"`
}

// BookingService is the application service for the booking use cases.
type BookingService struct {
	sagaSvc  *saga.ReservationSagaService
	bookings bookingDomain.Repository
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	sagaSvc *saga.ReservationSagaService,
	bookings bookingDomain.Repository,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		sagaSvc:  sagaSvc,
		bookings: bookings,
		logger:   logger,
	}
}

// Book runs the reservation protocol for one seat.
func (s *BookingService) Book(ctx context.Context, req BookSeatRequest) (*BookingResultDTO, error) {
	s.logger.Info("booking seat",
		zap.String("buyer_id", req.BuyerID),
		zap.Uint("showtime_id", req.ShowtimeID),
		zap.String("seat_no", req.SeatNo),
	)

	b, st, err := s.sagaSvc.BookSeat(ctx, req.BuyerID, req.BuyerName, req.ShowtimeID, req.SeatNo)
	if err != nil {
		s.logger.Warn("booking failed",
			zap.String("buyer_id", req.BuyerID),
			zap.String("seat_no", req.SeatNo),
			zap.Error(err),
		)
		return nil, err
	}

	return &BookingResultDTO{
		Booking: toBookingDTO(b),
		Seat:    toSeatDTO(st),
	}, nil
}

// Cancel reverses a booking and releases its seat.
func (s *BookingService) Cancel(ctx context.Context, req CancelBookingRequest) error {
	s.logger.Info("cancelling booking",
		zap.String("buyer_id", req.BuyerID),
		zap.Uint("showtime_id", req.ShowtimeID),
		zap.String("seat_no", req.SeatNo),
	)
	return s.sagaSvc.Cancel(ctx, req.BuyerID, req.SeatNo, req.ShowtimeID)
}

// ListByBuyer returns a buyer's booking history, newest first.
func (s *BookingService) ListByBuyer(ctx context.Context, buyerID string) ([]BookingDTO, error) {
	bookings, err := s.bookings.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, b := range bookings {
		dtos[i] = toBookingDTO(b)
	}
	return dtos, nil
}

// toBookingDTO maps a domain Booking to its API DTO.
func toBookingDTO(b *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:            b.ID(),
		BuyerID:       b.BuyerID(),
		BuyerName:     b.BuyerName(),
		TransactionID: b.TransactionID(),
		ShowtimeID:    b.ShowtimeID(),
		MovieName:     b.MovieName(),
		TheaterName:   b.TheaterName(),
		ShowTime:      b.ShowTime(),
		SeatNo:        b.SeatNo(),
		BookedAt:      b.BookedAt(),
	}
}
