package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingDomain "github.com/cinetix/service-booking/internal/domain/booking"
	"github.com/cinetix/service-booking/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingModel is the GORM persistence model for the bookings table.
// Movie, theater and show time are denormalized receipt fields.
type BookingModel struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	BuyerID       string    `gorm:"type:varchar(255);not null;index"`
	BuyerName     string    `gorm:"type:varchar(255);not null"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index"`
	ShowtimeID    uint      `gorm:"not null;index"`
	MovieName     string    `gorm:"type:varchar(255);not null"`
	TheaterName   string    `gorm:"type:varchar(255);not null"`
	ShowTime      time.Time `gorm:"type:timestamptz;not null"`
	SeatNo        string    `gorm:"type:varchar(8);not null"`
	BookedAt      time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (BookingModel) TableName() string {
	return "bookings"
}

// BookingRepositoryImpl is the GORM-based implementation of booking.Repository.
type BookingRepositoryImpl struct {
	db *gorm.DB
}

// NewBookingRepository creates a new GORM-based booking store.
func NewBookingRepository(db *gorm.DB) *BookingRepositoryImpl {
	return &BookingRepositoryImpl{db: db}
}

// Create persists a new booking and returns it with its generated key.
func (r *BookingRepositoryImpl) Create(ctx context.Context, b *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	model := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return toBookingDomain(model), nil
}

// FindForCancellation locates the booking a buyer holds on one seat of one showtime.
func (r *BookingRepositoryImpl) FindForCancellation(ctx context.Context, buyerID, seatNo string, showtimeID uint) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? AND seat_no = ? AND showtime_id = ?", buyerID, seatNo, showtimeID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", fmt.Sprintf("%s/%s (showtime %d)", buyerID, seatNo, showtimeID))
		}
		return nil, err
	}
	return toBookingDomain(&model), nil
}

// ListByBuyer returns every booking of a buyer, newest first.
func (r *BookingRepositoryImpl) ListByBuyer(ctx context.Context, buyerID string) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("booked_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bookings[i] = toBookingDomain(&models[i])
	}
	return bookings, nil
}

// CountByTransaction reports how many bookings reference a transaction.
func (r *BookingRepositoryImpl) CountByTransaction(ctx context.Context, transactionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("transaction_id = ?", transactionID).
		Count(&count).Error
	return count, err
}

// Delete removes a booking by its key.
func (r *BookingRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&BookingModel{}, id).Error
}

// toBookingDomain maps a BookingModel to the domain aggregate.
func toBookingDomain(model *BookingModel) *bookingDomain.Booking {
	return bookingDomain.Reconstitute(
		model.ID,
		model.BuyerID,
		model.BuyerName,
		model.TransactionID,
		model.ShowtimeID,
		model.MovieName,
		model.TheaterName,
		model.ShowTime,
		model.SeatNo,
		model.BookedAt,
	)
}

// toBookingModel maps a domain Booking to its persistence model.
func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
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
