package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cinetix/service-booking/internal/domain"
	seatDomain "github.com/cinetix/service-booking/internal/domain/seat"
	"gorm.io/gorm"
)

// SeatModel is the GORM persistence model for the seatmap table.
type SeatModel struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	ShowtimeID uint      `gorm:"not null;uniqueIndex:idx_seatmap_showtime_seat"`
	SeatNo     string    `gorm:"type:varchar(8);not null;uniqueIndex:idx_seatmap_showtime_seat"`
	Category   string    `gorm:"type:varchar(16);not null;index:idx_seatmap_showtime_category"`
	Price      int64     `gorm:"not null"`
	Booked     bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt  time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (SeatModel) TableName() string {
	return "seatmap"
}

// SeatRepositoryImpl is the GORM-based implementation of seat.Repository.
type SeatRepositoryImpl struct {
	db *gorm.DB
}

// NewSeatRepository creates a new GORM-based seatmap store.
func NewSeatRepository(db *gorm.DB) *SeatRepositoryImpl {
	return &SeatRepositoryImpl{db: db}
}

// GenerateSeatmap bulk-inserts the seats for a showtime inside one DB
// transaction. Inserting twice for the same showtime is a conflict and
// leaves no partial rows behind.
func (r *SeatRepositoryImpl) GenerateSeatmap(ctx context.Context, showtimeID uint, seats []*seatDomain.Seat) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&SeatModel{}).Where("showtime_id = ?", showtimeID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return domain.NewConflictError(fmt.Sprintf("seatmap already exists for showtime %d", showtimeID))
		}

		models := make([]SeatModel, len(seats))
		for i, s := range seats {
			models[i] = *toSeatModel(s)
		}
		return tx.CreateInBatches(models, 100).Error
	})
}

// GetSeat retrieves one seat by showtime and seat number.
func (r *SeatRepositoryImpl) GetSeat(ctx context.Context, showtimeID uint, seatNo string) (*seatDomain.Seat, error) {
	var model SeatModel
	err := r.db.WithContext(ctx).
		Where("showtime_id = ? AND seat_no = ?", showtimeID, seatNo).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Seat", fmt.Sprintf("%s (showtime %d)", seatNo, showtimeID))
		}
		return nil, err
	}
	return toSeatDomain(&model), nil
}

// ListByShowtime returns every seat of a showtime ordered by seat number.
func (r *SeatRepositoryImpl) ListByShowtime(ctx context.Context, showtimeID uint) ([]*seatDomain.Seat, error) {
	var models []SeatModel
	err := r.db.WithContext(ctx).
		Where("showtime_id = ?", showtimeID).
		Order("seat_no").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toSeatDomainSlice(models), nil
}

// ListAvailable returns the unbooked seats of a showtime.
func (r *SeatRepositoryImpl) ListAvailable(ctx context.Context, showtimeID uint) ([]*seatDomain.Seat, error) {
	var models []SeatModel
	err := r.db.WithContext(ctx).
		Where("showtime_id = ? AND booked = ?", showtimeID, false).
		Order("seat_no").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toSeatDomainSlice(models), nil
}

// ListByCategory returns the seats of one category for a showtime.
func (r *SeatRepositoryImpl) ListByCategory(ctx context.Context, showtimeID uint, category seatDomain.Category) ([]*seatDomain.Seat, error) {
	var models []SeatModel
	err := r.db.WithContext(ctx).
		Where("showtime_id = ? AND category = ?", showtimeID, string(category)).
		Order("seat_no").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toSeatDomainSlice(models), nil
}

// TrySetOccupancy flips the booked flag with a compare-and-set: the UPDATE
// only matches while the current flag equals expected, so among any set of
// concurrent attempts on one seat at most one transition can succeed. A
// zero row count means either the seat does not exist or the flag already
// changed; the two are told apart with a follow-up existence check.
func (r *SeatRepositoryImpl) TrySetOccupancy(ctx context.Context, showtimeID uint, seatNo string, expected, next bool) (*seatDomain.Seat, error) {
	result := r.db.WithContext(ctx).
		Model(&SeatModel{}).
		Where("showtime_id = ? AND seat_no = ? AND booked = ?", showtimeID, seatNo, expected).
		Updates(map[string]interface{}{
			"booked":     next,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		var exists int64
		if err := r.db.WithContext(ctx).Model(&SeatModel{}).
			Where("showtime_id = ? AND seat_no = ?", showtimeID, seatNo).
			Count(&exists).Error; err != nil {
			return nil, err
		}
		if exists == 0 {
			return nil, domain.NewNotFoundError("Seat", fmt.Sprintf("%s (showtime %d)", seatNo, showtimeID))
		}
		if expected {
			return nil, domain.NewConflictError(fmt.Sprintf("seat %s is already available", seatNo))
		}
		return nil, domain.NewConflictError(fmt.Sprintf("seat %s is already booked", seatNo))
	}

	return r.GetSeat(ctx, showtimeID, seatNo)
}

// UpdateCategoryPrice sets the price of every seat in a category. Price
// changes carry no concurrency guard; they are not safety-critical.
func (r *SeatRepositoryImpl) UpdateCategoryPrice(ctx context.Context, showtimeID uint, category seatDomain.Category, price int64) ([]*seatDomain.Seat, error) {
	result := r.db.WithContext(ctx).
		Model(&SeatModel{}).
		Where("showtime_id = ? AND category = ?", showtimeID, string(category)).
		Updates(map[string]interface{}{
			"price":      price,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.NewNotFoundError("Category", fmt.Sprintf("%s (showtime %d)", category, showtimeID))
	}
	return r.ListByCategory(ctx, showtimeID, category)
}

// toSeatDomain maps a SeatModel to the domain Seat aggregate.
func toSeatDomain(model *SeatModel) *seatDomain.Seat {
	return seatDomain.Reconstitute(
		model.ID,
		model.ShowtimeID,
		model.SeatNo,
		seatDomain.Category(model.Category),
		model.Price,
		model.Booked,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func toSeatDomainSlice(models []SeatModel) []*seatDomain.Seat {
	seats := make([]*seatDomain.Seat, len(models))
	for i := range models {
		seats[i] = toSeatDomain(&models[i])
	}
	return seats
}

// toSeatModel maps a domain Seat to a SeatModel for persistence.
func toSeatModel(s *seatDomain.Seat) *SeatModel {
	return &SeatModel{
		ID:         s.ID(),
		ShowtimeID: s.ShowtimeID(),
		SeatNo:     s.SeatNo(),
		Category:   string(s.Category()),
		Price:      s.Price(),
		Booked:     s.Booked(),
		CreatedAt:  s.CreatedAt(),
		UpdatedAt:  s.UpdatedAt(),
	}
}
