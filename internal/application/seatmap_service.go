package application

import (
	"context"
	"time"

	"github.com/cinetix/service-booking/internal/domain"
	seatDomain "github.com/cinetix/service-booking/internal/domain/seat"
	"go.uber.org/zap"
)

// SeatDTO is the API response DTO for one seat.
type SeatDTO struct {
	ID         uint      `json:"id"`
	ShowtimeID uint      `json:"showtime_id"`
	SeatNo     string    `json:"seat_no"`
	Category   string    `json:"category"`
	Price      int64     `json:"price"`
	Booked     bool      `json:"booked"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CategorySeatsDTO groups the seats of one category with their price.
type CategorySeatsDTO struct {
	Price int64           `json:"price"`
	Seats []SeatStatusDTO `json:"seats"`
}

// SeatStatusDTO is the compact seat view inside a seatmap response.
type SeatStatusDTO struct {
	SeatNo string `json:"seat_no"`
	Booked bool   `json:"status"`
}

// CategoryAvailabilityDTO summarizes one category of a showtime.
type CategoryAvailabilityDTO struct {
	Category       string `json:"category"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
	Price          int64  `json:"price"`
}

// SeatReleaseError reports a per-seat failure during a bulk release.
type SeatReleaseError struct {
	SeatNo string `json:"seat_no"`
	Error  string `json:"error"`
}

// SeatmapService is the application service for seatmap management. It
// works directly against the seat store; the paid booking protocol lives
// in the reservation saga.
type SeatmapService struct {
	seats  seatDomain.Repository
	logger *zap.Logger
}

// NewSeatmapService creates a new SeatmapService.
func NewSeatmapService(seats seatDomain.Repository, logger *zap.Logger) *SeatmapService {
	return &SeatmapService{seats: seats, logger: logger}
}

// CreateSeatmap generates the default auditorium grid for a showtime with
// the given category pricing. Nil pricing uses the default tiers.
func (s *SeatmapService) CreateSeatmap(ctx context.Context, showtimeID uint, pricing seatDomain.CategoryPricing) ([]SeatDTO, error) {
	if pricing == nil {
		pricing = seatDomain.DefaultPricing()
	}

	grid := seatDomain.BuildGrid(showtimeID, pricing)
	if err := s.seats.GenerateSeatmap(ctx, showtimeID, grid); err != nil {
		s.logger.Error("failed to generate seatmap",
			zap.Uint("showtime_id", showtimeID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("seatmap generated",
		zap.Uint("showtime_id", showtimeID),
		zap.Int("seats", len(grid)),
	)

	created, err := s.seats.ListByShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	return toSeatDTOs(created), nil
}

// GetSeatmap returns the full seatmap of a showtime grouped by category.
func (s *SeatmapService) GetSeatmap(ctx context.Context, showtimeID uint) (map[string]CategorySeatsDTO, error) {
	seats, err := s.seats.ListByShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	if len(seats) == 0 {
		return nil, domain.NewNotFoundError("Seatmap", "showtime")
	}

	seatmap := make(map[string]CategorySeatsDTO)
	for _, st := range seats {
		category := string(st.Category())
		entry, ok := seatmap[category]
		if !ok {
			entry = CategorySeatsDTO{Price: st.Price()}
		}
		entry.Seats = append(entry.Seats, SeatStatusDTO{
			SeatNo: st.SeatNo(),
			Booked: st.Booked(),
		})
		seatmap[category] = entry
	}
	return seatmap, nil
}

// ListAvailable returns the unbooked seats of a showtime.
func (s *SeatmapService) ListAvailable(ctx context.Context, showtimeID uint) ([]SeatDTO, error) {
	seats, err := s.seats.ListAvailable(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	return toSeatDTOs(seats), nil
}

// GetCategoryAvailability summarizes one category of a showtime.
func (s *SeatmapService) GetCategoryAvailability(ctx context.Context, showtimeID uint, category seatDomain.Category) (*CategoryAvailabilityDTO, error) {
	seats, err := s.seats.ListByCategory(ctx, showtimeID, category)
	if err != nil {
		return nil, err
	}
	if len(seats) == 0 {
		return nil, domain.NewNotFoundError("Category", string(category))
	}

	available := 0
	for _, st := range seats {
		if !st.Booked() {
			available++
		}
	}

	return &CategoryAvailabilityDTO{
		Category:       string(category),
		TotalSeats:     len(seats),
		AvailableSeats: available,
		Price:          seats[0].Price(),
	}, nil
}

// BookSeats marks the given seats booked without a payment flow, one
// compare-and-set per seat. The first conflicting or missing seat aborts
// the loop and is reported; seats already flipped stay booked.
func (s *SeatmapService) BookSeats(ctx context.Context, showtimeID uint, seatNos []string) ([]SeatDTO, error) {
	booked := make([]SeatDTO, 0, len(seatNos))
	for _, seatNo := range seatNos {
		updated, err := s.seats.TrySetOccupancy(ctx, showtimeID, seatNo, false, true)
		if err != nil {
			return booked, err
		}
		booked = append(booked, toSeatDTO(updated))
	}
	return booked, nil
}

// ReleaseSeats marks the given seats available. Partial success is
// allowed: a seat that fails is reported per seat number and its siblings
// are not rolled back.
func (s *SeatmapService) ReleaseSeats(ctx context.Context, showtimeID uint, seatNos []string) ([]SeatDTO, []SeatReleaseError) {
	released := make([]SeatDTO, 0, len(seatNos))
	var failures []SeatReleaseError

	for _, seatNo := range seatNos {
		updated, err := s.seats.TrySetOccupancy(ctx, showtimeID, seatNo, true, false)
		if err != nil {
			failures = append(failures, SeatReleaseError{SeatNo: seatNo, Error: err.Error()})
			continue
		}
		released = append(released, toSeatDTO(updated))
	}
	return released, failures
}

// UpdateCategoryPrice sets a new price for every seat of a category.
func (s *SeatmapService) UpdateCategoryPrice(ctx context.Context, showtimeID uint, category seatDomain.Category, price int64) ([]SeatDTO, error) {
	updated, err := s.seats.UpdateCategoryPrice(ctx, showtimeID, category, price)
	if err != nil {
		return nil, err
	}

	s.logger.Info("category price updated",
		zap.Uint("showtime_id", showtimeID),
		zap.String("category", string(category)),
		zap.Int64("price", price),
	)
	return toSeatDTOs(updated), nil
}

// toSeatDTO maps a domain Seat to its API DTO.
func toSeatDTO(st *seatDomain.Seat) SeatDTO {
	return SeatDTO{
		ID:         st.ID(),
		ShowtimeID: st.ShowtimeID(),
		SeatNo:     st.SeatNo(),
		Category:   string(st.Category()),
		Price:      st.Price(),
		Booked:     st.Booked(),
		UpdatedAt:  st.UpdatedAt(),
	}
}

func toSeatDTOs(seats []*seatDomain.Seat) []SeatDTO {
	dtos := make([]SeatDTO, len(seats))
	for i, st := range seats {
		dtos[i] = toSeatDTO(st)
	}
	return dtos
}
