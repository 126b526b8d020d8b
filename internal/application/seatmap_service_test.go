package application

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/cinetix/service-booking/internal/domain"
	seatDomain "github.com/cinetix/service-booking/internal/domain/seat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memorySeatStore is an in-memory seat.Repository with the same
// compare-and-set semantics as the SQL store.
type memorySeatStore struct {
	mu    sync.Mutex
	seats map[string]*seatDomain.Seat
}

func newMemorySeatStore() *memorySeatStore {
	return &memorySeatStore{seats: make(map[string]*seatDomain.Seat)}
}

func (r *memorySeatStore) key(showtimeID uint, seatNo string) string {
	return fmt.Sprintf("%d/%s", showtimeID, seatNo)
}

func (r *memorySeatStore) GenerateSeatmap(ctx context.Context, showtimeID uint, seats []*seatDomain.Seat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.seats {
		if s.ShowtimeID() == showtimeID {
			return domain.NewConflictError(fmt.Sprintf("seatmap already exists for showtime %d", showtimeID))
		}
	}
	for i, s := range seats {
		r.seats[r.key(showtimeID, s.SeatNo())] = seatDomain.Reconstitute(
			uint(i+1), showtimeID, s.SeatNo(), s.Category(), s.Price(), s.Booked(),
			s.CreatedAt(), s.UpdatedAt(),
		)
	}
	return nil
}

func (r *memorySeatStore) GetSeat(ctx context.Context, showtimeID uint, seatNo string) (*seatDomain.Seat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.seats[r.key(showtimeID, seatNo)]
	if !ok {
		return nil, domain.NewNotFoundError("Seat", seatNo)
	}
	return s, nil
}

func (r *memorySeatStore) ListByShowtime(ctx context.Context, showtimeID uint) ([]*seatDomain.Seat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*seatDomain.Seat
	for _, s := range r.seats {
		if s.ShowtimeID() == showtimeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memorySeatStore) ListAvailable(ctx context.Context, showtimeID uint) ([]*seatDomain.Seat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*seatDomain.Seat
	for _, s := range r.seats {
		if s.ShowtimeID() == showtimeID && !s.Booked() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memorySeatStore) ListByCategory(ctx context.Context, showtimeID uint, category seatDomain.Category) ([]*seatDomain.Seat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*seatDomain.Seat
	for _, s := range r.seats {
		if s.ShowtimeID() == showtimeID && s.Category() == category {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memorySeatStore) TrySetOccupancy(ctx context.Context, showtimeID uint, seatNo string, expected, next bool) (*seatDomain.Seat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.key(showtimeID, seatNo)
	s, ok := r.seats[key]
	if !ok {
		return nil, domain.NewNotFoundError("Seat", seatNo)
	}
	if s.Booked() != expected {
		if expected {
			return nil, domain.NewConflictError(fmt.Sprintf("seat %s is already available", seatNo))
		}
		return nil, domain.NewConflictError(fmt.Sprintf("seat %s is already booked", seatNo))
	}
	updated := seatDomain.Reconstitute(
		s.ID(), s.ShowtimeID(), s.SeatNo(), s.Category(), s.Price(), next,
		s.CreatedAt(), time.Now().UTC(),
	)
	r.seats[key] = updated
	return updated, nil
}

func (r *memorySeatStore) UpdateCategoryPrice(ctx context.Context, showtimeID uint, category seatDomain.Category, price int64) ([]*seatDomain.Seat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*seatDomain.Seat
	for key, s := range r.seats {
		if s.ShowtimeID() == showtimeID && s.Category() == category {
			updated := seatDomain.Reconstitute(
				s.ID(), s.ShowtimeID(), s.SeatNo(), s.Category(), price, s.Booked(),
				s.CreatedAt(), time.Now().UTC(),
			)
			r.seats[key] = updated
			out = append(out, updated)
		}
	}
	if len(out) == 0 {
		return nil, domain.NewNotFoundError("Category", string(category))
	}
	return out, nil
}

func newSeatmapService(t *testing.T) (*SeatmapService, *memorySeatStore) {
	t.Helper()
	store := newMemorySeatStore()
	return NewSeatmapService(store, zap.NewNop()), store
}

func TestCreateSeatmap(t *testing.T) {
	svc, _ := newSeatmapService(t)

	seats, err := svc.CreateSeatmap(context.Background(), 42, nil)
	require.NoError(t, err)
	assert.Len(t, seats, 63)

	for _, s := range seats {
		assert.False(t, s.Booked)
		assert.Equal(t, uint(42), s.ShowtimeID)
	}
}

func TestCreateSeatmap_DuplicateIsConflict(t *testing.T) {
	svc, _ := newSeatmapService(t)

	_, err := svc.CreateSeatmap(context.Background(), 42, nil)
	require.NoError(t, err)

	_, err = svc.CreateSeatmap(context.Background(), 42, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	// A different showtime is unaffected.
	_, err = svc.CreateSeatmap(context.Background(), 43, nil)
	require.NoError(t, err)
}

func TestGetSeatmap(t *testing.T) {
	svc, _ := newSeatmapService(t)

	_, err := svc.CreateSeatmap(context.Background(), 42, nil)
	require.NoError(t, err)

	seatmap, err := svc.GetSeatmap(context.Background(), 42)
	require.NoError(t, err)

	require.Contains(t, seatmap, "Recliner")
	require.Contains(t, seatmap, "Gold")
	require.Contains(t, seatmap, "Silver")

	assert.Equal(t, int64(700), seatmap["Recliner"].Price)
	assert.Len(t, seatmap["Recliner"].Seats, 18)
	assert.Len(t, seatmap["Gold"].Seats, 18)
	assert.Len(t, seatmap["Silver"].Seats, 27)
}

func TestGetSeatmap_MissingIsNotFound(t *testing.T) {
	svc, _ := newSeatmapService(t)

	_, err := svc.GetSeatmap(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestBookSeats(t *testing.T) {
	svc, store := newSeatmapService(t)

	_, err := svc.CreateSeatmap(context.Background(), 42, nil)
	require.NoError(t, err)

	booked, err := svc.BookSeats(context.Background(), 42, []string{"A1", "A2", "C3"})
	require.NoError(t, err)
	require.Len(t, booked, 3)

	for _, s := range booked {
		assert.True(t, s.Booked)
	}

	st, err := store.GetSeat(context.Background(), 42, "A1")
	require.NoError(t, err)
	assert.True(t, st.Booked())
}

func TestBookSeats_StopsAtFirstConflict(t *testing.T) {
	svc, store := newSeatmapService(t)

	_, err := svc.CreateSeatmap(context.Background(), 42, nil)
	require.NoError(t, err)

	_, err = svc.BookSeats(context.Background(), 42, []string{"A2"})
	require.NoError(t, err)

	booked, err := svc.BookSeats(context.Background(), 42, []string{"A1", "A2", "A3"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	// A1 was flipped before the conflict and stays booked; A3 was never
	// reached.
	require.Len(t, booked, 1)
	assert.Equal(t, "A1", booked[0].SeatNo)

	st, err := store.GetSeat(context.Background(), 42, "A3")
	require.NoError(t, err)
	assert.False(t, st.Booked())
}

func TestReleaseSeats_PartialSuccess(t *testing.T) {
	svc, _ := newSeatmapService(t)

	_, err := svc.CreateSeatmap(context.Background(), 42, nil)
	require.NoError(t, err)

	_, err = svc.BookSeats(context.Background(), 42, []string{"A1"})
	require.NoError(t, err)

	released, failures := svc.ReleaseSeats(context.Background(), 42, []string{"A1", "A2", "Z9"})

	require.Len(t, released, 1)
	assert.Equal(t, "A1", released[0].SeatNo)
	assert.False(t, released[0].Booked)

	// A2 was never booked, Z9 does not exist; both are reported without
	// aborting the batch.
	require.Len(t, failures, 2)
}

func TestGetCategoryAvailability(t *testing.T) {
	svc, _ := newSeatmapService(t)

	_, err := svc.CreateSeatmap(context.Background(), 42, nil)
	require.NoError(t, err)

	_, err = svc.BookSeats(context.Background(), 42, []string{"C1", "C2"})
	require.NoError(t, err)

	availability, err := svc.GetCategoryAvailability(context.Background(), 42, seatDomain.CategoryGold)
	require.NoError(t, err)

	assert.Equal(t, "Gold", availability.Category)
	assert.Equal(t, 18, availability.TotalSeats)
	assert.Equal(t, 16, availability.AvailableSeats)
	assert.Equal(t, int64(500), availability.Price)
}

func TestGetCategoryAvailability_MissingIsNotFound(t *testing.T) {
	svc, _ := newSeatmapService(t)

	_, err := svc.GetCategoryAvailability(context.Background(), 42, seatDomain.CategoryGold)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCategoryAvailability_InvariantUnderRandomOps(t *testing.T) {
	svc, _ := newSeatmapService(t)

	_, err := svc.CreateSeatmap(context.Background(), 42, nil)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	booked := map[string]bool{}

	// Random book/release sequence over the Gold rows.
	for i := 0; i < 200; i++ {
		seatNo := fmt.Sprintf("%c%d", 'C'+byte(rng.Intn(2)), 1+rng.Intn(9))
		if rng.Intn(2) == 0 {
			if _, err := svc.BookSeats(context.Background(), 42, []string{seatNo}); err == nil {
				booked[seatNo] = true
			}
		} else {
			released, _ := svc.ReleaseSeats(context.Background(), 42, []string{seatNo})
			if len(released) == 1 {
				delete(booked, seatNo)
			}
		}
	}

	availability, err := svc.GetCategoryAvailability(context.Background(), 42, seatDomain.CategoryGold)
	require.NoError(t, err)
	assert.Equal(t, 18, availability.TotalSeats)
	assert.Equal(t, 18-len(booked), availability.AvailableSeats)
}

func TestUpdateCategoryPrice(t *testing.T) {
	svc, _ := newSeatmapService(t)

	_, err := svc.CreateSeatmap(context.Background(), 42, nil)
	require.NoError(t, err)

	updated, err := svc.UpdateCategoryPrice(context.Background(), 42, seatDomain.CategoryGold, 550)
	require.NoError(t, err)
	require.Len(t, updated, 18)
	for _, s := range updated {
		assert.Equal(t, int64(550), s.Price)
	}

	// Other categories keep their prices.
	availability, err := svc.GetCategoryAvailability(context.Background(), 42, seatDomain.CategorySilver)
	require.NoError(t, err)
	assert.Equal(t, int64(300), availability.Price)
}
