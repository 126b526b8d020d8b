// Package catalog holds the read-only view of movie, theater and showtime
// data the booking core consumes. These entities are owned elsewhere; the
// core only fetches them by id to populate denormalized receipt fields.
package catalog

import (
	"context"
	"time"
)

// Showtime is a scheduled screening; it is the scoping unit for a seatmap.
type Showtime struct {
	ID        uint
	MovieID   uint
	TheaterID string
	Language  string
	ShowTime  time.Time
}

// Movie is the subset of movie data needed on a receipt.
type Movie struct {
	ID   uint
	Name string
}

// Theater is the subset of theater data needed on a receipt.
type Theater struct {
	ID   string
	Name string
}

// Repository defines the read-only lookup contract.
type Repository interface {
	GetShowtime(ctx context.Context, id uint) (*Showtime, error)
	GetMovie(ctx context.Context, id uint) (*Movie, error)
	GetTheater(ctx context.Context, id string) (*Theater, error)
}
