package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogDomain "github.com/cinetix/service-booking/internal/domain/catalog"
	"github.com/cinetix/service-booking/internal/domain"
	"gorm.io/gorm"
)

// Catalog rows are owned by the catalog service; this repository only
// reads them to fill denormalized receipt fields.

// ShowtimeModel mirrors the showtimes table.
type ShowtimeModel struct {
	ShowtimeID uint      `gorm:"primaryKey;column:showtime_id"`
	MovieID    uint      `gorm:"not null"`
	TheaterID  string    `gorm:"type:varchar(64);not null"`
	Language   string    `gorm:"type:varchar(64);not null"`
	ShowTime   time.Time `gorm:"type:timestamptz;not null"`
}

// TableName specifies the table name for GORM.
func (ShowtimeModel) TableName() string {
	return "showtimes"
}

// MovieModel mirrors the subset of the movies table the core needs.
type MovieModel struct {
	MovieID   uint   `gorm:"primaryKey;column:movie_id"`
	MovieName string `gorm:"type:varchar(255);not null"`
}

// TableName specifies the table name for GORM.
func (MovieModel) TableName() string {
	return "movies"
}

// TheaterModel mirrors the subset of the theaters table the core needs.
type TheaterModel struct {
	TheaterID   string `gorm:"primaryKey;column:theater_id;type:varchar(64)"`
	TheaterName string `gorm:"type:varchar(255);not null"`
}

// TableName specifies the table name for GORM.
func (TheaterModel) TableName() string {
	return "theaters"
}

// CatalogRepositoryImpl is the GORM-based implementation of catalog.Repository.
type CatalogRepositoryImpl struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new read-only catalog lookup.
func NewCatalogRepository(db *gorm.DB) *CatalogRepositoryImpl {
	return &CatalogRepositoryImpl{db: db}
}

// GetShowtime retrieves a showtime by id.
func (r *CatalogRepositoryImpl) GetShowtime(ctx context.Context, id uint) (*catalogDomain.Showtime, error) {
	var model ShowtimeModel
	if err := r.db.WithContext(ctx).Where("showtime_id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Showtime", fmt.Sprintf("%d", id))
		}
		return nil, err
	}
	return &catalogDomain.Showtime{
		ID:        model.ShowtimeID,
		MovieID:   model.MovieID,
		TheaterID: model.TheaterID,
		Language:  model.Language,
		ShowTime:  model.ShowTime,
	}, nil
}

// GetMovie retrieves a movie by id.
func (r *CatalogRepositoryImpl) GetMovie(ctx context.Context, id uint) (*catalogDomain.Movie, error) {
	var model MovieModel
	if err := r.db.WithContext(ctx).Where("movie_id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Movie", fmt.Sprintf("%d", id))
		}
		return nil, err
	}
	return &catalogDomain.Movie{ID: model.MovieID, Name: model.MovieName}, nil
}

// GetTheater retrieves a theater by id.
func (r *CatalogRepositoryImpl) GetTheater(ctx context.Context, id string) (*catalogDomain.Theater, error) {
	var model TheaterModel
	if err := r.db.WithContext(ctx).Where("theater_id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Theater", id)
		}
		return nil, err
	}
	return &catalogDomain.Theater{ID: model.TheaterID, Name: model.TheaterName}, nil
}
