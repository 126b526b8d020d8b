//go:build integration

package main_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cinetix/service-booking/internal/adapter"
	"github.com/cinetix/service-booking/internal/application"
	"github.com/cinetix/service-booking/internal/events"
	"github.com/cinetix/service-booking/internal/repository"
	"github.com/cinetix/service-booking/internal/saga"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB      *gorm.DB
	Cleanup func()
}

// bookingStack holds wired-up booking service components.
type bookingStack struct {
	SeatmapService *application.SeatmapService
	BookingService *application.BookingService
	SagaService    *saga.ReservationSagaService
	SeatRepo       *repository.SeatRepositoryImpl
	Publisher      *recordingPublisher
}

// recordingPublisher captures published events instead of hitting a broker.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.CloudEvent
}

func (p *recordingPublisher) PublishEvent(ctx context.Context, topic string, event events.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) byType(eventType string) []events.CloudEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.CloudEvent
	for _, e := range p.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// setupPostgres starts a PostgreSQL testcontainer and returns a connected,
// migrated GORM DB.
func setupPostgres(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_booking",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_booking sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.SeatModel{},
		&repository.TransactionModel{},
		&repository.BookingModel{},
		&repository.ShowtimeModel{},
		&repository.MovieModel{},
		&repository.TheaterModel{},
	))

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{DB: db, Cleanup: cleanup}
}

// setupBookingStack wires up the full booking service stack against the
// given DB, with the mock gateway and an in-memory event publisher.
func setupBookingStack(t *testing.T, db *gorm.DB) *bookingStack {
	t.Helper()
	logger := zap.NewNop()

	seatRepo := repository.NewSeatRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	gateway := adapter.NewMockGateway(logger)
	publisher := &recordingPublisher{}

	sagaSvc := saga.NewReservationSagaService(
		seatRepo, txnRepo, bookingRepo, catalogRepo,
		gateway, publisher, "INR", 5*time.Second, logger,
	)

	return &bookingStack{
		SeatmapService: application.NewSeatmapService(seatRepo, logger),
		BookingService: application.NewBookingService(sagaSvc, bookingRepo, logger),
		SagaService:    sagaSvc,
		SeatRepo:       seatRepo,
		Publisher:      publisher,
	}
}

// seedCatalog inserts one showtime with its movie and theater and returns
// the showtime id.
func seedCatalog(t *testing.T, db *gorm.DB) uint {
	t.Helper()

	movie := repository.MovieModel{MovieName: "Interstellar"}
	require.NoError(t, db.Create(&movie).Error, "failed to seed movie")

	theater := repository.TheaterModel{TheaterID: "thr-1", TheaterName: "Grand Cinema"}
	require.NoError(t, db.Create(&theater).Error, "failed to seed theater")

	showtime := repository.ShowtimeModel{
		MovieID:   movie.MovieID,
		TheaterID: theater.TheaterID,
		Language:  "English",
		ShowTime:  time.Date(2026, 9, 1, 19, 30, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&showtime).Error, "failed to seed showtime")

	return showtime.ShowtimeID
}
