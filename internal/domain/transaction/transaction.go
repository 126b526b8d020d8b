package transaction

import (
	"time"

	"github.com/cinetix/service-booking/internal/domain"
	"github.com/google/uuid"
)

// Status is the payment state of a booking attempt.
type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusFailed   Status = "failed"
	StatusRefunded Status = "refunded"
)

// Transaction is the ledger aggregate for one payment attempt. It is
// written before the gateway is called so an audit record exists even if
// the process dies mid-protocol, and it is independent of seat state: a
// failed payment never touches seat availability.
type Transaction struct {
	id          uuid.UUID
	buyerID     string
	status      Status
	gatewayRef  string
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// New creates a pending Transaction for a booking attempt.
func New(buyerID string) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		id:        uuid.New(),
		buyerID:   buyerID,
		status:    StatusPending,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}
}

// --- Getters ---

func (t *Transaction) ID() uuid.UUID        { return t.id }
func (t *Transaction) BuyerID() string      { return t.buyerID }
func (t *Transaction) Status() Status       { return t.status }
func (t *Transaction) GatewayRef() string   { return t.gatewayRef }
func (t *Transaction) Version() int64       { return t.version }
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time { return t.updatedAt }

// --- State transitions ---
// pending->paid and pending->failed each happen at most once; a second
// call is an invalid-state error. paid->refunded exists only for the
// reconciliation path when a paid attempt loses the seat race.

// MarkPaid transitions pending->paid and records the gateway order reference.
func (t *Transaction) MarkPaid(gatewayRef string) error {
	if t.status != StatusPending {
		return domain.NewInvalidStateError(string(t.status), string(StatusPaid))
	}
	t.status = StatusPaid
	t.gatewayRef = gatewayRef
	t.updatedAt = time.Now().UTC()
	return nil
}

// MarkFailed transitions pending->failed.
func (t *Transaction) MarkFailed() error {
	if t.status != StatusPending {
		return domain.NewInvalidStateError(string(t.status), string(StatusFailed))
	}
	t.status = StatusFailed
	t.updatedAt = time.Now().UTC()
	return nil
}

// MarkRefunded transitions paid->refunded after the gateway order has been
// refunded because the seat commit lost a race.
func (t *Transaction) MarkRefunded() error {
	if t.status != StatusPaid {
		return domain.NewInvalidStateError(string(t.status), string(StatusRefunded))
	}
	t.status = StatusRefunded
	t.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (t *Transaction) IncrementVersion() {
	t.version++
	t.updatedAt = time.Now().UTC()
}

// Reconstitute rebuilds a Transaction from persisted data.
func Reconstitute(
	id uuid.UUID,
	buyerID string,
	status Status,
	gatewayRef string,
	version int64,
	createdAt, updatedAt time.Time,
) *Transaction {
	return &Transaction{
		id:         id,
		buyerID:    buyerID,
		status:     status,
		gatewayRef: gatewayRef,
		version:    version,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}
