package transaction

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for the transaction ledger.
type Repository interface {
	// FindByID retrieves a transaction by its token.
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// Save persists a new transaction.
	Save(ctx context.Context, txn *Transaction) error

	// Update persists a state transition with optimistic locking.
	Update(ctx context.Context, txn *Transaction) error

	// Delete removes a transaction whose last booking was cancelled.
	Delete(ctx context.Context, id uuid.UUID) error
}
