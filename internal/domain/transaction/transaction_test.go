package transaction

import (
	"errors"
	"testing"

	"github.com/cinetix/service-booking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	txn := New("buyer@example.com")

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", txn.ID().String())
	assert.Equal(t, "buyer@example.com", txn.BuyerID())
	assert.Equal(t, StatusPending, txn.Status())
	assert.Empty(t, txn.GatewayRef())
	assert.Equal(t, int64(1), txn.Version())
}

func TestMarkPaid(t *testing.T) {
	txn := New("buyer@example.com")

	require.NoError(t, txn.MarkPaid("order_123"))
	assert.Equal(t, StatusPaid, txn.Status())
	assert.Equal(t, "order_123", txn.GatewayRef())

	// A second settlement attempt must be rejected.
	err := txn.MarkPaid("order_456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	assert.Equal(t, "order_123", txn.GatewayRef())
}

func TestMarkFailed(t *testing.T) {
	txn := New("buyer@example.com")

	require.NoError(t, txn.MarkFailed())
	assert.Equal(t, StatusFailed, txn.Status())

	assert.True(t, errors.Is(txn.MarkFailed(), domain.ErrInvalidState))
	assert.True(t, errors.Is(txn.MarkPaid("order_123"), domain.ErrInvalidState))
}

func TestMarkRefunded(t *testing.T) {
	txn := New("buyer@example.com")

	// Refund requires a prior settlement.
	assert.True(t, errors.Is(txn.MarkRefunded(), domain.ErrInvalidState))

	require.NoError(t, txn.MarkPaid("order_123"))
	require.NoError(t, txn.MarkRefunded())
	assert.Equal(t, StatusRefunded, txn.Status())

	assert.True(t, errors.Is(txn.MarkRefunded(), domain.ErrInvalidState))
}

func TestIncrementVersion(t *testing.T) {
	txn := New("buyer@example.com")
	txn.IncrementVersion()
	txn.IncrementVersion()
	assert.Equal(t, int64(3), txn.Version())
}
