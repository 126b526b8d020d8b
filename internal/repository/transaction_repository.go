package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cinetix/service-booking/internal/domain"
	txnDomain "github.com/cinetix/service-booking/internal/domain/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionModel is the GORM persistence model for the transactions table.
type TransactionModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID    string    `gorm:"type:varchar(255);not null;index"`
	Status     string    `gorm:"type:varchar(16);not null;default:'pending'"`
	GatewayRef string    `gorm:"type:varchar(255)"`
	Version    int64     `gorm:"not null;default:1"`
	CreatedAt  time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt  time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (TransactionModel) TableName() string {
	return "transactions"
}

// TransactionRepositoryImpl is the GORM-based implementation of transaction.Repository.
type TransactionRepositoryImpl struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new GORM-based transaction ledger.
func NewTransactionRepository(db *gorm.DB) *TransactionRepositoryImpl {
	return &TransactionRepositoryImpl{db: db}
}

// FindByID retrieves a transaction by its token.
func (r *TransactionRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*txnDomain.Transaction, error) {
	var model TransactionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Transaction", id.String())
		}
		return nil, err
	}
	return toTransactionDomain(&model), nil
}

// Save persists a new transaction.
func (r *TransactionRepositoryImpl) Save(ctx context.Context, txn *txnDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(toTransactionModel(txn)).Error
}

// Update persists a state transition with optimistic locking.
func (r *TransactionRepositoryImpl) Update(ctx context.Context, txn *txnDomain.Transaction) error {
	model := toTransactionModel(txn)
	previousVersion := txn.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&TransactionModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("transaction was modified by another process")
	}
	return nil
}

// Delete removes an orphaned transaction.
func (r *TransactionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&TransactionModel{}).Error
}

// toTransactionDomain maps a TransactionModel to the domain aggregate.
func toTransactionDomain(model *TransactionModel) *txnDomain.Transaction {
	return txnDomain.Reconstitute(
		model.ID,
		model.BuyerID,
		txnDomain.Status(model.Status),
		model.GatewayRef,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// toTransactionModel maps a domain Transaction to its persistence model.
func toTransactionModel(t *txnDomain.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:         t.ID(),
		BuyerID:    t.BuyerID(),
		Status:     string(t.Status()),
		GatewayRef: t.GatewayRef(),
		Version:    t.Version(),
		CreatedAt:  t.CreatedAt(),
		UpdatedAt:  t.UpdatedAt(),
	}
}
