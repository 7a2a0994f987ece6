package wallet

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInsufficientPoints = errors.New("insufficient points balance")

type Repository interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (int64, error)
	Credit(ctx context.Context, userID uuid.UUID, points int64, txType TransactionType, description, referenceID string) (*PointTransaction, error)
	Debit(ctx context.Context, userID uuid.UUID, points int64, txType TransactionType, description, referenceID string) (*PointTransaction, error)
	DebitUpTo(ctx context.Context, userID uuid.UUID, points int64, txType TransactionType, description, referenceID string) (*PointTransaction, error)
	GetHistory(ctx context.Context, userID uuid.UUID, page, limit int) ([]PointTransaction, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Select("points_balance").
		Scan(&balance).Error
	return balance, err
}

// Credit adds points and records the history row in one transaction.
func (r *repository) Credit(ctx context.Context, userID uuid.UUID, points int64, txType TransactionType, description, referenceID string) (*PointTransaction, error) {
	var txn *PointTransaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Table("users").
			Where("id = ?", userID).
			Update("points_balance", gorm.Expr("points_balance + ?", points))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var err error
		txn, err = r.recordTransaction(tx, userID, points, txType, description, referenceID)
		return err
	})
	return txn, err
}

// Debit removes points, failing with ErrInsufficientPoints if the balance
// cannot cover the amount. The WHERE guard keeps concurrent debits safe.
func (r *repository) Debit(ctx context.Context, userID uuid.UUID, points int64, txType TransactionType, description, referenceID string) (*PointTransaction, error) {
	var txn *PointTransaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Table("users").
			Where("id = ? AND points_balance >= ?", userID, points).
			Update("points_balance", gorm.Expr("points_balance - ?", points))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientPoints
		}

		var err error
		txn, err = r.recordTransaction(tx, userID, points, txType, description, referenceID)
		return err
	})
	return txn, err
}

// DebitUpTo removes at most the requested points, never taking the balance
// below zero. Used for vendor clawbacks on refunds. The row lock keeps
// concurrent clawbacks from both reading the same balance.
func (r *repository) DebitUpTo(ctx context.Context, userID uuid.UUID, points int64, txType TransactionType, description, referenceID string) (*PointTransaction, error) {
	var txn *PointTransaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var balance int64
		if err := balanceForUpdate(tx, userID).Scan(&balance).Error; err != nil {
			return err
		}

		actual := points
		if balance < actual {
			actual = balance
		}
		if actual > 0 {
			if err := tx.Table("users").
				Where("id = ?", userID).
				Update("points_balance", gorm.Expr("points_balance - ?", actual)).Error; err != nil {
				return err
			}
		}

		var err error
		txn, err = r.recordTransaction(tx, userID, actual, txType, description, referenceID)
		return err
	})
	return txn, err
}

// balanceForUpdate reads the user's balance under a row lock so the
// read-cap-debit sequence in DebitUpTo cannot interleave with another
// transaction on the same row.
func balanceForUpdate(tx *gorm.DB, userID uuid.UUID) *gorm.DB {
	return tx.Table("users").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", userID).
		Select("points_balance")
}

func (r *repository) GetHistory(ctx context.Context, userID uuid.UUID, page, limit int) ([]PointTransaction, int64, error) {
	var transactions []PointTransaction
	var total int64

	query := r.db.WithContext(ctx).Model(&PointTransaction{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&transactions).Error
	return transactions, total, err
}

func (r *repository) recordTransaction(tx *gorm.DB, userID uuid.UUID, points int64, txType TransactionType, description, referenceID string) (*PointTransaction, error) {
	var balance int64
	if err := tx.Table("users").
		Where("id = ?", userID).
		Select("points_balance").
		Scan(&balance).Error; err != nil {
		return nil, err
	}

	txn := &PointTransaction{
		ID:           uuid.New(),
		UserID:       userID,
		Type:         txType,
		Points:       points,
		BalanceAfter: balance,
		Description:  description,
		ReferenceID:  referenceID,
	}
	if err := tx.Create(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}
