package wallet

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionPurchased TransactionType = "PURCHASED" // points bought with currency
	TransactionRedeemed  TransactionType = "REDEEMED"  // points spent on a booking or fee
	TransactionEarned    TransactionType = "EARNED"    // vendor credit for a booking
	TransactionRefunded  TransactionType = "REFUNDED"  // booking refund paid back in points
	TransactionClawback  TransactionType = "CLAWBACK"  // vendor credit reversed on refund
)

// PointTransaction is an append-only history row. Points is always positive;
// the type says which way the balance moved.
type PointTransaction struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID       uuid.UUID       `json:"user_id" gorm:"type:uuid;index;not null"`
	Type         TransactionType `json:"type" gorm:"type:varchar(20);not null"`
	Points       int64           `json:"points" gorm:"not null;check:points >= 0"`
	BalanceAfter int64           `json:"balance_after" gorm:"not null"`
	Description  string          `json:"description" gorm:"size:500"`
	ReferenceID  string          `json:"reference_id" gorm:"size:100;index"`
	CreatedAt    time.Time       `json:"created_at" gorm:"autoCreateTime;index"`
}

func (PointTransaction) TableName() string {
	return "point_transactions"
}

func (t TransactionType) IsCredit() bool {
	switch t {
	case TransactionPurchased, TransactionEarned, TransactionRefunded:
		return true
	}
	return false
}
