package wallet

import (
	"context"
	"testing"

	"eventvenue/internal/shared/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	balances map[uuid.UUID]int64
	history  []PointTransaction
}

func newStubRepo() *stubRepo {
	return &stubRepo{balances: make(map[uuid.UUID]int64)}
}

func (r *stubRepo) GetBalance(_ context.Context, userID uuid.UUID) (int64, error) {
	return r.balances[userID], nil
}

func (r *stubRepo) Credit(_ context.Context, userID uuid.UUID, points int64, txType TransactionType, description, referenceID string) (*PointTransaction, error) {
	r.balances[userID] += points
	return r.record(userID, points, txType, description, referenceID), nil
}

func (r *stubRepo) Debit(_ context.Context, userID uuid.UUID, points int64, txType TransactionType, description, referenceID string) (*PointTransaction, error) {
	if r.balances[userID] < points {
		return nil, ErrInsufficientPoints
	}
	r.balances[userID] -= points
	return r.record(userID, points, txType, description, referenceID), nil
}

func (r *stubRepo) DebitUpTo(_ context.Context, userID uuid.UUID, points int64, txType TransactionType, description, referenceID string) (*PointTransaction, error) {
	actual := points
	if r.balances[userID] < actual {
		actual = r.balances[userID]
	}
	r.balances[userID] -= actual
	return r.record(userID, actual, txType, description, referenceID), nil
}

func (r *stubRepo) GetHistory(_ context.Context, userID uuid.UUID, _, _ int) ([]PointTransaction, int64, error) {
	var out []PointTransaction
	for _, txn := range r.history {
		if txn.UserID == userID {
			out = append(out, txn)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubRepo) record(userID uuid.UUID, points int64, txType TransactionType, description, referenceID string) *PointTransaction {
	txn := PointTransaction{
		ID:           uuid.New(),
		UserID:       userID,
		Type:         txType,
		Points:       points,
		BalanceAfter: r.balances[userID],
		Description:  description,
		ReferenceID:  referenceID,
	}
	r.history = append(r.history, txn)
	return &txn
}

func testConfig() *config.Config {
	return &config.Config{
		Points: config.PointsConfig{
			ConversionRate: 100,
			PlatformFee:    2,
			SeatEventFee:   20,
		},
	}
}

func TestPurchaseConvertsAmountToPoints(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, testConfig())
	userID := uuid.New()

	txn, err := svc.Purchase(context.Background(), userID, PurchasePointsRequest{
		Amount:              12.5,
		PaypalTransactionID: "PAYPAL-TXN-001",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1250), txn.Points)
	assert.Equal(t, TransactionPurchased, txn.Type)
	assert.Equal(t, "PAYPAL-TXN-001", txn.ReferenceID)
	assert.Equal(t, int64(1250), repo.balances[userID])
}

func TestDeductInsufficientBalance(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, testConfig())
	userID := uuid.New()
	repo.balances[userID] = 50

	_, err := svc.Deduct(context.Background(), userID, 100, "booking", "ref")
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Equal(t, int64(50), repo.balances[userID])
}

func TestClawbackNeverGoesNegative(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, testConfig())
	vendorID := uuid.New()
	repo.balances[vendorID] = 30

	txn, err := svc.ClawbackVendor(context.Background(), vendorID, 100, "refund clawback", "ref")
	require.NoError(t, err)
	assert.Equal(t, int64(30), txn.Points)
	assert.Equal(t, int64(0), repo.balances[vendorID])
}

func TestRefundCreditsPoints(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, testConfig())
	userID := uuid.New()
	repo.balances[userID] = 10

	txn, err := svc.Refund(context.Background(), userID, 75, "booking refund", "ref")
	require.NoError(t, err)
	assert.Equal(t, TransactionRefunded, txn.Type)
	assert.Equal(t, int64(85), repo.balances[userID])
}

func TestChargeFeeUsesDeduct(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, testConfig())
	vendorID := uuid.New()
	repo.balances[vendorID] = 25

	require.NoError(t, svc.ChargeFee(context.Background(), vendorID, 20, "seat event fee"))
	assert.Equal(t, int64(5), repo.balances[vendorID])

	err := svc.ChargeFee(context.Background(), vendorID, 20, "seat event fee")
	assert.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestPointsForAmount(t *testing.T) {
	svc := NewService(newStubRepo(), testConfig())
	assert.Equal(t, int64(100), svc.PointsForAmount(1))
	assert.Equal(t, int64(250), svc.PointsForAmount(2.5))
	assert.Equal(t, int64(2), svc.PlatformFee())
}

func TestInvalidAmounts(t *testing.T) {
	svc := NewService(newStubRepo(), testConfig())
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Purchase(ctx, userID, PurchasePointsRequest{Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = svc.Deduct(ctx, userID, 0, "", "")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = svc.Refund(ctx, userID, -5, "", "")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
