package wallet

import (
	"context"
	"errors"
	"fmt"
	"math"

	"eventvenue/internal/shared/config"
	"eventvenue/internal/shared/constants"
	"eventvenue/pkg/cache"
	"eventvenue/pkg/logger"

	"github.com/google/uuid"
)

var ErrInvalidAmount = errors.New("amount must be positive")

type Service interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*BalanceResponse, error)
	GetHistory(ctx context.Context, userID uuid.UUID, page, limit int) (*HistoryResponse, error)
	Purchase(ctx context.Context, userID uuid.UUID, req PurchasePointsRequest) (*PointTransaction, error)

	// Booking-path operations
	Deduct(ctx context.Context, userID uuid.UUID, points int64, description, referenceID string) (*PointTransaction, error)
	CreditVendor(ctx context.Context, vendorID uuid.UUID, points int64, description, referenceID string) (*PointTransaction, error)
	Refund(ctx context.Context, userID uuid.UUID, points int64, description, referenceID string) (*PointTransaction, error)
	ClawbackVendor(ctx context.Context, vendorID uuid.UUID, points int64, description, referenceID string) (*PointTransaction, error)

	// ChargeFee satisfies the fee interfaces of the events module.
	ChargeFee(ctx context.Context, userID uuid.UUID, points int64, description string) error

	// PointsForAmount converts a currency amount to points at the
	// configured conversion rate.
	PointsForAmount(amount float64) int64
	PlatformFee() int64

	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	config       *config.Config
	cacheService cache.Service
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{repo: repo, config: cfg}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) PointsForAmount(amount float64) int64 {
	return int64(math.Round(amount * float64(s.config.Points.ConversionRate)))
}

func (s *service) PlatformFee() int64 {
	return s.config.Points.PlatformFee
}

func (s *service) GetBalance(ctx context.Context, userID uuid.UUID) (*BalanceResponse, error) {
	cacheKey := constants.BuildWalletBalanceKey(userID.String())
	if s.cacheService != nil {
		var cached BalanceResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	balance, err := s.repo.GetBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	result := &BalanceResponse{
		UserID:         userID.String(),
		Points:         balance,
		ConversionRate: s.config.Points.ConversionRate,
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, result, constants.TTL_WALLET_BALANCE); err != nil {
			logger.GetDefault().Debug("failed to cache wallet balance:", err)
		}
	}
	return result, nil
}

func (s *service) GetHistory(ctx context.Context, userID uuid.UUID, page, limit int) (*HistoryResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	transactions, total, err := s.repo.GetHistory(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet history: %w", err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return &HistoryResponse{
		Transactions: transactions,
		Total:        total,
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
	}, nil
}

// Purchase converts a currency payment into points. The PayPal capture
// happens client-side; only the transaction id is recorded.
func (s *service) Purchase(ctx context.Context, userID uuid.UUID, req PurchasePointsRequest) (*PointTransaction, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	points := s.PointsForAmount(req.Amount)
	description := fmt.Sprintf("Purchased %d points for %.2f", points, req.Amount)

	txn, err := s.repo.Credit(ctx, userID, points, TransactionPurchased, description, req.PaypalTransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to credit purchased points: %w", err)
	}

	s.invalidateBalance(ctx, userID)
	logger.GetDefault().Info("Points purchased:", userID.String(), "points:", points)
	return txn, nil
}

func (s *service) Deduct(ctx context.Context, userID uuid.UUID, points int64, description, referenceID string) (*PointTransaction, error) {
	if points <= 0 {
		return nil, ErrInvalidAmount
	}

	txn, err := s.repo.Debit(ctx, userID, points, TransactionRedeemed, description, referenceID)
	if err != nil {
		if errors.Is(err, ErrInsufficientPoints) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to deduct points: %w", err)
	}

	s.invalidateBalance(ctx, userID)
	return txn, nil
}

func (s *service) CreditVendor(ctx context.Context, vendorID uuid.UUID, points int64, description, referenceID string) (*PointTransaction, error) {
	if points <= 0 {
		return nil, ErrInvalidAmount
	}

	txn, err := s.repo.Credit(ctx, vendorID, points, TransactionEarned, description, referenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to credit vendor: %w", err)
	}

	s.invalidateBalance(ctx, vendorID)
	return txn, nil
}

func (s *service) Refund(ctx context.Context, userID uuid.UUID, points int64, description, referenceID string) (*PointTransaction, error) {
	if points <= 0 {
		return nil, ErrInvalidAmount
	}

	txn, err := s.repo.Credit(ctx, userID, points, TransactionRefunded, description, referenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to refund points: %w", err)
	}

	s.invalidateBalance(ctx, userID)
	return txn, nil
}

// ClawbackVendor reverses a vendor credit after a refund. The vendor balance
// never goes below zero; whatever is there is taken.
func (s *service) ClawbackVendor(ctx context.Context, vendorID uuid.UUID, points int64, description, referenceID string) (*PointTransaction, error) {
	if points <= 0 {
		return nil, ErrInvalidAmount
	}

	txn, err := s.repo.DebitUpTo(ctx, vendorID, points, TransactionClawback, description, referenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to claw back vendor points: %w", err)
	}

	s.invalidateBalance(ctx, vendorID)
	return txn, nil
}

func (s *service) ChargeFee(ctx context.Context, userID uuid.UUID, points int64, description string) error {
	_, err := s.Deduct(ctx, userID, points, description, "")
	return err
}

func (s *service) invalidateBalance(ctx context.Context, userID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.BuildWalletBalanceKey(userID.String())); err != nil {
		logger.GetDefault().Debug("failed to invalidate wallet balance cache:", err)
	}
}
