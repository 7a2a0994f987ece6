package analytics

import (
	"context"
	"errors"
	"fmt"

	"eventvenue/internal/shared/constants"
	"eventvenue/pkg/cache"
	"eventvenue/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotEventOwner = errors.New("event belongs to a different vendor")
)

// trendDays is the window of the daily booking trend in every rollup.
const trendDays = 30

type Service interface {
	GetVendorAnalytics(ctx context.Context, vendorID uuid.UUID) (*VendorAnalytics, error)
	GetEventAnalytics(ctx context.Context, eventID, vendorID uuid.UUID, isAdmin bool) (*EventAnalytics, error)
	GetPlatformAnalytics(ctx context.Context) (*PlatformAnalytics, error)

	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetVendorAnalytics(ctx context.Context, vendorID uuid.UUID) (*VendorAnalytics, error) {
	cacheKey := constants.BuildAnalyticsVendorKey(vendorID.String())
	if s.cacheService != nil {
		var cached VendorAnalytics
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	result, err := s.repo.GetVendorAnalytics(ctx, vendorID, trendDays)
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor analytics: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, result, constants.TTL_ANALYTICS_VENDOR); err != nil {
			logger.GetDefault().Debug("failed to cache vendor analytics:", err)
		}
	}
	return result, nil
}

func (s *service) GetEventAnalytics(ctx context.Context, eventID, vendorID uuid.UUID, isAdmin bool) (*EventAnalytics, error) {
	owner, _, err := s.repo.GetEventVendor(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if !isAdmin && owner != vendorID {
		return nil, ErrNotEventOwner
	}

	cacheKey := constants.BuildAnalyticsEventKey(eventID.String())
	if s.cacheService != nil {
		var cached EventAnalytics
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	result, err := s.repo.GetEventAnalytics(ctx, eventID, trendDays)
	if err != nil {
		return nil, fmt.Errorf("failed to get event analytics: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, result, constants.TTL_ANALYTICS_EVENT); err != nil {
			logger.GetDefault().Debug("failed to cache event analytics:", err)
		}
	}
	return result, nil
}

func (s *service) GetPlatformAnalytics(ctx context.Context) (*PlatformAnalytics, error) {
	cacheKey := constants.CACHE_KEY_ANALYTICS_DASHBOARD
	if s.cacheService != nil {
		var cached PlatformAnalytics
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	result, err := s.repo.GetPlatformAnalytics(ctx, trendDays)
	if err != nil {
		return nil, fmt.Errorf("failed to get platform analytics: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, result, constants.TTL_ANALYTICS_DASHBOARD); err != nil {
			logger.GetDefault().Debug("failed to cache platform analytics:", err)
		}
	}
	return result, nil
}
