package discounts

import (
	"context"
	"database/sql"
	"elverra-club-backend/model"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

const (
	sectorsCacheKey   = "discount-sectors"
	merchantsCacheKey = "discount-merchants-%d"
	directoryCacheTTL = 10 * time.Minute
)

// Service serves the partner directory: the sectors and merchants where
// member discounts apply. The data changes rarely, so reads go through
// Redis.
type Service struct {
	cache *redis.Client
}

func NewService(cache *redis.Client) *Service {
	return &Service{cache: cache}
}

func (s *Service) Sectors(ctx context.Context, db *sql.DB) ([]model.Sector, error) {
	var sectors []model.Sector
	if s.cachedInto(sectorsCacheKey, &sectors) {
		return sectors, nil
	}

	sectors, err := fetchSectors(db)
	if err != nil {
		return nil, fmt.Errorf("sectors: %w", err)
	}

	s.store(sectorsCacheKey, sectors)
	return sectors, nil
}

// Merchants lists active partners, optionally narrowed to a sector.
// sectorID <= 0 means all sectors.
func (s *Service) Merchants(ctx context.Context, db *sql.DB, sectorID int64) ([]model.Merchant, error) {
	key := fmt.Sprintf(merchantsCacheKey, sectorID)

	var merchants []model.Merchant
	if s.cachedInto(key, &merchants) {
		return merchants, nil
	}

	merchants, err := fetchMerchants(db, sectorID)
	if err != nil {
		return nil, fmt.Errorf("merchants: %w", err)
	}

	s.store(key, merchants)
	return merchants, nil
}

// DiscountedPrice applies a merchant's discount percentage to a price.
func DiscountedPrice(price float64, discountPct int) float64 {
	if discountPct <= 0 {
		return price
	}
	if discountPct >= 100 {
		return 0
	}
	return price * float64(100-discountPct) / 100
}

func (s *Service) cachedInto(key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}

	val, err := s.cache.Get(key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func (s *Service) store(key string, v interface{}) {
	if s.cache == nil {
		return
	}

	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.cache.Set(key, b, directoryCacheTTL)
}
