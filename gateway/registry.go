package gateway

import (
	"context"
	"database/sql"
	"elverra-club-backend/logger"
	"elverra-club-backend/model"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

const cacheKey = "payment-gateways"

// defaultGateways is the compiled-in registry used when the
// payment_gateways table is missing or empty. Provider credentials are
// never part of these records; they live in vault.
var defaultGateways = []model.PaymentGateway{
	{
		ID:                  "orange_money",
		Name:                "Orange Money",
		Type:                "mobile_money",
		IsActive:            true,
		FeePercentage:       1.5,
		FeeFixed:            0,
		BaseURL:             "https://api.orange.com/orange-money-webpay/dev/v1",
		SupportedCurrencies: []string{"XOF", "CFA"},
		Description:         "Pay with Orange Money mobile wallet",
	},
	{
		ID:                  "sama_money",
		Name:                "SAMA Money",
		Type:                "mobile_money",
		IsActive:            true,
		FeePercentage:       1.2,
		FeeFixed:            0,
		BaseURL:             "https://smarchandamatest.sama.money/V1/",
		SupportedCurrencies: []string{"XOF", "CFA"},
		Description:         "Pay with SAMA Money digital wallet",
	},
	{
		ID:                  "wave_money",
		Name:                "Wave Money",
		Type:                "mobile_money",
		IsActive:            true,
		FeePercentage:       1.0,
		FeeFixed:            0,
		BaseURL:             "https://api.wave.com/v1",
		SupportedCurrencies: []string{"XOF", "CFA"},
		Description:         "Pay with Wave mobile money",
	},
	{
		ID:                  "moov_money",
		Name:                "Moov Money",
		Type:                "mobile_money",
		IsActive:            true,
		FeePercentage:       1.8,
		FeeFixed:            0,
		BaseURL:             "https://api.moov-africa.com/v1",
		SupportedCurrencies: []string{"XOF", "CFA"},
		Description:         "Pay with Moov Money",
	},
	{
		ID:                  "bank_transfer",
		Name:                "Bank Transfer",
		Type:                "bank_transfer",
		IsActive:            true,
		FeePercentage:       0.5,
		FeeFixed:            500,
		SupportedCurrencies: []string{"XOF", "CFA", "USD", "EUR"},
		Description:         "Direct bank transfer",
	},
	{
		ID:                  "stripe",
		Name:                "Credit/Debit Card",
		Type:                "card",
		IsActive:            true,
		FeePercentage:       2.9,
		FeeFixed:            30,
		BaseURL:             "https://api.stripe.com/v1",
		SupportedCurrencies: []string{"USD", "EUR", "XOF"},
		Description:         "Pay with credit or debit card",
	},
}

type Registry struct {
	cache *redis.Client
	ttl   time.Duration
}

func NewRegistry(cache *redis.Client, ttl time.Duration) *Registry {
	return &Registry{cache: cache, ttl: ttl}
}

// Load returns all configured gateways, reading the payment_gateways
// table first and falling back to the compiled-in defaults when the table
// is absent or empty.
func (r *Registry) Load(ctx context.Context, db *sql.DB) []model.PaymentGateway {
	if gws, ok := r.cached(); ok {
		return gws
	}

	gws, err := fetchGateways(db)
	if err != nil {
		logger.Warnf(ctx, "load: unable to read payment_gateways, using defaults: %+v", err)
		gws = defaultGateways
	}
	if len(gws) == 0 {
		gws = defaultGateways
	}

	r.store(gws)
	return gws
}

// ActiveGateways returns gateways with the active flag set.
func (r *Registry) ActiveGateways(ctx context.Context, db *sql.DB) []model.PaymentGateway {
	return filterActive(r.Load(ctx, db))
}

// ByID returns a single gateway regardless of its active flag.
func (r *Registry) ByID(ctx context.Context, db *sql.DB, id string) (*model.PaymentGateway, bool) {
	for _, gw := range r.Load(ctx, db) {
		if gw.ID == id {
			g := gw
			return &g, true
		}
	}
	return nil, false
}

// SetActive toggles a gateway's active flag and drops the cache.
func (r *Registry) SetActive(ctx context.Context, db *sql.DB, id string, active bool) error {
	query := `UPDATE payment_gateways SET is_active = ? WHERE id = ?;`

	stmt, err := db.Prepare(query)
	if err != nil {
		return fmt.Errorf("setActive: unable to prepare query: %s", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(active, id)
	if err != nil {
		return fmt.Errorf("setActive: unable to execute query: %s", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("setActive: unable to get rows affected: %s", err)
	}
	if rowsAffected != 1 {
		return fmt.Errorf("setActive: no gateway with id %s", id)
	}

	r.invalidate()
	return nil
}

// Fees applies the gateway's fee schedule to an amount.
func Fees(gw model.PaymentGateway, amount float64) float64 {
	return amount*gw.FeePercentage/100 + gw.FeeFixed
}

// TotalAmount is the amount plus fees.
func TotalAmount(gw model.PaymentGateway, amount float64) float64 {
	return amount + Fees(gw, amount)
}

func filterActive(gws []model.PaymentGateway) []model.PaymentGateway {
	var active []model.PaymentGateway
	for _, gw := range gws {
		if gw.IsActive {
			active = append(active, gw)
		}
	}
	return active
}

func fetchGateways(db *sql.DB) ([]model.PaymentGateway, error) {
	if db == nil {
		return nil, fmt.Errorf("fetchGateways: no database handle")
	}

	query := `SELECT id, name, type, is_active, fee_percentage, fee_fixed, base_url, currencies, description FROM payment_gateways`

	stmt, err := db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("fetchGateways: error preparing query: %s", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("fetchGateways: error executing query: %s", err)
	}
	defer rows.Close()

	var gws []model.PaymentGateway
	for rows.Next() {
		var gw model.PaymentGateway
		var baseURL, currencies, description sql.NullString
		err := rows.Scan(
			&gw.ID,
			&gw.Name,
			&gw.Type,
			&gw.IsActive,
			&gw.FeePercentage,
			&gw.FeeFixed,
			&baseURL,
			&currencies,
			&description,
		)
		if err != nil {
			return nil, fmt.Errorf("fetchGateways: error while scanning row: %s", err)
		}
		gw.BaseURL = baseURL.String
		gw.Description = description.String
		if currencies.Valid && currencies.String != "" {
			json.Unmarshal([]byte(currencies.String), &gw.SupportedCurrencies)
		}
		gws = append(gws, gw)
	}

	return gws, nil
}

func (r *Registry) cached() ([]model.PaymentGateway, bool) {
	if r.cache == nil {
		return nil, false
	}

	val, err := r.cache.Get(cacheKey).Result()
	if err != nil {
		return nil, false
	}

	var gws []model.PaymentGateway
	if err := json.Unmarshal([]byte(val), &gws); err != nil {
		return nil, false
	}
	return gws, true
}

func (r *Registry) store(gws []model.PaymentGateway) {
	if r.cache == nil {
		return
	}

	b, err := json.Marshal(gws)
	if err != nil {
		return
	}
	r.cache.Set(cacheKey, b, r.ttl)
}

func (r *Registry) invalidate() {
	if r.cache != nil {
		r.cache.Del(cacheKey)
	}
}
