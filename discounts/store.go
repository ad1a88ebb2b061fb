package discounts

import (
	"database/sql"
	"elverra-club-backend/model"
	"fmt"
)

func fetchSectors(db *sql.DB) ([]model.Sector, error) {
	query := `SELECT sector_id, name FROM sectors ORDER BY name`

	stmt, err := db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("fetchSectors: error preparing query: %s", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("fetchSectors: error executing query: %s", err)
	}
	defer rows.Close()

	var sectors []model.Sector
	for rows.Next() {
		var s model.Sector
		if err := rows.Scan(&s.SectorID, &s.Name); err != nil {
			return nil, fmt.Errorf("fetchSectors: error while scanning row: %s", err)
		}
		sectors = append(sectors, s)
	}

	return sectors, nil
}

func fetchMerchants(db *sql.DB, sectorID int64) ([]model.Merchant, error) {
	query := `SELECT merchant_id, sector_id, name, location, discount_pct, is_featured, is_active, created_date FROM merchants WHERE is_active = 1`
	args := []interface{}{}
	if sectorID > 0 {
		query += ` AND sector_id = ?`
		args = append(args, sectorID)
	}
	query += ` ORDER BY is_featured DESC, name`

	stmt, err := db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("fetchMerchants: error preparing query: %s", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, fmt.Errorf("fetchMerchants: error executing query: %s", err)
	}
	defer rows.Close()

	var merchants []model.Merchant
	for rows.Next() {
		var m model.Merchant
		var location sql.NullString
		err := rows.Scan(
			&m.MerchantID,
			&m.SectorID,
			&m.Name,
			&location,
			&m.DiscountPct,
			&m.IsFeatured,
			&m.IsActive,
			&m.CreatedDate,
		)
		if err != nil {
			return nil, fmt.Errorf("fetchMerchants: error while scanning row: %s", err)
		}
		m.Location = location.String
		merchants = append(merchants, m)
	}

	return merchants, nil
}
