package model

import (
	"time"
)

type Sector struct {
	SectorID int64  `json:"sector_id,omitempty"`
	Name     string `json:"name,omitempty"`
}

type Merchant struct {
	MerchantID int64  `json:"merchant_id,omitempty"`
	SectorID   int64  `json:"sector_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Location   string `json:"location,omitempty"`

	DiscountPct int  `json:"discount_pct"`
	IsFeatured  bool `json:"is_featured"`
	IsActive    bool `json:"is_active,omitempty"`

	CreatedDate *time.Time `json:"created_date,omitempty"`
}
