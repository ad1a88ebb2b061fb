package model

import (
	"time"
)

type Member struct {
	MemberID int64 `json:"member_id,omitempty"`

	FirebaseID   *string `json:"firebase_id,omitempty"`
	EmailAddress *string `json:"email_address,omitempty"`
	FullName     *string `json:"full_name,omitempty"`

	PhoneCountryCode *string `json:"phone_country_code,omitempty"`
	PhoneNumber      *string `json:"phone_number,omitempty"`

	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	Country    *string `json:"country,omitempty"`
	ProfilePic *string `json:"profile_pic,omitempty"`

	Role string `json:"role,omitempty"`

	IsActive bool `json:"is_active,omitempty"`

	CreatedDate *time.Time `json:"created_date,omitempty"`
	UpdatedDate *time.Time `json:"updated_date,omitempty"`
}

type Membership struct {
	MembershipID int64  `json:"membership_id,omitempty"`
	MemberID     int64  `json:"member_id,omitempty"`
	MemberCode   string `json:"member_code,omitempty"`

	Tier        string `json:"tier,omitempty"`
	DiscountPct int    `json:"discount_pct,omitempty"`

	IsActive              bool `json:"is_active,omitempty"`
	PhysicalCardRequested bool `json:"physical_card_requested,omitempty"`

	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
	CreatedDate *time.Time `json:"created_date,omitempty"`
}
