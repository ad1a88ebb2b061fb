package model

type ConnectRequest struct {
	Data ConnectData `json:"data"`
}

type ConnectData struct {
	Member *Member `json:"member,omitempty" validate:"required"`
	Auth   *Auth   `json:"auth,omitempty" validate:"required"`
}

type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FullName        string `json:"full_name"`

	PhoneCountryCode string `json:"phone_country_code"`
	PhoneNumber      string `json:"phone_number"`

	Tier                  string `json:"tier"`
	PhysicalCardRequested bool   `json:"physical_card_requested"`
	ReferralCode          string `json:"referral_code,omitempty"`

	Auth *Auth `json:"auth,omitempty"`
}

type PurchaseTokensRequest struct {
	SubscriptionID int64  `json:"subscription_id"`
	TokenAmount    int64  `json:"token_amount"`
	PaymentMethod  string `json:"payment_method"`
}

type RescueRequestBody struct {
	SubscriptionID int64  `json:"subscription_id"`
	Description    string `json:"description"`
	ValueFCFA      int64  `json:"value_fcfa"`
}

type WithdrawRequest struct {
	Amount float64 `json:"amount"`
	OTP    string  `json:"otp,omitempty"`
}
