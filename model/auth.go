package model

type Auth struct {
	TokenID  string  `json:"token_id,omitempty" validate:"required"`
	DeviceID *string `json:"device_id,omitempty"`
	Status   string  `json:"status,omitempty"`
	OTP      string  `json:"otp,omitempty"`
}
