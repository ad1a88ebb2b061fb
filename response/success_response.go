package response

import (
	"elverra-club-backend/model"
	"encoding/json"
	"net/http"
)

type SuccessResponse struct {
	Data       *Data `json:"data"`
	StatusCode int   `json:"-"`
}

type Data struct {
	Member     *model.Member     `json:"member,omitempty"`
	Membership *model.Membership `json:"membership,omitempty"`
	Auth       *model.Auth       `json:"auth,omitempty"`

	Gateways []model.PaymentGateway `json:"gateways,omitempty"`
	Payment  *model.PaymentResponse `json:"payment,omitempty"`
	Record   *model.Payment         `json:"record,omitempty"`

	Subscription  *model.SecoursSubscription  `json:"subscription,omitempty"`
	Subscriptions []model.SecoursSubscription `json:"subscriptions,omitempty"`
	Transactions  []model.TokenTransaction    `json:"transactions,omitempty"`
	Rescue        *model.RescueRequest        `json:"rescue,omitempty"`
	Rescues       []model.RescueRequest       `json:"rescues,omitempty"`
	TokenPolicy   *model.TokenPolicy          `json:"token_policy,omitempty"`

	Agent     *model.Agent     `json:"agent,omitempty"`
	Referrals []model.Referral `json:"referrals,omitempty"`

	Sectors   []model.Sector   `json:"sectors,omitempty"`
	Merchants []model.Merchant `json:"merchants,omitempty"`

	CardToken string `json:"card_token,omitempty"`
	Valid     *bool  `json:"valid,omitempty"`
}

func (r SuccessResponse) Send(w http.ResponseWriter) {
	w.WriteHeader(r.StatusCode)
	json.NewEncoder(w).Encode(r)
}
