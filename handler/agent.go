package handler

import (
	"elverra-club-backend/agent"
	"elverra-club-backend/config"
	"elverra-club-backend/factory"
	"elverra-club-backend/model"
	"elverra-club-backend/response"
	"elverra-club-backend/twilio"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/viper"
)

func RegisterAgent(service *agent.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := memberID(ctx)
		if !ok {
			response.Unauthorized().Send(ctx, w)
			return
		}

		var req struct {
			AgentType string `json:"agent_type"`
		}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			response.BadRequest("invalid request body", fmt.Sprintf("registerAgent: error unmarshalling request body: %+v", err)).Send(ctx, w)
			return
		}

		a, err := service.Register(ctx, f.DB(ctx), id, req.AgentType)
		if err != nil {
			sendError(ctx, w, err, "registerAgent: unable to register agent")
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Agent: a},
			StatusCode: http.StatusCreated,
		}.Send(w)
	}
}

// GetAgent returns the caller's agent record with commission balances
// and the referrals attributed to their code.
func GetAgent(service *agent.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := memberID(ctx)
		if !ok {
			response.Unauthorized().Send(ctx, w)
			return
		}

		a, err := service.Get(ctx, f.DB(ctx), id)
		if err != nil {
			sendError(ctx, w, err, "getAgent: unable to fetch agent")
			return
		}

		refs, err := service.Referrals(ctx, f.DB(ctx), a.AgentID)
		if err != nil {
			sendError(ctx, w, err, "getAgent: unable to fetch referrals")
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Agent: a, Referrals: refs},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

// RequestWithdrawal starts the two step withdrawal. The OTP goes to
// the phone number on the member profile.
func RequestWithdrawal(service *agent.Service, sender twilio.Sender, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := memberID(ctx)
		if !ok {
			response.Unauthorized().Send(ctx, w)
			return
		}

		var req model.WithdrawRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			response.BadRequest("invalid request body", fmt.Sprintf("requestWithdrawal: error unmarshalling request body: %+v", err)).Send(ctx, w)
			return
		}

		status, err := service.RequestWithdrawalOTP(ctx, f.DB(ctx), id, req.Amount, sender, f.Redis(ctx), viper.GetString(config.Secret))
		if err != nil {
			sendError(ctx, w, err, "requestWithdrawal: unable to send otp")
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Auth: &model.Auth{Status: status}},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

// ConfirmWithdrawal settles the withdrawal once the OTP checks out.
func ConfirmWithdrawal(service *agent.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := memberID(ctx)
		if !ok {
			response.Unauthorized().Send(ctx, w)
			return
		}

		var req model.WithdrawRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil || isEmpty(req.OTP) {
			response.BadRequest("invalid request body", fmt.Sprintf("confirmWithdrawal: error unmarshalling request body: %+v", err)).Send(ctx, w)
			return
		}

		if err := service.ConfirmWithdrawal(ctx, f.DB(ctx), f.Redis(ctx), id, req.Amount, req.OTP); err != nil {
			sendError(ctx, w, err, "confirmWithdrawal: unable to confirm withdrawal")
			return
		}

		a, err := service.Get(ctx, f.DB(ctx), id)
		if err != nil {
			sendError(ctx, w, err, "confirmWithdrawal: unable to fetch agent")
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Agent: a},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}
