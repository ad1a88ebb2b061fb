package handler

import (
	"elverra-club-backend/factory"
	"elverra-club-backend/membership"
	"elverra-club-backend/model"
	"elverra-club-backend/response"
	"elverra-club-backend/secours"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

func Subscribe(service *secours.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := memberID(ctx)
		if !ok {
			response.Unauthorized().Send(ctx, w)
			return
		}

		var req struct {
			SubscriptionType string `json:"subscription_type"`
		}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			response.BadRequest("invalid request body", fmt.Sprintf("subscribe: error unmarshalling request body: %+v", err)).Send(ctx, w)
			return
		}

		if !secours.ValidType(req.SubscriptionType) {
			response.InvalidData(fmt.Sprintf("subscribe: unknown subscription type: %s", req.SubscriptionType)).Send(ctx, w)
			return
		}

		sub, err := service.Subscribe(ctx, f.DB(ctx), id, req.SubscriptionType)
		if err != nil {
			sendError(ctx, w, err, "subscribe: unable to create subscription")
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Subscription: sub},
			StatusCode: http.StatusCreated,
		}.Send(w)
	}
}

func PurchaseTokens(service *secours.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := memberID(ctx)
		if !ok {
			response.Unauthorized().Send(ctx, w)
			return
		}

		var req model.PurchaseTokensRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			response.BadRequest("invalid request body", fmt.Sprintf("purchaseTokens: error unmarshalling request body: %+v", err)).Send(ctx, w)
			return
		}

		sub, err := service.PurchaseTokens(ctx, f.DB(ctx), id, &req)
		if err != nil {
			sendError(ctx, w, err, "purchaseTokens: unable to purchase tokens")
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Subscription: sub},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

// RequestRescue debits tokens and files the rescue in one transaction.
// The member gets a confirmation SMS on the number from their profile.
func RequestRescue(service *secours.Service, members *membership.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := memberID(ctx)
		if !ok {
			response.Unauthorized().Send(ctx, w)
			return
		}

		var req model.RescueRequestBody
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			response.BadRequest("invalid request body", fmt.Sprintf("requestRescue: error unmarshalling request body: %+v", err)).Send(ctx, w)
			return
		}

		if req.ValueFCFA <= 0 {
			response.InvalidData("requestRescue: rescue value must be positive").Send(ctx, w)
			return
		}

		phone := ""
		if member, _, err := members.Get(ctx, f.DB(ctx), id); err == nil {
			if member.PhoneCountryCode != nil && member.PhoneNumber != nil {
				phone = *member.PhoneCountryCode + *member.PhoneNumber
			}
		}

		rescue, err := service.RequestRescue(ctx, f.DB(ctx), id, &req, phone)
		if err != nil {
			sendError(ctx, w, err, "requestRescue: unable to file rescue request")
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Rescue: rescue},
			StatusCode: http.StatusCreated,
		}.Send(w)
	}
}

// ReviewRescue approves or rejects a pending rescue. Admin only; a
// rejection refunds the debited tokens.
func ReviewRescue(service *secours.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rescueID, ok := pathVarInt64(mux.Vars(r), "rescueID")
		if !ok {
			response.BadRequest("invalid rescue id", "").Send(ctx, w)
			return
		}

		var req struct {
			Approve *bool `json:"approve"`
		}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil || req.Approve == nil {
			response.BadRequest("invalid request body", fmt.Sprintf("reviewRescue: error unmarshalling request body: %+v", err)).Send(ctx, w)
			return
		}

		if err := service.ReviewRescue(ctx, f.DB(ctx), rescueID, *req.Approve); err != nil {
			sendError(ctx, w, err, "reviewRescue: unable to review rescue")
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func ListSubscriptions(service *secours.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := memberID(ctx)
		if !ok {
			response.Unauthorized().Send(ctx, w)
			return
		}

		subs, err := service.Subscriptions(ctx, f.DB(ctx), id)
		if err != nil {
			sendError(ctx, w, err, "listSubscriptions: unable to fetch subscriptions")
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Subscriptions: subs},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

func ListTransactions(service *secours.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := memberID(ctx)
		if !ok {
			response.Unauthorized().Send(ctx, w)
			return
		}

		txs, err := service.Transactions(ctx, f.DB(ctx), id)
		if err != nil {
			sendError(ctx, w, err, "listTransactions: unable to fetch transactions")
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Transactions: txs},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

func ListRescues(service *secours.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := memberID(ctx)
		if !ok {
			response.Unauthorized().Send(ctx, w)
			return
		}

		rescues, err := service.Rescues(ctx, f.DB(ctx), id)
		if err != nil {
			sendError(ctx, w, err, "listRescues: unable to fetch rescues")
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Rescues: rescues},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

func GetTokenPolicy(service *secours.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		subscriptionType := pathVar(mux.Vars(r), "subscriptionType")
		if !secours.ValidType(subscriptionType) {
			response.InvalidData(fmt.Sprintf("getTokenPolicy: unknown subscription type: %s", subscriptionType)).Send(ctx, w)
			return
		}

		policy, err := service.TokenPolicy(ctx, f.DB(ctx), subscriptionType)
		if err != nil {
			sendError(ctx, w, err, "getTokenPolicy: unable to fetch policy")
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{TokenPolicy: policy},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}
