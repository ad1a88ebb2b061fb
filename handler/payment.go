package handler

import (
	"elverra-club-backend/factory"
	"elverra-club-backend/model"
	"elverra-club-backend/payment"
	"elverra-club-backend/response"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"
)

// WebhookSignatureHeader carries the provider's HMAC over the raw
// request body.
const WebhookSignatureHeader = "X-Signature"

// ProcessPayment runs a payment through the selected gateway. Gateway
// failures come back as a payment response with Success false, not as
// an HTTP error, so the client always gets a renderable result.
func ProcessPayment(service *payment.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := memberID(ctx)
		if !ok {
			response.Unauthorized().Send(ctx, w)
			return
		}

		var req struct {
			GatewayID string `json:"gateway_id"`
			model.PaymentRequest
		}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			response.BadRequest("invalid request body", fmt.Sprintf("processPayment: error unmarshalling request body: %+v", err)).Send(ctx, w)
			return
		}

		if isEmpty(req.GatewayID) || req.Amount <= 0 {
			response.InvalidData("processPayment: gateway id and a positive amount are required").Send(ctx, w)
			return
		}

		req.PaymentRequest.MemberID = id
		res := service.Process(ctx, f.DB(ctx), req.GatewayID, &req.PaymentRequest)

		response.SuccessResponse{
			Data:       &response.Data{Payment: res},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

// PaymentStatus returns the recorded state of a payment by its
// transaction reference.
func PaymentStatus(service *payment.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := memberID(ctx)
		if !ok {
			response.Unauthorized().Send(ctx, w)
			return
		}

		reference := pathVar(mux.Vars(r), "reference")
		record, err := service.Status(ctx, f.DB(ctx), reference)
		if err != nil {
			sendError(ctx, w, err, "paymentStatus: unable to fetch payment")
			return
		}

		if record.MemberID != id {
			response.Forbidden().Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Record: record},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

// Webhook receives gateway callbacks. The signature is verified over
// the raw body before anything is parsed or persisted; a bad signature
// changes no state.
func Webhook(service *payment.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		gatewayID := pathVar(mux.Vars(r), "gatewayID")

		payload, err := ioutil.ReadAll(r.Body)
		if err != nil {
			response.BadRequest("unable to read request body", fmt.Sprintf("webhook: %+v", err)).Send(ctx, w)
			return
		}

		signature := r.Header.Get(WebhookSignatureHeader)
		if err := service.HandleWebhook(ctx, f.DB(ctx), gatewayID, payload, signature); err != nil {
			sendError(ctx, w, err, "webhook: unable to handle callback")
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
