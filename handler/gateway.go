package handler

import (
	"elverra-club-backend/factory"
	"elverra-club-backend/gateway"
	"elverra-club-backend/response"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// ListGateways returns the active payment gateways with their fee
// schedules. The checkout page renders straight off this list.
func ListGateways(registry *gateway.Registry, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		gws := registry.ActiveGateways(ctx, f.DB(ctx))

		response.SuccessResponse{
			Data:       &response.Data{Gateways: gws},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

// SetGatewayActive toggles a gateway. Admin only.
func SetGatewayActive(registry *gateway.Registry, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id := pathVar(mux.Vars(r), "gatewayID")

		var req struct {
			IsActive *bool `json:"is_active"`
		}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil || req.IsActive == nil {
			response.BadRequest("invalid request body", fmt.Sprintf("setGatewayActive: error unmarshalling request body: %+v", err)).Send(ctx, w)
			return
		}

		if err := registry.SetActive(ctx, f.DB(ctx), id, *req.IsActive); err != nil {
			sendError(ctx, w, err, "setGatewayActive: unable to update gateway")
			return
		}

		gw, _ := registry.ByID(ctx, f.DB(ctx), id)

		data := &response.Data{}
		if gw != nil {
			data.Gateways = append(data.Gateways, *gw)
		}

		response.SuccessResponse{
			Data:       data,
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}
