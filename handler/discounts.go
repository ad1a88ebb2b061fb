package handler

import (
	"elverra-club-backend/discounts"
	"elverra-club-backend/factory"
	"elverra-club-backend/response"
	"net/http"
	"strconv"
)

func ListSectors(service *discounts.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sectors, err := service.Sectors(ctx, f.DB(ctx))
		if err != nil {
			sendError(ctx, w, err, "listSectors: unable to fetch sectors")
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Sectors: sectors},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

func ListMerchants(service *discounts.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var sectorID int64
		if raw := r.URL.Query().Get("sector"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				response.BadRequest("invalid sector id", "").Send(ctx, w)
				return
			}
			sectorID = id
		}

		merchants, err := service.Merchants(ctx, f.DB(ctx), sectorID)
		if err != nil {
			sendError(ctx, w, err, "listMerchants: unable to fetch merchants")
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Merchants: merchants},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}
