package handler

import (
	"elverra-club-backend/config"
	"elverra-club-backend/factory"
	"elverra-club-backend/firebase"
	"elverra-club-backend/logger"
	"elverra-club-backend/membership"
	"elverra-club-backend/model"
	"elverra-club-backend/response"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"
)

// Connect exchanges a firebase ID token for the member profile,
// creating the profile on first sign-in. When the online verifier is
// unreachable the token is checked offline against Google's published
// certificates.
func Connect(service *membership.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req model.ConnectRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			response.BadRequest("invalid request body", fmt.Sprintf("connect: error unmarshalling request body: %+v", err)).Send(ctx, w)
			return
		}

		if req.Data.Auth == nil || req.Data.Auth.TokenID == "" {
			response.InvalidData("connect: missing id token").Send(ctx, w)
			return
		}

		uid := ""
		token, err := firebase.VerifyIDToken(ctx, f.FirebaseApp(ctx), req.Data.Auth.TokenID)
		if err == nil {
			uid = token.UID
		} else {
			offlineUID, ok := firebase.VerifyJWTIDToken(
				req.Data.Auth.TokenID,
				viper.GetString(config.FirebaseProjectID),
				time.Duration(viper.GetInt(config.JWTOfflineInterval))*time.Second,
			)
			if !ok {
				response.Unauthorized().Send(ctx, w)
				return
			}
			logger.Infof(ctx, "connect: online verification failed, accepted offline: %+v", err)
			uid = offlineUID
		}

		email, fullName := "", ""
		if req.Data.Member != nil {
			if req.Data.Member.EmailAddress != nil {
				email = *req.Data.Member.EmailAddress
			}
			if req.Data.Member.FullName != nil {
				fullName = *req.Data.Member.FullName
			}
		}

		member, err := service.EnsureProfile(ctx, f.DB(ctx), uid, email, fullName)
		if err != nil {
			sendError(ctx, w, err, "connect: unable to ensure profile")
			return
		}

		member.Role = service.RoleFor(ctx, f.DB(ctx), member.MemberID)

		response.SuccessResponse{
			Data:       &response.Data{Member: member},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}
