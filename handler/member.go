package handler

import (
	"elverra-club-backend/factory"
	"elverra-club-backend/firebase"
	"elverra-club-backend/logger"
	"elverra-club-backend/membership"
	"elverra-club-backend/model"
	"elverra-club-backend/response"
	"elverra-club-backend/vault"
	"encoding/json"
	"fmt"
	"net/http"
)

// Register creates the member, the membership and the registration
// payment record in one shot. Validation happens before the firebase
// round trip so bad requests fail fast.
func Register(service *membership.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req model.RegisterRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			response.BadRequest("invalid request body", fmt.Sprintf("register: error unmarshalling request body: %+v", err)).Send(ctx, w)
			return
		}

		if err := validateRegister(&req); err != nil {
			err.Send(ctx, w)
			return
		}

		if req.Auth == nil || req.Auth.TokenID == "" {
			response.Unauthorized().Send(ctx, w)
			return
		}

		token, err := firebase.VerifyIDToken(ctx, f.FirebaseApp(ctx), req.Auth.TokenID)
		if err != nil {
			response.Unauthorized().Send(ctx, w)
			return
		}

		member, ms, err := service.Register(ctx, f.DB(ctx), &req, token.UID)
		if err != nil {
			sendError(ctx, w, err, "register: unable to register member")
			return
		}

		response.SuccessResponse{
			Data: &response.Data{
				Member:     member,
				Membership: ms,
			},
			StatusCode: http.StatusCreated,
		}.Send(w)
	}
}

func validateRegister(req *model.RegisterRequest) *response.ErrorResponse {
	if len(req.Password) < 6 {
		e := response.PasswordTooShort()
		return &e
	}
	if req.Password != req.ConfirmPassword {
		e := response.PasswordMismatch()
		return &e
	}
	if !validateEmail(req.Email) {
		e := response.InvalidEmail()
		return &e
	}
	if isEmpty(req.FullName) || isEmpty(req.PhoneNumber) {
		e := response.InvalidData("register: full name and phone number are required")
		return &e
	}
	if _, ok := membership.TierByID(req.Tier); !ok {
		e := response.InvalidData(fmt.Sprintf("register: unknown tier: %s", req.Tier))
		return &e
	}
	return nil
}

func GetMember(service *membership.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := memberID(ctx)
		if !ok {
			response.Unauthorized().Send(ctx, w)
			return
		}

		member, ms, err := service.Get(ctx, f.DB(ctx), id)
		if err != nil {
			sendError(ctx, w, err, "getMember: unable to fetch member")
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Member: member, Membership: ms},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

func UpdateMember(service *membership.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := memberID(ctx)
		if !ok {
			response.Unauthorized().Send(ctx, w)
			return
		}

		var member model.Member
		err := json.NewDecoder(r.Body).Decode(&member)
		if err != nil {
			response.BadRequest("invalid request body", fmt.Sprintf("updateMember: error unmarshalling request body: %+v", err)).Send(ctx, w)
			return
		}

		if member.EmailAddress != nil && !validateEmail(*member.EmailAddress) {
			response.InvalidEmail().Send(ctx, w)
			return
		}

		member.MemberID = id
		updated, err := service.Update(ctx, f.DB(ctx), &member)
		if err != nil {
			sendError(ctx, w, err, "updateMember: unable to update member")
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Member: updated},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

// RenewMembership extends the active membership by a year once the
// referenced payment has settled.
func RenewMembership(service *membership.Service, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := memberID(ctx)
		if !ok {
			response.Unauthorized().Send(ctx, w)
			return
		}

		var req struct {
			PaymentReference string `json:"payment_reference"`
		}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil || isEmpty(req.PaymentReference) {
			response.BadRequest("invalid request body", "renewMembership: missing payment reference").Send(ctx, w)
			return
		}

		ms, err := service.Renew(ctx, f.DB(ctx), id, req.PaymentReference)
		if err != nil {
			sendError(ctx, w, err, "renewMembership: unable to renew")
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Membership: ms},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

// CardToken issues the encrypted digital card token for the caller's
// active membership.
func CardToken(service *membership.Service, v *vault.Vault, f factory.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := memberID(ctx)
		if !ok {
			response.Unauthorized().Send(ctx, w)
			return
		}

		key, err := v.CardKey()
		if err != nil {
			logger.Errorf(ctx, "cardToken: unable to read card key: %+v", err)
			response.SomethingWrong().Send(ctx, w)
			return
		}

		token, err := service.CardToken(ctx, f.DB(ctx), id, key)
		if err != nil {
			sendError(ctx, w, err, "cardToken: unable to issue card token")
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{CardToken: token},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

// ValidateCard checks a presented card token. Partners call this to
// honor member discounts, so it does not require a member session.
func ValidateCard(v *vault.Vault) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req struct {
			CardToken string `json:"card_token"`
		}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil || isEmpty(req.CardToken) {
			response.BadRequest("invalid request body", "validateCard: missing card token").Send(ctx, w)
			return
		}

		key, err := v.CardKey()
		if err != nil {
			logger.Errorf(ctx, "validateCard: unable to read card key: %+v", err)
			response.SomethingWrong().Send(ctx, w)
			return
		}

		payload, valid, err := membership.ValidateCard(req.CardToken, key)
		if err != nil {
			sendError(ctx, w, err, "validateCard: unable to validate card token")
			return
		}

		ms := &model.Membership{
			MemberCode: payload.MemberCode,
			Tier:       payload.Tier,
			ExpiryDate: &payload.ExpiryDate,
		}

		response.SuccessResponse{
			Data:       &response.Data{Membership: ms, Valid: &valid},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}
