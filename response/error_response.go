package response

import (
	"context"
	"elverra-club-backend/logger"
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorResponse struct {
	StatusCode  int
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Status      string `json:"status"`
	Description string
}

func (r ErrorResponse) Error() string {
	return fmt.Sprintf("StatusCode: %d, Success: %t, Message: %s, Status: %s, Description: %s", r.StatusCode, r.Success, r.Message, r.Status, r.Description)
}

func (r ErrorResponse) Send(ctx context.Context, w http.ResponseWriter) {
	logger.Errorf(ctx, r.Error())
	w.WriteHeader(r.StatusCode)
	json.NewEncoder(w).Encode(r)
}

func BadRequest(message, description string) ErrorResponse {
	return ErrorResponse{
		StatusCode:  http.StatusBadRequest,
		Success:     false,
		Message:     message,
		Status:      "BAD REQUEST",
		Description: description,
	}
}

func ResourceNotFound(message, description string) ErrorResponse {
	return ErrorResponse{
		StatusCode:  http.StatusNotFound,
		Success:     false,
		Message:     message,
		Status:      "NOT FOUND",
		Description: description,
	}
}

func Unauthorized() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusUnauthorized,
		Success:    false,
		Message:    "No valid Auth Token",
		Status:     "UNAUTHORISED",
	}
}

func Forbidden() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusForbidden,
		Success:    false,
		Message:    "You are not allowed to perform this action",
		Status:     "FORBIDDEN",
	}
}

func SomethingWrong() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Success:    false,
		Message:    "Sorry, Something went wrong",
		Status:     "SOMETHING_WRONG",
	}
}

func InvalidData(description string) ErrorResponse {
	return ErrorResponse{
		StatusCode:  http.StatusBadRequest,
		Success:     false,
		Message:     "Invalid data passed",
		Status:      "INVALID_DATA",
		Description: description,
	}
}

func PasswordMismatch() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Success:    false,
		Message:    "Passwords do not match",
		Status:     "PASSWORD_MISMATCH",
	}
}

func PasswordTooShort() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Success:    false,
		Message:    "Password must be at least 6 characters",
		Status:     "PASSWORD_TOO_SHORT",
	}
}

func InvalidEmail() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Success:    false,
		Message:    "Invalid Email Address",
		Status:     "INVALID_EMAIL",
	}
}

func MemberExists() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusConflict,
		Success:    false,
		Message:    "This member already exists",
		Status:     "MEMBER_EXISTS",
	}
}

func MemberNotExist() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusNotFound,
		Success:    false,
		Message:    "No such member exists",
		Status:     "MEMBER_NOT_EXIST",
	}
}

func MembershipExpired() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusConflict,
		Success:    false,
		Message:    "The membership has expired",
		Status:     "MEMBERSHIP_EXPIRED",
	}
}

func GatewayUnsupported(id string) ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Success:    false,
		Message:    fmt.Sprintf("Unsupported payment gateway: %s", id),
		Status:     "GATEWAY_UNSUPPORTED",
	}
}

func PaymentNotFound() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusNotFound,
		Success:    false,
		Message:    "No payment found for this reference",
		Status:     "PAYMENT_NOT_FOUND",
	}
}

func InvalidWebhookSignature() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusForbidden,
		Success:    false,
		Message:    "Webhook signature could not be verified",
		Status:     "INVALID_WEBHOOK_SIGNATURE",
	}
}

func SubscriptionExists() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusConflict,
		Success:    false,
		Message:    "An active subscription of this type already exists",
		Status:     "SUBSCRIPTION_EXISTS",
	}
}

func SubscriptionNotFound() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusNotFound,
		Success:    false,
		Message:    "No such subscription exists",
		Status:     "SUBSCRIPTION_NOT_FOUND",
	}
}

func InsufficientTokens() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusConflict,
		Success:    false,
		Message:    "Not enough tokens for this rescue request",
		Status:     "INSUFFICIENT_TOKENS",
	}
}

func TokenAmountOutOfRange(min, max int64) ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Success:    false,
		Message:    fmt.Sprintf("Token amount must be between %d and %d", min, max),
		Status:     "TOKEN_AMOUNT_OUT_OF_RANGE",
	}
}

func AgentExists() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusConflict,
		Success:    false,
		Message:    "This member is already an agent",
		Status:     "AGENT_EXISTS",
	}
}

func AgentNotExist() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusNotFound,
		Success:    false,
		Message:    "No such agent exists",
		Status:     "AGENT_NOT_EXIST",
	}
}

func InsufficientCommission() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusConflict,
		Success:    false,
		Message:    "Withdrawal amount exceeds pending commissions",
		Status:     "INSUFFICIENT_COMMISSION",
	}
}

func OTPExpired() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusGone,
		Success:    false,
		Message:    "OTP Expired, Please try again",
		Status:     "OTP_EXPIRED",
	}
}

func OTPMismatch() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Success:    false,
		Message:    "Wrong OTP entered",
		Status:     "OTP_MISMATCH",
	}
}

func InvalidCardToken() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Success:    false,
		Message:    "Card token is invalid or tampered",
		Status:     "INVALID_CARD_TOKEN",
	}
}

func FirebaseInvalidUID() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusForbidden,
		Success:    false,
		Message:    "Failed to authenticate user",
		Status:     "FIREBASE_INVALID_UID",
	}
}
