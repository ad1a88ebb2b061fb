package agent

import (
	"context"
	"database/sql"
	"elverra-club-backend/logger"
	"elverra-club-backend/response"
	"elverra-club-backend/twilio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis"
	"github.com/pquerna/otp/totp"
)

const (
	withdrawOTPMessage = "OTP to confirm your Elverra commission withdrawal: %s"
	otpSent            = "OTP_SUCCESSFULLY_SENT"
)

// RequestWithdrawalOTP starts a withdrawal. It checks the agent has the
// requested amount pending, then texts a one time code valid for five
// minutes. Nothing moves until the code is confirmed.
func (s *Service) RequestWithdrawalOTP(ctx context.Context, db *sql.DB, memberID int64, amount float64, sender twilio.Sender, client *redis.Client, secret string) (string, error) {
	if amount <= 0 {
		return "", response.InvalidData("requestWithdrawalOTP: a positive amount is required")
	}

	a, found, err := agentByColumn(db, "member_id", memberID)
	if err != nil {
		logger.Errorf(ctx, "requestWithdrawalOTP: unable to fetch agent: %+v", err)
		return "", response.SomethingWrong()
	}
	if !found {
		return "", response.AgentNotExist()
	}
	if a.CommissionsPending < amount {
		return "", response.InsufficientCommission()
	}

	phone, err := memberPhone(db, memberID)
	if err != nil {
		logger.Errorf(ctx, "requestWithdrawalOTP: unable to fetch member phone: %+v", err)
		return "", response.SomethingWrong()
	}
	if phone == "" {
		return "", response.InvalidData("requestWithdrawalOTP: no phone number on the member profile")
	}

	if err := sendWithdrawalOTP(sender, client, a.AgentID, secret, phone, amount); err != nil {
		logger.Errorf(ctx, "requestWithdrawalOTP: error sending otp: %+v", err)
		return "", response.SomethingWrong()
	}

	return otpSent, nil
}

func sendWithdrawalOTP(sender twilio.Sender, client *redis.Client, agentID int64, secret, phoneNumber string, amount float64) error {
	otp, err := totp.GenerateCode(secret, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("sendWithdrawalOTP: unable to generate otp: %s", err)
	}

	sid, err := sender.Send(phoneNumber, fmt.Sprintf(withdrawOTPMessage, otp))
	if err != nil {
		return fmt.Errorf("sendWithdrawalOTP: unable to send otp to: %s: %s", phoneNumber, err)
	}

	err = client.Set(fmt.Sprintf("agent-withdraw-%d", agentID), withdrawalClaim(otp, amount), time.Minute*5).Err()
	if err != nil {
		return fmt.Errorf("sendWithdrawalOTP: unable to save otp for mobile: %s, sid: %v : %s", phoneNumber, sid, err)
	}

	return nil
}

// withdrawalClaim packs the code and the approved amount into one Redis
// value, so a code issued for one amount cannot confirm another.
func withdrawalClaim(otp string, amount float64) string {
	return fmt.Sprintf("%s:%.2f", otp, amount)
}

func parseWithdrawalClaim(val string) (otp string, amount float64, ok bool) {
	parts := strings.SplitN(val, ":", 2)
	if len(parts) != 2 {
		return "", 0, false
	}

	amount, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", 0, false
	}
	return parts[0], amount, true
}

// ConfirmWithdrawal verifies the code and settles the withdrawal in one
// transaction. The pending balance is re-checked under a row lock so a
// stale OTP cannot overdraw it.
func (s *Service) ConfirmWithdrawal(ctx context.Context, db *sql.DB, client *redis.Client, memberID int64, amount float64, otp string) error {
	if amount <= 0 {
		return response.InvalidData("confirmWithdrawal: a positive amount is required")
	}

	a, found, err := agentByColumn(db, "member_id", memberID)
	if err != nil {
		logger.Errorf(ctx, "confirmWithdrawal: unable to fetch agent: %+v", err)
		return response.SomethingWrong()
	}
	if !found {
		return response.AgentNotExist()
	}

	key := client.Get(fmt.Sprintf("agent-withdraw-%d", a.AgentID))
	if key.Err() != nil {
		return response.OTPExpired()
	}

	claimOTP, claimAmount, ok := parseWithdrawalClaim(key.Val())
	if !ok || claimOTP != otp || claimAmount != amount {
		return response.OTPMismatch()
	}

	tx, err := db.Begin()
	if err != nil {
		logger.Errorf(ctx, "confirmWithdrawal: unable to begin transaction: %+v", err)
		return response.SomethingWrong()
	}
	defer tx.Rollback()

	var pending float64
	err = tx.QueryRow(`SELECT commissions_pending FROM agents WHERE agent_id = ? FOR UPDATE`, a.AgentID).Scan(&pending)
	if err != nil {
		logger.Errorf(ctx, "confirmWithdrawal: unable to lock agent row: %+v", err)
		return response.SomethingWrong()
	}
	if pending < amount {
		return response.InsufficientCommission()
	}

	_, err = tx.Exec(
		`UPDATE agents SET commissions_pending = commissions_pending - ?, commissions_withdrawn = commissions_withdrawn + ? WHERE agent_id = ?`,
		amount, amount, a.AgentID,
	)
	if err != nil {
		logger.Errorf(ctx, "confirmWithdrawal: unable to update balances: %+v", err)
		return response.SomethingWrong()
	}

	_, err = tx.Exec(
		`INSERT INTO agent_withdrawals (agent_id, amount, status) VALUES (?, ?, 'completed')`,
		a.AgentID, amount,
	)
	if err != nil {
		logger.Errorf(ctx, "confirmWithdrawal: unable to record withdrawal: %+v", err)
		return response.SomethingWrong()
	}

	if err := tx.Commit(); err != nil {
		logger.Errorf(ctx, "confirmWithdrawal: unable to commit transaction: %+v", err)
		return response.SomethingWrong()
	}

	client.Del(fmt.Sprintf("agent-withdraw-%d", a.AgentID))

	return nil
}

func memberPhone(db *sql.DB, memberID int64) (string, error) {
	var countryCode, number sql.NullString
	err := db.QueryRow(`SELECT phone_country_code, phone_number FROM members WHERE member_id = ?`, memberID).Scan(&countryCode, &number)
	if err != nil {
		return "", err
	}
	return formatPhone(countryCode, number), nil
}

// formatPhone joins the country code and number; profiles created
// through Connect carry neither until the member fills them in.
func formatPhone(countryCode, number sql.NullString) string {
	if !number.Valid || strings.TrimSpace(number.String) == "" {
		return ""
	}
	return countryCode.String + number.String
}
