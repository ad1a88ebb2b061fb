package secours

import (
	"context"
	"database/sql"
	"elverra-club-backend/logger"
	"elverra-club-backend/metrics"
	"elverra-club-backend/model"
	"elverra-club-backend/response"
	"elverra-club-backend/twilio"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	sender  twilio.Sender
	metrics *metrics.Metrics
}

func NewService(sender twilio.Sender, m *metrics.Metrics) *Service {
	return &Service{sender: sender, metrics: m}
}

// Subscribe opens an Ô Secours subscription of the given type. A member
// holds at most one active subscription per type.
func (s *Service) Subscribe(ctx context.Context, db *sql.DB, memberID int64, subscriptionType string) (*model.SecoursSubscription, error) {
	if !ValidType(subscriptionType) {
		return nil, response.InvalidData(fmt.Sprintf("subscribe: unknown subscription type: %s", subscriptionType))
	}

	var existing int64
	err := db.QueryRow(
		`SELECT subscription_id FROM secours_subscriptions WHERE member_id = ? AND subscription_type = ? AND is_active = 1`,
		memberID, subscriptionType,
	).Scan(&existing)
	if err == nil {
		return nil, response.SubscriptionExists()
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("subscribe: unable to check existing subscription: %w", err)
	}

	result, err := db.Exec(
		`INSERT INTO secours_subscriptions (member_id, subscription_type, token_balance, is_active) VALUES (?, ?, 0, 1);`,
		memberID, subscriptionType,
	)
	if isDuplicate(err) {
		return nil, response.SubscriptionExists()
	}
	if err != nil {
		return nil, fmt.Errorf("subscribe: unable to insert subscription: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("subscribe: unable to get last insert id: %w", err)
	}

	sub, _, err := fetchSubscription(db, id)
	if err != nil {
		return nil, fmt.Errorf("subscribe: error fetching subscription: id: %d: err: %w", id, err)
	}

	return sub, nil
}

// PurchaseTokens credits tokens onto a subscription. The transaction
// row and the balance move together or not at all.
func (s *Service) PurchaseTokens(ctx context.Context, db *sql.DB, memberID int64, req *model.PurchaseTokensRequest) (*model.SecoursSubscription, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("purchaseTokens: unable to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sub, err := lockSubscription(tx, req.SubscriptionID, memberID)
	if err != nil {
		return nil, err
	}

	policy, err := policyFor(db, sub.SubscriptionType)
	if err != nil {
		return nil, fmt.Errorf("purchaseTokens: %w", err)
	}

	if req.TokenAmount < policy.MinTokens || req.TokenAmount > policy.MaxTokens {
		return nil, response.TokenAmountOutOfRange(policy.MinTokens, policy.MaxTokens)
	}

	amountFCFA := req.TokenAmount * policy.TokenValueFCFA
	reference := fmt.Sprintf("TOK_%s", uuid.New().String())

	_, err = tx.Exec(
		`INSERT INTO token_transactions (subscription_id, token_amount, amount_fcfa, payment_method, reference) VALUES (?, ?, ?, ?, ?);`,
		sub.SubscriptionID, req.TokenAmount, amountFCFA, req.PaymentMethod, reference,
	)
	if err != nil {
		return nil, fmt.Errorf("purchaseTokens: unable to insert transaction: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE secours_subscriptions SET token_balance = token_balance + ? WHERE subscription_id = ?;`,
		req.TokenAmount, sub.SubscriptionID,
	)
	if err != nil {
		return nil, fmt.Errorf("purchaseTokens: unable to update balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("purchaseTokens: unable to commit transaction: %w", err)
	}

	if s.metrics != nil {
		s.metrics.TokenPurchases.WithLabelValues(sub.SubscriptionType).Inc()
	}

	updated, _, err := fetchSubscription(db, sub.SubscriptionID)
	if err != nil {
		return nil, fmt.Errorf("purchaseTokens: error fetching subscription: %w", err)
	}

	return updated, nil
}

// RequestRescue files a rescue claim against the subscription's token
// balance. The tokens the claim is worth are debited up front; a
// rejected claim refunds them.
func (s *Service) RequestRescue(ctx context.Context, db *sql.DB, memberID int64, req *model.RescueRequestBody, memberPhone string) (*model.RescueRequest, error) {
	if req.Description == "" || req.ValueFCFA <= 0 {
		return nil, response.InvalidData("requestRescue: description and a positive value are required")
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("requestRescue: unable to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sub, err := lockSubscription(tx, req.SubscriptionID, memberID)
	if err != nil {
		return nil, err
	}

	policy, err := policyFor(db, sub.SubscriptionType)
	if err != nil {
		return nil, fmt.Errorf("requestRescue: %w", err)
	}

	tokensRequired := tokensFor(req.ValueFCFA, policy.TokenValueFCFA)
	if tokensRequired > sub.TokenBalance {
		return nil, response.InsufficientTokens()
	}

	_, err = tx.Exec(
		`UPDATE secours_subscriptions SET token_balance = token_balance - ? WHERE subscription_id = ?;`,
		tokensRequired, sub.SubscriptionID,
	)
	if err != nil {
		return nil, fmt.Errorf("requestRescue: unable to debit balance: %w", err)
	}

	result, err := tx.Exec(
		`INSERT INTO rescue_requests (subscription_id, description, value_fcfa, tokens_debited, status) VALUES (?, ?, ?, ?, ?);`,
		sub.SubscriptionID, req.Description, req.ValueFCFA, tokensRequired, model.RescuePending,
	)
	if err != nil {
		return nil, fmt.Errorf("requestRescue: unable to insert rescue request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("requestRescue: unable to get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("requestRescue: unable to commit transaction: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RescueRequests.WithLabelValues(model.RescuePending).Inc()
	}

	if s.sender != nil && memberPhone != "" {
		msg := fmt.Sprintf("Your Ô Secours rescue request #%d has been received and is being reviewed.", id)
		if _, err := s.sender.Send(memberPhone, msg); err != nil {
			logger.Errorf(ctx, "requestRescue: unable to send sms notification: %+v", err)
		}
	}

	return &model.RescueRequest{
		RescueRequestID: id,
		SubscriptionID:  sub.SubscriptionID,
		Description:     req.Description,
		ValueFCFA:       req.ValueFCFA,
		TokensDebited:   tokensRequired,
		Status:          model.RescuePending,
	}, nil
}

// tokensFor converts a rescue value into whole tokens, rounding up so
// a partial token never covers a full franc of value.
func tokensFor(valueFCFA, tokenValueFCFA int64) int64 {
	return (valueFCFA + tokenValueFCFA - 1) / tokenValueFCFA
}

// isDuplicate reports a MySQL duplicate entry error, raised when two
// requests race to open the same subscription.
func isDuplicate(err error) bool {
	return err != nil && len(err.Error()) >= 10 && err.Error()[:10] == "Error 1062"
}

// ReviewRescue settles a pending rescue request. Rejection refunds the
// debited tokens in the same transaction.
func (s *Service) ReviewRescue(ctx context.Context, db *sql.DB, rescueRequestID int64, approve bool) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("reviewRescue: unable to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var subscriptionID, tokensDebited int64
	var status string
	err = tx.QueryRow(
		`SELECT subscription_id, tokens_debited, status FROM rescue_requests WHERE rescue_request_id = ? FOR UPDATE`,
		rescueRequestID,
	).Scan(&subscriptionID, &tokensDebited, &status)
	if err == sql.ErrNoRows {
		return response.ResourceNotFound("rescue request not found", fmt.Sprintf("reviewRescue: no request %d", rescueRequestID))
	}
	if err != nil {
		return fmt.Errorf("reviewRescue: unable to lock rescue request: %w", err)
	}

	if status != model.RescuePending {
		return response.InvalidData(fmt.Sprintf("reviewRescue: request %d is already %s", rescueRequestID, status))
	}

	newStatus := model.RescueApproved
	if !approve {
		newStatus = model.RescueRejected
		_, err = tx.Exec(
			`UPDATE secours_subscriptions SET token_balance = token_balance + ? WHERE subscription_id = ?;`,
			tokensDebited, subscriptionID,
		)
		if err != nil {
			return fmt.Errorf("reviewRescue: unable to refund tokens: %w", err)
		}
	}

	_, err = tx.Exec(
		`UPDATE rescue_requests SET status = ?, updated_date = NOW() WHERE rescue_request_id = ?;`,
		newStatus, rescueRequestID,
	)
	if err != nil {
		return fmt.Errorf("reviewRescue: unable to update status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("reviewRescue: unable to commit transaction: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RescueRequests.WithLabelValues(newStatus).Inc()
	}

	return nil
}

// Subscriptions lists the member's active subscriptions, newest first.
func (s *Service) Subscriptions(ctx context.Context, db *sql.DB, memberID int64) ([]model.SecoursSubscription, error) {
	return fetchSubscriptions(db, memberID)
}

// Transactions lists the member's token purchases, newest first.
func (s *Service) Transactions(ctx context.Context, db *sql.DB, memberID int64) ([]model.TokenTransaction, error) {
	return fetchTransactions(db, memberID)
}

// Rescues lists the member's rescue requests, newest first.
func (s *Service) Rescues(ctx context.Context, db *sql.DB, memberID int64) ([]model.RescueRequest, error) {
	return fetchRescues(db, memberID)
}

// TokenPolicy exposes the pricing and purchase bounds for a type.
func (s *Service) TokenPolicy(ctx context.Context, db *sql.DB, subscriptionType string) (*model.TokenPolicy, error) {
	if !ValidType(subscriptionType) {
		return nil, response.InvalidData(fmt.Sprintf("tokenPolicy: unknown subscription type: %s", subscriptionType))
	}

	policy, err := policyFor(db, subscriptionType)
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

// lockSubscription reads a subscription FOR UPDATE and checks ownership.
func lockSubscription(tx *sql.Tx, subscriptionID, memberID int64) (*model.SecoursSubscription, error) {
	var sub model.SecoursSubscription
	err := tx.QueryRow(
		`SELECT subscription_id, member_id, subscription_type, token_balance FROM secours_subscriptions WHERE subscription_id = ? AND is_active = 1 FOR UPDATE`,
		subscriptionID,
	).Scan(&sub.SubscriptionID, &sub.MemberID, &sub.SubscriptionType, &sub.TokenBalance)
	if err == sql.ErrNoRows {
		return nil, response.SubscriptionNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("lockSubscription: unable to lock subscription %d: %w", subscriptionID, err)
	}

	if sub.MemberID != memberID {
		return nil, response.Forbidden()
	}

	return &sub, nil
}
