package secours

import (
	"database/sql"
	"elverra-club-backend/model"
	"fmt"
)

func fetchSubscriptions(db *sql.DB, memberID int64) ([]model.SecoursSubscription, error) {
	query := `SELECT subscription_id, member_id, subscription_type, token_balance, is_active, created_date FROM secours_subscriptions WHERE member_id = ? AND is_active = 1 ORDER BY created_date DESC`

	stmt, err := db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("fetchSubscriptions: error preparing query: %s", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(memberID)
	if err != nil {
		return nil, fmt.Errorf("fetchSubscriptions: error executing query: %s", err)
	}
	defer rows.Close()

	var subs []model.SecoursSubscription
	for rows.Next() {
		var s model.SecoursSubscription
		err := rows.Scan(
			&s.SubscriptionID,
			&s.MemberID,
			&s.SubscriptionType,
			&s.TokenBalance,
			&s.IsActive,
			&s.CreatedDate,
		)
		if err != nil {
			return nil, fmt.Errorf("fetchSubscriptions: error while scanning row: %s", err)
		}
		subs = append(subs, s)
	}

	return subs, nil
}

func fetchSubscription(db *sql.DB, subscriptionID int64) (*model.SecoursSubscription, bool, error) {
	query := `SELECT subscription_id, member_id, subscription_type, token_balance, is_active, created_date FROM secours_subscriptions WHERE subscription_id = ?`

	stmt, err := db.Prepare(query)
	if err != nil {
		return nil, false, fmt.Errorf("fetchSubscription: error preparing query: %s", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(subscriptionID)
	if err != nil {
		return nil, false, fmt.Errorf("fetchSubscription: error executing query: %s", err)
	}
	defer rows.Close()

	if rows.Next() {
		var s model.SecoursSubscription
		err := rows.Scan(
			&s.SubscriptionID,
			&s.MemberID,
			&s.SubscriptionType,
			&s.TokenBalance,
			&s.IsActive,
			&s.CreatedDate,
		)
		if err != nil {
			return nil, false, fmt.Errorf("fetchSubscription: error while scanning row: %s", err)
		}
		return &s, true, nil
	}

	return nil, false, nil
}

func fetchTransactions(db *sql.DB, memberID int64) ([]model.TokenTransaction, error) {
	query := `SELECT t.transaction_id, t.subscription_id, t.token_amount, t.amount_fcfa, t.payment_method, t.reference, t.created_date
		FROM token_transactions t
		JOIN secours_subscriptions s ON s.subscription_id = t.subscription_id
		WHERE s.member_id = ? ORDER BY t.created_date DESC`

	stmt, err := db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("fetchTransactions: error preparing query: %s", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(memberID)
	if err != nil {
		return nil, fmt.Errorf("fetchTransactions: error executing query: %s", err)
	}
	defer rows.Close()

	var txs []model.TokenTransaction
	for rows.Next() {
		var t model.TokenTransaction
		err := rows.Scan(
			&t.TransactionID,
			&t.SubscriptionID,
			&t.TokenAmount,
			&t.AmountFCFA,
			&t.PaymentMethod,
			&t.Reference,
			&t.CreatedDate,
		)
		if err != nil {
			return nil, fmt.Errorf("fetchTransactions: error while scanning row: %s", err)
		}
		txs = append(txs, t)
	}

	return txs, nil
}

func fetchRescues(db *sql.DB, memberID int64) ([]model.RescueRequest, error) {
	query := `SELECT r.rescue_request_id, r.subscription_id, r.description, r.value_fcfa, r.tokens_debited, r.status, r.created_date, r.updated_date
		FROM rescue_requests r
		JOIN secours_subscriptions s ON s.subscription_id = r.subscription_id
		WHERE s.member_id = ? ORDER BY r.created_date DESC`

	stmt, err := db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("fetchRescues: error preparing query: %s", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(memberID)
	if err != nil {
		return nil, fmt.Errorf("fetchRescues: error executing query: %s", err)
	}
	defer rows.Close()

	var reqs []model.RescueRequest
	for rows.Next() {
		var r model.RescueRequest
		err := rows.Scan(
			&r.RescueRequestID,
			&r.SubscriptionID,
			&r.Description,
			&r.ValueFCFA,
			&r.TokensDebited,
			&r.Status,
			&r.CreatedDate,
			&r.UpdatedDate,
		)
		if err != nil {
			return nil, fmt.Errorf("fetchRescues: error while scanning row: %s", err)
		}
		reqs = append(reqs, r)
	}

	return reqs, nil
}
