package payment

import (
	"database/sql"
	"elverra-club-backend/model"
	"fmt"
)

func insertPayment(db *sql.DB, p *model.Payment) (int64, error) {
	query := `INSERT INTO payments (member_id, payment_type, payment_method, amount, currency, status, transaction_reference, gateway_response) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	stmt, err := db.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("insertPayment: unable to prepare query: %s", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(p.MemberID, p.PaymentType, p.PaymentMethod, p.Amount, p.Currency, p.Status, p.TransactionReference, p.GatewayResponse)
	if err != nil {
		return 0, fmt.Errorf("insertPayment: unable to execute query: %s", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insertPayment: unable to get last insert id: %s", err)
	}

	return id, nil
}

func fetchPaymentByReference(db *sql.DB, reference string) (*model.Payment, bool, error) {
	query := `SELECT payment_id, member_id, payment_type, payment_method, amount, currency, status, transaction_reference, gateway_response, created_date FROM payments WHERE transaction_reference = ?`

	stmt, err := db.Prepare(query)
	if err != nil {
		return nil, false, fmt.Errorf("fetchPaymentByReference: error preparing query: %s", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(reference)
	if err != nil {
		return nil, false, fmt.Errorf("fetchPaymentByReference: error executing query: %s", err)
	}
	defer rows.Close()

	if rows.Next() {
		var p model.Payment
		var gatewayResponse sql.NullString
		err := rows.Scan(
			&p.PaymentID,
			&p.MemberID,
			&p.PaymentType,
			&p.PaymentMethod,
			&p.Amount,
			&p.Currency,
			&p.Status,
			&p.TransactionReference,
			&gatewayResponse,
			&p.CreatedDate,
		)
		if err != nil {
			return nil, false, fmt.Errorf("fetchPaymentByReference: error while scanning row: %s", err)
		}
		p.GatewayResponse = gatewayResponse.String
		return &p, true, nil
	}

	return nil, false, nil
}

// updatePaymentStatus transitions a pending payment. Completed and failed
// rows are terminal; the WHERE clause keeps replayed webhooks idempotent.
func updatePaymentStatus(db *sql.DB, reference, status, gatewayResponse string) (bool, error) {
	query := `UPDATE payments SET status = ?, gateway_response = ?, updated_date = NOW() WHERE transaction_reference = ? AND status = ?;`

	stmt, err := db.Prepare(query)
	if err != nil {
		return false, fmt.Errorf("updatePaymentStatus: unable to prepare query: %s", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(status, gatewayResponse, reference, model.PaymentPending)
	if err != nil {
		return false, fmt.Errorf("updatePaymentStatus: unable to execute query: %s", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updatePaymentStatus: unable to get rows affected: %s", err)
	}

	return rowsAffected == 1, nil
}
