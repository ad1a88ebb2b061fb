package agent

import (
	"context"
	"crypto/rand"
	"database/sql"
	"elverra-club-backend/model"
	"elverra-club-backend/response"
	"fmt"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Register enrolls a member as an agent. The referral code is generated
// here, server side; the client never supplies one.
func (s *Service) Register(ctx context.Context, db *sql.DB, memberID int64, agentType string) (*model.Agent, error) {
	_, found, err := agentByColumn(db, "member_id", memberID)
	if err != nil {
		return nil, fmt.Errorf("register: unable to check existing agent: %w", err)
	}
	if found {
		return nil, response.AgentExists()
	}

	if agentType == "" {
		agentType = "individual"
	}

	// The code is unique in the DB; retry a few times on collision.
	for attempt := 0; attempt < 5; attempt++ {
		code, err := newReferralCode()
		if err != nil {
			return nil, fmt.Errorf("register: unable to generate referral code: %w", err)
		}

		result, err := db.Exec(
			`INSERT INTO agents (member_id, referral_code, agent_type, commissions_total, commissions_pending, commissions_withdrawn, is_active) VALUES (?, ?, ?, 0, 0, 0, 1);`,
			memberID, code, agentType,
		)
		if err != nil {
			if isDuplicate(err) {
				continue
			}
			return nil, fmt.Errorf("register: unable to insert agent: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("register: unable to get last insert id: %w", err)
		}

		a, _, err := agentByColumn(db, "agent_id", id)
		if err != nil {
			return nil, fmt.Errorf("register: error fetching agent: id: %d: err: %w", id, err)
		}
		return a, nil
	}

	return nil, fmt.Errorf("register: could not generate a unique referral code")
}

// Get returns the agent record for a member.
func (s *Service) Get(ctx context.Context, db *sql.DB, memberID int64) (*model.Agent, error) {
	a, found, err := agentByColumn(db, "member_id", memberID)
	if err != nil {
		return nil, fmt.Errorf("get: unable to fetch agent: %w", err)
	}
	if !found {
		return nil, response.AgentNotExist()
	}
	return a, nil
}

// Referrals lists the agent's attributed sign-ups, newest first.
func (s *Service) Referrals(ctx context.Context, db *sql.DB, agentID int64) ([]model.Referral, error) {
	query := `SELECT referral_id, agent_id, referred_member_id, commission_amount, commission_paid, created_date FROM referrals WHERE agent_id = ? ORDER BY created_date DESC`

	stmt, err := db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("referrals: error preparing query: %s", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(agentID)
	if err != nil {
		return nil, fmt.Errorf("referrals: error executing query: %s", err)
	}
	defer rows.Close()

	var refs []model.Referral
	for rows.Next() {
		var r model.Referral
		err := rows.Scan(
			&r.ReferralID,
			&r.AgentID,
			&r.ReferredMemberID,
			&r.CommissionAmount,
			&r.CommissionPaid,
			&r.CreatedDate,
		)
		if err != nil {
			return nil, fmt.Errorf("referrals: error while scanning row: %s", err)
		}
		refs = append(refs, r)
	}

	return refs, nil
}

func agentByColumn(db *sql.DB, column string, value interface{}) (*model.Agent, bool, error) {
	query := fmt.Sprintf(
		`SELECT agent_id, member_id, referral_code, agent_type, commissions_total, commissions_pending, commissions_withdrawn, is_active, created_date FROM agents WHERE %s = ?`,
		column,
	)

	stmt, err := db.Prepare(query)
	if err != nil {
		return nil, false, fmt.Errorf("agentByColumn: error preparing query for %s: %s", column, err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(value)
	if err != nil {
		return nil, false, fmt.Errorf("agentByColumn: error executing query for %s: %s", column, err)
	}
	defer rows.Close()

	if rows.Next() {
		var a model.Agent
		err := rows.Scan(
			&a.AgentID,
			&a.MemberID,
			&a.ReferralCode,
			&a.AgentType,
			&a.CommissionsTotal,
			&a.CommissionsPending,
			&a.CommissionsWithdrawn,
			&a.IsActive,
			&a.CreatedDate,
		)
		if err != nil {
			return nil, false, fmt.Errorf("agentByColumn: error while scanning row: %s", err)
		}
		return &a, true, nil
	}

	return nil, false, nil
}

// newReferralCode builds a 6 character code over an unambiguous
// alphabet (no 0/O, 1/I).
func newReferralCode() (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b), nil
}

func isDuplicate(err error) bool {
	return err != nil && len(err.Error()) >= 10 && err.Error()[:10] == "Error 1062"
}
