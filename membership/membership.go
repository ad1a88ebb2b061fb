package membership

import (
	"context"
	"crypto/rand"
	"database/sql"
	"elverra-club-backend/logger"
	"elverra-club-backend/metrics"
	"elverra-club-backend/model"
	"elverra-club-backend/response"
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

const (
	defaultRole  = "member"
	roleCacheTTL = 5 * time.Minute
)

type Service struct {
	cache   *redis.Client
	metrics *metrics.Metrics
}

func NewService(cache *redis.Client, m *metrics.Metrics) *Service {
	return &Service{cache: cache, metrics: m}
}

// Register creates the member, profile fields, active membership, the
// registration payment row and, when a referral code resolves to an
// active agent, the referral accrual. All writes share one transaction:
// either the registration fully exists or none of it does.
func (s *Service) Register(ctx context.Context, db *sql.DB, req *model.RegisterRequest, firebaseID string) (*model.Member, *model.Membership, error) {
	tier, ok := TierByID(req.Tier)
	if !ok {
		return nil, nil, response.InvalidData(fmt.Sprintf("register: unknown tier: %s", req.Tier))
	}

	_, found, err := Exists(db, []interface{}{"email_address"}, []interface{}{req.Email})
	if err != nil {
		return nil, nil, fmt.Errorf("register: unable to check email: %w", err)
	}
	if found {
		return nil, nil, response.MemberExists()
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, nil, fmt.Errorf("register: unable to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO members (firebase_id, email_address, full_name, phone_country_code, phone_number, is_active) VALUES (?, ?, ?, ?, ?, 1);`,
		firebaseID, req.Email, req.FullName, req.PhoneCountryCode, req.PhoneNumber,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("register: unable to insert member: %w", err)
	}

	memberID, err := result.LastInsertId()
	if err != nil {
		return nil, nil, fmt.Errorf("register: unable to get last insert id: %w", err)
	}

	memberCode, err := newMemberCode()
	if err != nil {
		return nil, nil, fmt.Errorf("register: unable to generate member code: %w", err)
	}

	expiry := time.Now().UTC().AddDate(1, 0, 0)
	_, err = tx.Exec(
		`INSERT INTO memberships (member_id, member_code, tier, is_active, physical_card_requested, expiry_date) VALUES (?, ?, ?, 1, ?, ?);`,
		memberID, memberCode, req.Tier, req.PhysicalCardRequested, expiry,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("register: unable to insert membership: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO payments (member_id, payment_type, payment_method, amount, currency, status, transaction_reference) VALUES (?, 'registration', 'pending_selection', ?, 'XOF', ?, ?);`,
		memberID, tier.RegistrationFee, model.PaymentPending, fmt.Sprintf("REG_%s", memberCode),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("register: unable to record registration payment: %w", err)
	}

	attributed := false
	if req.ReferralCode != "" {
		attributed, err = attributeReferral(tx, req.ReferralCode, memberID, ReferralCommission(tier))
		if err != nil {
			return nil, nil, fmt.Errorf("register: unable to attribute referral: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("register: unable to commit transaction: %w", err)
	}

	if attributed && s.metrics != nil {
		s.metrics.ReferralAccruals.Inc()
	}

	member, err := fetchMember(db, memberID)
	if err != nil {
		return nil, nil, fmt.Errorf("register: error fetching member: id: %d: err: %w", memberID, err)
	}

	ms, err := fetchMembership(db, memberID)
	if err != nil {
		return nil, nil, fmt.Errorf("register: error fetching membership: id: %d: err: %w", memberID, err)
	}

	return member, ms, nil
}

// attributeReferral resolves the agent by code inside the registration
// transaction and accrues the commission. An unknown or inactive code is
// not an error; registration proceeds without attribution.
func attributeReferral(tx *sql.Tx, code string, referredMemberID int64, commission float64) (bool, error) {
	var agentID int64
	err := tx.QueryRow(`SELECT agent_id FROM agents WHERE referral_code = ? AND is_active = 1 FOR UPDATE`, code).Scan(&agentID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("attributeReferral: unable to resolve code %s: %w", code, err)
	}

	_, err = tx.Exec(
		`INSERT INTO referrals (agent_id, referred_member_id, commission_amount, commission_paid) VALUES (?, ?, ?, 0);`,
		agentID, referredMemberID, commission,
	)
	if err != nil {
		return false, fmt.Errorf("attributeReferral: unable to insert referral: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE agents SET commissions_total = commissions_total + ?, commissions_pending = commissions_pending + ? WHERE agent_id = ?;`,
		commission, commission, agentID,
	)
	if err != nil {
		return false, fmt.Errorf("attributeReferral: unable to accrue commission: %w", err)
	}

	return true, nil
}

// EnsureProfile creates the member row for a verified firebase identity
// when it does not exist yet, tolerating the concurrent-create race.
func (s *Service) EnsureProfile(ctx context.Context, db *sql.DB, firebaseID, email, fullName string) (*model.Member, error) {
	m, found, err := Exists(db, []interface{}{"firebase_id"}, []interface{}{firebaseID})
	if err != nil {
		return nil, fmt.Errorf("ensureProfile: unable to check firebase id: %w", err)
	}
	if found {
		return m, nil
	}

	_, err = db.Exec(
		`INSERT INTO members (firebase_id, email_address, full_name, is_active) VALUES (?, ?, ?, 1);`,
		firebaseID, email, fullName,
	)
	if err != nil {
		// Another connect call may have inserted in between; re-read
		// before giving up.
		m, found, ferr := Exists(db, []interface{}{"firebase_id"}, []interface{}{firebaseID})
		if ferr == nil && found {
			return m, nil
		}
		return nil, fmt.Errorf("ensureProfile: unable to insert member: %w", err)
	}

	m, found, err = Exists(db, []interface{}{"firebase_id"}, []interface{}{firebaseID})
	if err != nil || !found {
		return nil, fmt.Errorf("ensureProfile: unable to fetch created member: %w", err)
	}

	return m, nil
}

// ResolveMember maps a firebase uid to a member id and role; the auth
// middleware calls this on every request.
func (s *Service) ResolveMember(ctx context.Context, db *sql.DB, firebaseID string) (int64, string, error) {
	m, found, err := Exists(db, []interface{}{"firebase_id"}, []interface{}{firebaseID})
	if err != nil {
		return 0, "", fmt.Errorf("resolveMember: unable to check firebase id: %w", err)
	}
	if !found {
		return 0, "", NoRecordFound
	}

	role := s.RoleFor(ctx, db, m.MemberID)
	return m.MemberID, role, nil
}

// RoleFor returns the member's role, defaulting to "member". Lookups are
// cached for a few minutes.
func (s *Service) RoleFor(ctx context.Context, db *sql.DB, memberID int64) string {
	key := fmt.Sprintf("member-role-%d", memberID)
	if s.cache != nil {
		if val, err := s.cache.Get(key).Result(); err == nil && val != "" {
			return val
		}
	}

	role := defaultRole
	err := db.QueryRow(`SELECT role FROM member_roles WHERE member_id = ?`, memberID).Scan(&role)
	if err != nil && err != sql.ErrNoRows {
		logger.Errorf(ctx, "roleFor: unable to read role for %d: %+v", memberID, err)
	}

	if s.cache != nil {
		s.cache.Set(key, role, roleCacheTTL)
	}

	return role
}

// Get returns the member profile and the active membership, if any.
func (s *Service) Get(ctx context.Context, db *sql.DB, memberID int64) (*model.Member, *model.Membership, error) {
	member, err := fetchMember(db, memberID)
	if err != nil {
		if err == NoRecordFound {
			return nil, nil, response.MemberNotExist()
		}
		return nil, nil, fmt.Errorf("get: error fetching member: %w", err)
	}
	member.Role = s.RoleFor(ctx, db, memberID)

	ms, err := fetchMembership(db, memberID)
	if err != nil && err != NoRecordFound {
		return nil, nil, fmt.Errorf("get: error fetching membership: %w", err)
	}

	return member, ms, nil
}

// Update mutates the profile fields of a member.
func (s *Service) Update(ctx context.Context, db *sql.DB, member *model.Member) (*model.Member, error) {
	if member.MemberID <= 0 {
		return nil, response.InvalidData(fmt.Sprintf("update: invalid member_id provided: %d", member.MemberID))
	}

	cols, vals := profileColsVals(member)
	err := updateMember(db, member.MemberID, cols, vals)
	if err != nil {
		if err == NoRecordFound {
			return nil, response.MemberNotExist()
		}
		return nil, fmt.Errorf("update: error updating member details: %w", err)
	}

	updated, err := fetchMember(db, member.MemberID)
	if err != nil {
		return nil, fmt.Errorf("update: error fetching member: %w", err)
	}
	return updated, nil
}

// Renew extends the active membership by a year once the presented
// payment reference has completed, and marks the payment applied so the
// same reference cannot renew twice. The row lock keeps a member from
// holding two active memberships.
func (s *Service) Renew(ctx context.Context, db *sql.DB, memberID int64, paymentReference string) (*model.Membership, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("renew: unable to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRow(
		`SELECT status FROM payments WHERE transaction_reference = ? AND member_id = ? FOR UPDATE`,
		paymentReference, memberID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return nil, response.PaymentNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("renew: unable to check payment: %w", err)
	}
	if err := renewable(paymentReference, status); err != nil {
		return nil, err
	}

	res, err := tx.Exec(
		`UPDATE payments SET status = ?, updated_date = NOW() WHERE transaction_reference = ? AND member_id = ? AND status = ?`,
		model.PaymentApplied, paymentReference, memberID, model.PaymentCompleted,
	)
	if err != nil {
		return nil, fmt.Errorf("renew: unable to consume payment: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil || n != 1 {
		return nil, response.InvalidData(fmt.Sprintf("renew: payment %s has already been applied", paymentReference))
	}

	var membershipID int64
	var expiry time.Time
	err = tx.QueryRow(
		`SELECT membership_id, expiry_date FROM memberships WHERE member_id = ? AND is_active = 1 FOR UPDATE`,
		memberID,
	).Scan(&membershipID, &expiry)
	if err == sql.ErrNoRows {
		return nil, response.MemberNotExist()
	}
	if err != nil {
		return nil, fmt.Errorf("renew: unable to lock membership: %w", err)
	}

	base := time.Now().UTC()
	if expiry.After(base) {
		base = expiry
	}
	newExpiry := base.AddDate(1, 0, 0)

	_, err = tx.Exec(`UPDATE memberships SET expiry_date = ? WHERE membership_id = ?;`, newExpiry, membershipID)
	if err != nil {
		return nil, fmt.Errorf("renew: unable to extend expiry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("renew: unable to commit transaction: %w", err)
	}

	return fetchMembership(db, memberID)
}

// renewable reports whether a payment in the given status may fund a
// renewal. Each completed payment funds exactly one.
func renewable(reference, status string) error {
	switch status {
	case model.PaymentCompleted:
		return nil
	case model.PaymentApplied:
		return response.InvalidData(fmt.Sprintf("renew: payment %s has already been applied", reference))
	default:
		return response.InvalidData(fmt.Sprintf("renew: payment %s is %s, not completed", reference, status))
	}
}

func profileColsVals(m *model.Member) ([]string, []interface{}) {
	var cols []string
	var vals []interface{}

	if m.FullName != nil {
		cols = append(cols, "full_name")
		vals = append(vals, *m.FullName)
	}
	if m.PhoneCountryCode != nil {
		cols = append(cols, "phone_country_code")
		vals = append(vals, *m.PhoneCountryCode)
	}
	if m.PhoneNumber != nil {
		cols = append(cols, "phone_number")
		vals = append(vals, *m.PhoneNumber)
	}
	if m.Address != nil {
		cols = append(cols, "address")
		vals = append(vals, *m.Address)
	}
	if m.City != nil {
		cols = append(cols, "city")
		vals = append(vals, *m.City)
	}
	if m.Country != nil {
		cols = append(cols, "country")
		vals = append(vals, *m.Country)
	}
	if m.ProfilePic != nil {
		cols = append(cols, "profile_pic")
		vals = append(vals, *m.ProfilePic)
	}

	return cols, vals
}

func newMemberCode() (string, error) {
	const digits = "0123456789"
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = digits[int(b[i])%len(digits)]
	}
	return fmt.Sprintf("ELV-%s", string(b)), nil
}
