package membership

import (
	"database/sql"
	"elverra-club-backend/model"
	"errors"
	"fmt"
	"strings"
)

var NoRecordFound = errors.New("no record found")

var memberColumns = "member_id, firebase_id, email_address, full_name, phone_country_code, phone_number, address, city, country, profile_pic, is_active, created_date, updated_date"

// Exists reports whether a member matching the column/value pairs exists.
func Exists(db *sql.DB, columns, values []interface{}) (*model.Member, bool, error) {
	var withPlaceholder []string
	for _, col := range columns {
		withPlaceholder = append(withPlaceholder, fmt.Sprintf("%s = ?", col))
	}

	query := fmt.Sprintf(
		`SELECT %s FROM members WHERE %s`,
		memberColumns,
		strings.Join(withPlaceholder, " and "),
	)

	stmt, err := db.Prepare(query)
	if err != nil {
		return nil, false, fmt.Errorf("exists: error preparing query for %#v: %s", columns, err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(values...)
	if err != nil {
		return nil, false, fmt.Errorf("exists: error executing query for %#v: %s", columns, err)
	}
	defer rows.Close()

	if rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, false, fmt.Errorf("exists: %s", err)
		}
		return m, true, nil
	}

	return nil, false, nil
}

func fetchMember(db *sql.DB, memberID int64) (*model.Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM members WHERE member_id = ?`, memberColumns)

	stmt, err := db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("fetchMember: error preparing query: %s", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(memberID)
	if err != nil {
		return nil, fmt.Errorf("fetchMember: error executing query: %s", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, NoRecordFound
	}

	m, err := scanMember(rows)
	if err != nil {
		return nil, fmt.Errorf("fetchMember: %s", err)
	}
	return m, nil
}

func scanMember(rows *sql.Rows) (*model.Member, error) {
	var m model.Member
	err := rows.Scan(
		&m.MemberID,
		&m.FirebaseID,
		&m.EmailAddress,
		&m.FullName,
		&m.PhoneCountryCode,
		&m.PhoneNumber,
		&m.Address,
		&m.City,
		&m.Country,
		&m.ProfilePic,
		&m.IsActive,
		&m.CreatedDate,
		&m.UpdatedDate,
	)
	if err != nil {
		return nil, fmt.Errorf("scanMember: error while scanning row: %s", err)
	}
	return &m, nil
}

func updateMember(db *sql.DB, memberID int64, cols []string, vals []interface{}) error {
	if len(cols) == 0 {
		return nil
	}

	var withPlaceholder []string
	for _, col := range cols {
		withPlaceholder = append(withPlaceholder, fmt.Sprintf("%s = ?", col))
	}

	query := fmt.Sprintf(`UPDATE members SET %s, updated_date = NOW() WHERE member_id = ?;`, strings.Join(withPlaceholder, ", "))

	stmt, err := db.Prepare(query)
	if err != nil {
		return fmt.Errorf("updateMember: unable to prepare query: %s", err)
	}
	defer stmt.Close()

	vals = append(vals, memberID)
	result, err := stmt.Exec(vals...)
	if err != nil {
		return fmt.Errorf("updateMember: unable to execute query: %s", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updateMember: unable to get rows affected: %s", err)
	}
	if rowsAffected == 0 {
		return NoRecordFound
	}

	return nil
}

func fetchMembership(db *sql.DB, memberID int64) (*model.Membership, error) {
	query := `SELECT membership_id, member_id, member_code, tier, is_active, physical_card_requested, expiry_date, created_date FROM memberships WHERE member_id = ? AND is_active = 1`

	stmt, err := db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("fetchMembership: error preparing query: %s", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(memberID)
	if err != nil {
		return nil, fmt.Errorf("fetchMembership: error executing query: %s", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, NoRecordFound
	}

	var ms model.Membership
	err = rows.Scan(
		&ms.MembershipID,
		&ms.MemberID,
		&ms.MemberCode,
		&ms.Tier,
		&ms.IsActive,
		&ms.PhysicalCardRequested,
		&ms.ExpiryDate,
		&ms.CreatedDate,
	)
	if err != nil {
		return nil, fmt.Errorf("fetchMembership: error while scanning row: %s", err)
	}

	if t, ok := TierByID(ms.Tier); ok {
		ms.DiscountPct = t.DiscountPct
	}

	return &ms, nil
}
