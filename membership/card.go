package membership

import (
	"context"
	"database/sql"
	"elverra-club-backend/codec"
	"elverra-club-backend/response"
	"encoding/json"
	"fmt"
	"time"
)

// CardPayload is what gets sealed into the client-card QR token.
type CardPayload struct {
	MemberCode string    `json:"member_code"`
	Tier       string    `json:"tier"`
	ExpiryDate time.Time `json:"expiry_date"`
	IssuedAt   time.Time `json:"issued_at"`
}

// CardToken seals the member's card payload with the card key. The
// client renders the token as a QR code; merchants validate it against
// ValidateCard.
func (s *Service) CardToken(ctx context.Context, db *sql.DB, memberID int64, key []byte) (string, error) {
	ms, err := fetchMembership(db, memberID)
	if err != nil {
		if err == NoRecordFound {
			return "", response.MemberNotExist()
		}
		return "", fmt.Errorf("cardToken: error fetching membership: %w", err)
	}

	payload := CardPayload{
		MemberCode: ms.MemberCode,
		Tier:       ms.Tier,
		IssuedAt:   time.Now().UTC(),
	}
	if ms.ExpiryDate != nil {
		payload.ExpiryDate = *ms.ExpiryDate
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("cardToken: unable to marshal payload: %w", err)
	}

	token, err := codec.Encrypt(key, b)
	if err != nil {
		return "", fmt.Errorf("cardToken: unable to seal payload: %w", err)
	}

	return token, nil
}

// ValidateCard decrypts a card token and reports whether the membership
// it names is still current.
func ValidateCard(token string, key []byte) (*CardPayload, bool, error) {
	data, err := codec.Decrypt(key, token)
	if err != nil {
		return nil, false, response.InvalidCardToken()
	}

	var payload CardPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, false, response.InvalidCardToken()
	}

	valid := payload.ExpiryDate.After(time.Now().UTC())
	return &payload, valid, nil
}
