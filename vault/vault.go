package vault

import (
	"fmt"

	"github.com/hashicorp/vault/api"
)

type Vault struct {
	GatewayPath string
	CardPath    string
	*api.Client
}

// Credentials is the secret material for one payment gateway. Provider
// keys never live in source or in the payment_gateways table.
type Credentials struct {
	MerchantCode   string
	MerchantLogin  string
	AccountNumber  string
	ClientID       string
	ClientSecret   string
	UserID         string
	PublicKey      string
	TransactionKey string
	APIKey         string
	WebhookSecret  string
}

func New(token, unsealKey, address, gatewayPath, cardPath string) (*Vault, error) {
	config := &api.Config{
		Address: address,
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("new: error initializing vault: %w", err)
	}

	client.SetToken(token)

	s := client.Sys()
	status, err := s.SealStatus()
	if err != nil {
		return nil, fmt.Errorf("new: error getting seal status: %w", err)
	}

	if status.Sealed {
		unsealResponse, err := s.Unseal(unsealKey)
		if err != nil {
			return nil, fmt.Errorf("new: error getting unseal response: %w", err)
		}
		if unsealResponse.Sealed {
			return nil, fmt.Errorf("new: vault unseal unsuccesfull")
		}
	}

	err = createIfNotExists(client, gatewayPath)
	if err != nil {
		return nil, fmt.Errorf("new: unable to mount gateway path: %w", err)
	}

	err = createIfNotExists(client, cardPath)
	if err != nil {
		return nil, fmt.Errorf("new: unable to mount card path: %w", err)
	}

	return &Vault{GatewayPath: gatewayPath, CardPath: cardPath, Client: client}, nil
}

// GatewayCredentials reads the secret material for a gateway id.
func (v *Vault) GatewayCredentials(gatewayID string) (*Credentials, error) {
	path := fmt.Sprintf("%s/%s", v.GatewayPath, gatewayID)
	secret, err := v.Logical().Read(path)
	if err != nil {
		return nil, fmt.Errorf("gatewayCredentials: could not read credentials for %s: %w", gatewayID, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("gatewayCredentials: no credentials stored for %s", gatewayID)
	}

	return &Credentials{
		MerchantCode:   str(secret.Data, "merchant_code"),
		MerchantLogin:  str(secret.Data, "merchant_login"),
		AccountNumber:  str(secret.Data, "account_number"),
		ClientID:       str(secret.Data, "client_id"),
		ClientSecret:   str(secret.Data, "client_secret"),
		UserID:         str(secret.Data, "user_id"),
		PublicKey:      str(secret.Data, "public_key"),
		TransactionKey: str(secret.Data, "transaction_key"),
		APIKey:         str(secret.Data, "api_key"),
		WebhookSecret:  str(secret.Data, "webhook_secret"),
	}, nil
}

// SaveGatewayCredentials stores the secret material for a gateway id.
func (v *Vault) SaveGatewayCredentials(gatewayID string, c *Credentials) error {
	path := fmt.Sprintf("%s/%s", v.GatewayPath, gatewayID)
	data := map[string]interface{}{
		"merchant_code":   c.MerchantCode,
		"merchant_login":  c.MerchantLogin,
		"account_number":  c.AccountNumber,
		"client_id":       c.ClientID,
		"client_secret":   c.ClientSecret,
		"user_id":         c.UserID,
		"public_key":      c.PublicKey,
		"transaction_key": c.TransactionKey,
		"api_key":         c.APIKey,
		"webhook_secret":  c.WebhookSecret,
	}
	_, err := v.Logical().Write(path, data)
	if err != nil {
		return fmt.Errorf("saveGatewayCredentials: unable to write to vault: %w", err)
	}

	return nil
}

// CardKey returns the AES key used to seal member card tokens.
func (v *Vault) CardKey() ([]byte, error) {
	path := fmt.Sprintf("%s/key", v.CardPath)
	secret, err := v.Logical().Read(path)
	if err != nil {
		return nil, fmt.Errorf("cardKey: could not read card key: %w", err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("cardKey: no card key stored")
	}

	key := str(secret.Data, "key")
	if len(key) != 32 {
		return nil, fmt.Errorf("cardKey: expected 32 byte key, got %d", len(key))
	}

	return []byte(key), nil
}

func createIfNotExists(client *api.Client, path string) error {
	mounts, err := client.Sys().ListMounts()
	if err != nil {
		return fmt.Errorf("createIfNotExists: unable to list mounts: %w", err)
	}

	if _, ok := mounts[path+"/"]; !ok {
		err = client.Sys().Mount(path, &api.MountInput{Type: "kv"})
		if err != nil {
			return fmt.Errorf("createIfNotExists: unable to create path: %w", err)
		}
	}

	return nil
}

func str(data map[string]interface{}, key string) string {
	if v, ok := data[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
