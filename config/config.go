package config

import (
	"github.com/spf13/viper"
)

const (
	DBURL = "database.mysql"

	FirebaseProjectID             = "firebase.project_id"
	FirebaseServiceAccountKeyPath = "firebase.service_account_key_path"

	VaultAddress   = "vault.address"
	VaultToken     = "vault.token"
	VaultUnSealKey = "vault.unseal_key"
	GatewayPath    = "vault.gateway_path"
	CardPath       = "vault.card_path"

	Port               = "server.port"
	JWTOfflineInterval = "server.jwt_offline_interval"
	Secret             = "server.secret"

	RedisAddress  = "redis.address"
	RedisPassword = "redis.password"
	RedisDB       = "redis.db"

	TwilioAccountSID = "twilio.account_sid"
	TwilioAuthToken  = "twilio.auth_token"
	TwilioURL        = "twilio.url"
	TwilioFrom       = "twilio.from"

	PaymentCallbackBaseURL = "payment.callback_base_url"
	PaymentReturnURL       = "payment.return_url"
	PaymentSandbox         = "payment.sandbox"

	BankTransferBankName      = "payment.bank_transfer.bank_name"
	BankTransferAccountName   = "payment.bank_transfer.account_name"
	BankTransferAccountNumber = "payment.bank_transfer.account_number"

	RegistryCacheTTL = "gateway.registry_cache_ttl"
)

func init() {
	viper.AutomaticEnv()
	viper.SetDefault(Port, "9000")
	viper.SetDefault(JWTOfflineInterval, 120)
	viper.SetDefault(PaymentSandbox, false)
	viper.SetDefault(RegistryCacheTTL, 300)
	viper.SetDefault(BankTransferBankName, "Banque Malienne de Solidarité")
	viper.SetDefault(BankTransferAccountName, "ELVERRA GLOBAL")
}
