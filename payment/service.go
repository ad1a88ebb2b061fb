package payment

import (
	"context"
	"database/sql"
	"elverra-club-backend/config"
	"elverra-club-backend/gateway"
	"elverra-club-backend/logger"
	"elverra-club-backend/metrics"
	"elverra-club-backend/model"
	"elverra-club-backend/response"
	"elverra-club-backend/vault"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type Service struct {
	registry *gateway.Registry
	vault    *vault.Vault
	metrics  *metrics.Metrics
	sandbox  bool

	// processors builds the adapter for a gateway; replaced in tests.
	processors func(gw model.PaymentGateway) (Processor, error)
}

func NewService(registry *gateway.Registry, v *vault.Vault, m *metrics.Metrics, sandbox bool) *Service {
	s := &Service{
		registry: registry,
		vault:    v,
		metrics:  m,
		sandbox:  sandbox,
	}
	s.processors = s.defaultProcessor
	return s
}

// Process dispatches a payment request to the gateway adapter and records
// the attempt. Errors never escape as Go errors; the caller always gets a
// normalized PaymentResponse.
func (s *Service) Process(ctx context.Context, db *sql.DB, gatewayID string, req *model.PaymentRequest) *model.PaymentResponse {
	gw, ok := s.registry.ByID(ctx, db, gatewayID)
	if !ok || !gw.IsActive {
		return &model.PaymentResponse{
			Success: false,
			Error:   fmt.Sprintf("Unsupported payment gateway: %s", gatewayID),
		}
	}

	if req.TransactionReference == "" {
		req.TransactionReference = newReference(gw.ID)
	}

	existing, found, err := fetchPaymentByReference(db, req.TransactionReference)
	if err != nil {
		logger.Errorf(ctx, "process: unable to check reference %s: %+v", req.TransactionReference, err)
		return &model.PaymentResponse{Success: false, Error: "Payment processing failed"}
	}
	if found {
		// Duplicate submission: report the earlier attempt, do not
		// initiate a second charge.
		return responseFromRecord(existing)
	}

	proc, err := s.processors(*gw)
	if err != nil {
		logger.Errorf(ctx, "process: unable to build processor for %s: %+v", gw.ID, err)
		return &model.PaymentResponse{Success: false, Error: "Payment processing failed"}
	}

	record := &model.Payment{
		MemberID:             req.MemberID,
		PaymentType:          req.PaymentType,
		PaymentMethod:        gw.ID,
		Amount:               req.Amount,
		Currency:             req.Currency,
		Status:               model.PaymentPending,
		TransactionReference: req.TransactionReference,
	}
	if _, err := insertPayment(db, record); err != nil {
		logger.Errorf(ctx, "process: unable to record payment: %+v", err)
		return &model.PaymentResponse{Success: false, Error: "Payment processing failed"}
	}

	start := time.Now()
	res, err := proc.Initiate(ctx, req)
	if s.metrics != nil {
		s.metrics.PaymentLatency.WithLabelValues(gw.ID).Observe(time.Since(start).Seconds())
	}

	if err != nil {
		logger.Errorf(ctx, "process: %s initiation failed for %s: %+v", gw.ID, req.TransactionReference, err)
		if _, uerr := updatePaymentStatus(db, req.TransactionReference, model.PaymentFailed, err.Error()); uerr != nil {
			logger.Errorf(ctx, "process: unable to mark %s failed: %+v", req.TransactionReference, uerr)
		}
		s.count(gw.ID, "failure")
		return &model.PaymentResponse{
			Success: false,
			Error:   fmt.Sprintf("%s payment failed. Please try again.", gw.Name),
		}
	}

	if b, merr := json.Marshal(res.GatewayResponse); merr == nil {
		if _, uerr := updatePaymentStatus(db, req.TransactionReference, model.PaymentPending, string(b)); uerr != nil {
			logger.Errorf(ctx, "process: unable to attach gateway response to %s: %+v", req.TransactionReference, uerr)
		}
	}

	s.count(gw.ID, "success")
	return res
}

// HandleWebhook verifies a gateway callback and moves the referenced
// payment out of pending. Unverifiable signatures change nothing.
func (s *Service) HandleWebhook(ctx context.Context, db *sql.DB, gatewayID string, payload []byte, signature string) error {
	gw, ok := s.registry.ByID(ctx, db, gatewayID)
	if !ok {
		return response.GatewayUnsupported(gatewayID)
	}

	proc, err := s.processors(*gw)
	if err != nil {
		return fmt.Errorf("handleWebhook: unable to build processor for %s: %w", gw.ID, err)
	}

	if !proc.VerifyWebhook(payload, signature) {
		return response.InvalidWebhookSignature()
	}

	var event struct {
		TransactionReference string `json:"transaction_reference"`
		Status               string `json:"status"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return response.BadRequest("invalid webhook payload", fmt.Sprintf("handleWebhook: %+v", err))
	}

	status := model.PaymentFailed
	if event.Status == "completed" || event.Status == "success" || event.Status == "SUCCESS" {
		status = model.PaymentCompleted
	}

	updated, err := updatePaymentStatus(db, event.TransactionReference, status, string(payload))
	if err != nil {
		return fmt.Errorf("handleWebhook: unable to update payment %s: %w", event.TransactionReference, err)
	}
	if !updated {
		logger.Infof(ctx, "handleWebhook: payment %s already settled or unknown, ignoring", event.TransactionReference)
	}

	return nil
}

// Status returns the recorded payment for a transaction reference.
func (s *Service) Status(ctx context.Context, db *sql.DB, reference string) (*model.Payment, error) {
	p, found, err := fetchPaymentByReference(db, reference)
	if err != nil {
		return nil, fmt.Errorf("status: unable to fetch payment %s: %w", reference, err)
	}
	if !found {
		return nil, response.PaymentNotFound()
	}
	return p, nil
}

func (s *Service) defaultProcessor(gw model.PaymentGateway) (Processor, error) {
	creds, err := s.vault.GatewayCredentials(gw.ID)
	if err != nil {
		return nil, fmt.Errorf("defaultProcessor: %w", err)
	}

	if s.sandbox {
		return newTestPay(creds.WebhookSecret), nil
	}

	returnURL := viper.GetString(config.PaymentReturnURL)
	callbackURL := viper.GetString(config.PaymentCallbackBaseURL)

	switch gw.ID {
	case "orange_money":
		return newOrangeMoney(gw.BaseURL, creds, returnURL, callbackURL), nil
	case "sama_money":
		return newSamaMoney(gw.BaseURL, creds, returnURL, callbackURL), nil
	case "wave_money", "moov_money":
		return newMobileMoney(gw.ID, gw.BaseURL, creds, returnURL, callbackURL), nil
	case "stripe":
		return newStripeCard(gw.BaseURL, creds), nil
	case "bank_transfer":
		return newBankTransfer(
			viper.GetString(config.BankTransferBankName),
			viper.GetString(config.BankTransferAccountName),
			viper.GetString(config.BankTransferAccountNumber),
			creds.WebhookSecret,
		), nil
	default:
		return nil, fmt.Errorf("defaultProcessor: no adapter for gateway %s", gw.ID)
	}
}

func (s *Service) count(gatewayID, outcome string) {
	if s.metrics != nil {
		s.metrics.PaymentAttempts.WithLabelValues(gatewayID, outcome).Inc()
	}
}

func responseFromRecord(p *model.Payment) *model.PaymentResponse {
	res := &model.PaymentResponse{
		Success:       p.Status != model.PaymentFailed,
		TransactionID: p.TransactionReference,
	}
	if p.Status == model.PaymentFailed {
		res.Error = "Payment previously failed for this reference"
	}
	if p.GatewayResponse != "" {
		var gr map[string]string
		if err := json.Unmarshal([]byte(p.GatewayResponse), &gr); err == nil {
			res.GatewayResponse = gr
		}
	}
	return res
}

func newReference(gatewayID string) string {
	prefix := strings.ToUpper(strings.SplitN(gatewayID, "_", 2)[0])
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().Unix(), uuid.New().String()[:8])
}
