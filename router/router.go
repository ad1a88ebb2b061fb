package router

import (
	"context"
	"elverra-club-backend/agent"
	"elverra-club-backend/config"
	"elverra-club-backend/discounts"
	"elverra-club-backend/factory"
	"elverra-club-backend/gateway"
	"elverra-club-backend/handler"
	"elverra-club-backend/healthcheck"
	"elverra-club-backend/logger"
	"elverra-club-backend/membership"
	"elverra-club-backend/metrics"
	"elverra-club-backend/middleware"
	"elverra-club-backend/payment"
	"elverra-club-backend/response"
	"elverra-club-backend/secours"
	"elverra-club-backend/twilio"
	"elverra-club-backend/vault"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
)

const roleAdmin = "admin"

// Router returns the router for all the API handler.
func Router(ctx context.Context) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.SetCorrelationIDHeader)
	r.Use(middleware.PanicHandler)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.ResourceNotFound(fmt.Sprintf("The requested resource was not found: path: %s, method: %s", req.URL.Path, req.Method), "The requested resource was not found!").Send(req.Context(), w)
	})

	r.Use(middleware.ResponseTimeLogging)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.SetContentTypeHeader)

	v, err := vault.New(
		viper.GetString(config.VaultToken),
		viper.GetString(config.VaultUnSealKey),
		viper.GetString(config.VaultAddress),
		viper.GetString(config.GatewayPath),
		viper.GetString(config.CardPath))
	if err != nil {
		logger.Fatalf(ctx, "router: Error creating vault client: %+v", err)
	}

	f := factory.NewFactory()
	m := metrics.Registry("elverra")
	sender := twilio.NewSender(
		viper.GetString(config.TwilioAccountSID),
		viper.GetString(config.TwilioAuthToken),
		viper.GetString(config.TwilioURL),
		viper.GetString(config.TwilioFrom),
	)

	registry := gateway.NewRegistry(f.Redis(ctx), time.Duration(viper.GetInt(config.RegistryCacheTTL))*time.Second)
	memberService := membership.NewService(f.Redis(ctx), m)
	paymentService := payment.NewService(registry, v, m, viper.GetBool(config.PaymentSandbox))
	secoursService := secours.NewService(sender, m)
	agentService := agent.NewService()
	discountService := discounts.NewService(f.Redis(ctx))

	authenticate := middleware.Authenticate(f, memberService.ResolveMember)
	admin := middleware.RequireRole(roleAdmin)

	r.HandleFunc("/healthcheck", healthcheck.Self).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	baseRouter := r.PathPrefix("/v1").Subrouter()

	memberRouter := baseRouter.PathPrefix("/members").Subrouter()
	memberRouter.HandleFunc("/connect", handler.Connect(memberService, f)).Methods(http.MethodPost)
	memberRouter.HandleFunc("/register", handler.Register(memberService, f)).Methods(http.MethodPost)

	meRouter := baseRouter.PathPrefix("/members/me").Subrouter()
	meRouter.Use(authenticate)
	meRouter.HandleFunc("", handler.GetMember(memberService, f)).Methods(http.MethodGet)
	meRouter.HandleFunc("", handler.UpdateMember(memberService, f)).Methods(http.MethodPatch)
	meRouter.HandleFunc("/renew", handler.RenewMembership(memberService, f)).Methods(http.MethodPost)
	meRouter.HandleFunc("/card", handler.CardToken(memberService, v, f)).Methods(http.MethodGet)

	cardRouter := baseRouter.PathPrefix("/cards").Subrouter()
	cardRouter.HandleFunc("/validate", handler.ValidateCard(v)).Methods(http.MethodPost)

	discountRouter := baseRouter.PathPrefix("/discounts").Subrouter()
	discountRouter.HandleFunc("/sectors", handler.ListSectors(discountService, f)).Methods(http.MethodGet)
	discountRouter.HandleFunc("/merchants", handler.ListMerchants(discountService, f)).Methods(http.MethodGet)

	gatewayRouter := baseRouter.PathPrefix("/gateways").Subrouter()
	gatewayRouter.HandleFunc("", handler.ListGateways(registry, f)).Methods(http.MethodGet)

	gatewayAdminRouter := baseRouter.PathPrefix("/admin/gateways").Subrouter()
	gatewayAdminRouter.Use(authenticate, admin)
	gatewayAdminRouter.HandleFunc("/{gatewayID}", handler.SetGatewayActive(registry, f)).Methods(http.MethodPatch)

	paymentRouter := baseRouter.PathPrefix("/payments").Subrouter()
	paymentRouter.Use(authenticate)
	paymentRouter.HandleFunc("", handler.ProcessPayment(paymentService, f)).Methods(http.MethodPost)
	paymentRouter.HandleFunc("/{reference}", handler.PaymentStatus(paymentService, f)).Methods(http.MethodGet)

	// Gateway callbacks authenticate with an HMAC signature, not a
	// member session.
	webhookRouter := baseRouter.PathPrefix("/webhooks").Subrouter()
	webhookRouter.HandleFunc("/{gatewayID}", handler.Webhook(paymentService, f)).Methods(http.MethodPost)

	secoursRouter := baseRouter.PathPrefix("/secours").Subrouter()
	secoursRouter.Use(authenticate)
	secoursRouter.HandleFunc("/subscriptions", handler.Subscribe(secoursService, f)).Methods(http.MethodPost)
	secoursRouter.HandleFunc("/subscriptions", handler.ListSubscriptions(secoursService, f)).Methods(http.MethodGet)
	secoursRouter.HandleFunc("/tokens/purchase", handler.PurchaseTokens(secoursService, f)).Methods(http.MethodPost)
	secoursRouter.HandleFunc("/tokens/transactions", handler.ListTransactions(secoursService, f)).Methods(http.MethodGet)
	secoursRouter.HandleFunc("/rescues", handler.RequestRescue(secoursService, memberService, f)).Methods(http.MethodPost)
	secoursRouter.HandleFunc("/rescues", handler.ListRescues(secoursService, f)).Methods(http.MethodGet)
	secoursRouter.HandleFunc("/policies/{subscriptionType}", handler.GetTokenPolicy(secoursService, f)).Methods(http.MethodGet)

	secoursAdminRouter := baseRouter.PathPrefix("/admin/secours").Subrouter()
	secoursAdminRouter.Use(authenticate, admin)
	secoursAdminRouter.HandleFunc("/rescues/{rescueID}/review", handler.ReviewRescue(secoursService, f)).Methods(http.MethodPost)

	agentRouter := baseRouter.PathPrefix("/agents").Subrouter()
	agentRouter.Use(authenticate)
	agentRouter.HandleFunc("", handler.RegisterAgent(agentService, f)).Methods(http.MethodPost)
	agentRouter.HandleFunc("/me", handler.GetAgent(agentService, f)).Methods(http.MethodGet)
	agentRouter.HandleFunc("/withdrawals", handler.RequestWithdrawal(agentService, sender, f)).Methods(http.MethodPost)
	agentRouter.HandleFunc("/withdrawals/confirm", handler.ConfirmWithdrawal(agentService, f)).Methods(http.MethodPost)

	return r
}
