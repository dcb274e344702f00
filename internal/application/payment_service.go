package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheusdigital/exchange-addon-cybersource/internal/config"
	"github.com/prometheusdigital/exchange-addon-cybersource/internal/domain"
)

// ChargeCommand carries the inbound boundary data for one checkout
// submission. Billing and shipping records may be partial; missing keys are
// filled during normalization.
type ChargeCommand struct {
	Customer        domain.Customer
	Cart            domain.Cart
	Card            domain.CardInput
	BillingAddress  map[string]string
	ShippingAddress map[string]string
}

// PaymentService runs the per-attempt pipeline: normalize the customer data,
// build the transaction request, submit it over the configured transport and
// interpret the gateway's verdict. Each call is independent; the service
// holds only read-only configuration.
type PaymentService struct {
	gateway GatewayClient
	cfg     config.GatewayConfig
	logger  *slog.Logger
}

func NewPaymentService(gateway GatewayClient, cfg config.GatewayConfig, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		gateway: gateway,
		cfg:     cfg,
		logger:  logger,
	}
}

// Process executes one payment attempt. It returns a *domain.InvalidCardError
// for local card validation failures and a *TransportError when the gateway
// could not be reached; both are for the caller to resolve, never retried
// here. Gateway declines, reviews and errors come back as the outcome.
func (s *PaymentService) Process(ctx context.Context, cmd *ChargeCommand) (*domain.TransactionOutcome, error) {
	attemptID := uuid.New().String()

	billing, _ := domain.NormalizeAddresses(cmd.Customer, cmd.BillingAddress, cmd.ShippingAddress)

	req, err := BuildRequest(cmd.Customer, cmd.Cart, cmd.Card, billing, s.cfg)
	if err != nil {
		s.logger.Warn("payment request rejected before submission",
			"attempt_id", attemptID,
			"customer_id", cmd.Customer.ID,
			"error", err,
		)
		return nil, err
	}

	s.logger.Info("submitting transaction",
		"attempt_id", attemptID,
		"customer_id", cmd.Customer.ID,
		"reference_code", req.ReferenceCode,
		"card_network", req.Card.Network,
		"card_number", domain.MaskCardNumber(req.Card.AccountNumber),
		"amount", req.Totals.GrandTotalAmount,
		"currency", req.Totals.Currency,
		"capture", req.RunCapture,
		"sandbox", s.cfg.SandboxMode,
	)

	raw, err := s.gateway.RunTransaction(ctx, req)
	if err != nil {
		s.logger.Error("gateway transport failed",
			"attempt_id", attemptID,
			"reference_code", req.ReferenceCode,
			"error", err,
		)
		return nil, fmt.Errorf("submitting transaction %s: %w", req.ReferenceCode, err)
	}

	outcome := Interpret(raw)
	outcome.AdminMessage = fmt.Sprintf("%s attempt_id=%s reference_code=%s",
		outcome.AdminMessage, attemptID, req.ReferenceCode)

	s.logger.Info("transaction interpreted",
		"attempt_id", attemptID,
		"reference_code", req.ReferenceCode,
		"decision", outcome.Decision,
		"reason_code", outcome.ReasonCode,
		"transaction_id", outcome.TransactionID,
	)

	return &outcome, nil
}
