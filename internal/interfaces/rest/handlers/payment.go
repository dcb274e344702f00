// Package handlers exposes the payment pipeline over a small HTTP facade.
// The host checkout flow is the intended caller; nothing here renders UI.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheusdigital/exchange-addon-cybersource/internal/application"
	"github.com/prometheusdigital/exchange-addon-cybersource/internal/domain"
)

// Handler holds HTTP handler dependencies.
type Handler struct {
	service *application.PaymentService
	logger  *slog.Logger
}

func New(service *application.PaymentService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/payments", h.ProcessPayment)
	mux.HandleFunc("GET /healthz", h.Healthz)
}

type paymentRequest struct {
	Customer struct {
		ID        string `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
	} `json:"customer"`
	Cart struct {
		Total    float64 `json:"total"`
		Currency string  `json:"currency"`
		Products []struct {
			Name     string  `json:"name"`
			Subtotal float64 `json:"subtotal"`
			Quantity int     `json:"quantity"`
		} `json:"products"`
	} `json:"cart"`
	Card struct {
		Number          string `json:"number"`
		ExpirationMonth string `json:"expiration_month"`
		ExpirationYear  string `json:"expiration_year"`
		CVV             string `json:"cvv"`
	} `json:"card"`
	BillingAddress  map[string]string `json:"billing_address"`
	ShippingAddress map[string]string `json:"shipping_address"`
}

type paymentResponse struct {
	Decision      domain.Decision `json:"decision"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Message       string          `json:"message"`
}

// ProcessPayment handles POST /api/v1/payments
func (h *Handler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if msg := validatePaymentRequest(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	cmd := toChargeCommand(req)

	outcome, err := h.service.Process(r.Context(), &cmd)
	if err != nil {
		if cardErr, ok := domain.IsInvalidCardError(err); ok {
			writeError(w, http.StatusUnprocessableEntity, cardErr.Error())
			return
		}
		if _, ok := application.IsTransportError(err); ok {
			// Detail stays in the logs; the caller only needs to know the
			// gateway was unreachable.
			writeError(w, http.StatusBadGateway, "payment gateway unavailable, please try again later")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	status := http.StatusOK
	if !outcome.Decision.Approved() {
		status = http.StatusUnprocessableEntity
	}

	writeJSON(w, status, paymentResponse{
		Decision:      outcome.Decision,
		TransactionID: outcome.TransactionID,
		Message:       outcome.UserMessage,
	})
}

// Healthz handles GET /healthz
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toChargeCommand(req paymentRequest) application.ChargeCommand {
	cmd := application.ChargeCommand{
		Customer: domain.Customer{
			ID:        req.Customer.ID,
			FirstName: req.Customer.FirstName,
			LastName:  req.Customer.LastName,
			Email:     req.Customer.Email,
		},
		Cart: domain.Cart{
			Total:    req.Cart.Total,
			Currency: req.Cart.Currency,
		},
		Card: domain.CardInput{
			Number:          req.Card.Number,
			ExpirationMonth: req.Card.ExpirationMonth,
			ExpirationYear:  req.Card.ExpirationYear,
			CVV:             req.Card.CVV,
		},
		BillingAddress:  req.BillingAddress,
		ShippingAddress: req.ShippingAddress,
	}

	for _, p := range req.Cart.Products {
		cmd.Cart.Products = append(cmd.Cart.Products, domain.CartProduct{
			Name:     p.Name,
			Subtotal: p.Subtotal,
			Quantity: p.Quantity,
		})
	}

	return cmd
}

func validatePaymentRequest(req paymentRequest) string {
	switch {
	case req.Customer.ID == "":
		return "customer id is required"
	case req.Cart.Total <= 0:
		return "cart total must be positive"
	case req.Cart.Currency == "":
		return "currency is required"
	case req.Card.Number == "":
		return "card number is required"
	default:
		return ""
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   map[string]string{"message": message},
	})
}
