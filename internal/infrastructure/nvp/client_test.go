package nvp_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/prometheusdigital/exchange-addon-cybersource/internal/application"
	"github.com/prometheusdigital/exchange-addon-cybersource/internal/config"
	"github.com/prometheusdigital/exchange-addon-cybersource/internal/domain"
	"github.com/prometheusdigital/exchange-addon-cybersource/internal/infrastructure/nvp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sandboxConfig(endpoint string) config.GatewayConfig {
	return config.GatewayConfig{
		MerchantID:      "acme_store",
		TestSecurityKey: "test-key",
		LiveSecurityKey: "live-key",
		TestEndpoint:    endpoint,
		LiveEndpoint:    "https://live.invalid",
		SandboxMode:     true,
		SaleMethod:      "sale",
		Protocol:        "nvp",
		ConnTimeout:     5 * time.Second,
	}
}

func sampleRequest() application.TransactionRequest {
	return application.TransactionRequest{
		MerchantID:    "acme_store",
		ReferenceCode: "4200123",
		RunAuth:       true,
		RunCapture:    true,
		BillTo: application.BillTo{
			NormalizedAddress: domain.NormalizedAddress{
				FirstName:  "Ada",
				LastName:   "Lovelace",
				Street1:    "12 St James Square",
				City:       "London",
				PostalCode: "SW1Y 4LB",
				Country:    "GB",
				Email:      "ada@example.com",
			},
			CustomerID: "42",
		},
		Card: application.Card{
			AccountNumber:   "4111111111111111",
			ExpirationMonth: "07",
			ExpirationYear:  "2023",
			CVNumber:        "123",
		},
		Totals: application.PurchaseTotals{
			GrandTotalAmount: "19.99",
			Currency:         "USD",
		},
		Items: []application.LineItem{
			{ID: 0, Name: "Widget", UnitPrice: "19.99", Quantity: 1},
		},
	}
}

func TestRunTransaction_FormEncoding(t *testing.T) {
	var form url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Write([]byte("ACK=Success&TRANSACTIONID=9XY12345"))
	}))
	defer server.Close()

	client := nvp.NewClient(sandboxConfig(server.URL))

	raw, err := client.RunTransaction(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, "acme_store", form.Get("USER"))
	assert.Equal(t, "test-key", form.Get("PWD"))
	assert.Equal(t, "Sale", form.Get("PAYMENTACTION"))
	assert.Equal(t, "19.99", form.Get("AMT"))
	assert.Equal(t, "USD", form.Get("CURRENCYCODE"))
	assert.Equal(t, "4111111111111111", form.Get("ACCT"))
	assert.Equal(t, "072023", form.Get("EXPDATE"))
	assert.Equal(t, "123", form.Get("CVV2"))
	assert.Equal(t, "Ada", form.Get("FIRSTNAME"))
	assert.Equal(t, "SW1Y 4LB", form.Get("ZIP"))
	assert.Equal(t, "Widget", form.Get("L_NAME0"))
	assert.Equal(t, "19.99", form.Get("L_AMT0"))
	assert.Equal(t, "1", form.Get("L_QTY0"))
	assert.Equal(t, "4200123", form.Get("INVNUM"))

	assert.Equal(t, application.ProtocolNVP, raw.Protocol)
	assert.Equal(t, "Success", raw.Fields["ACK"])
	assert.Equal(t, "9XY12345", raw.Fields["TRANSACTIONID"])
}

func TestRunTransaction_AuthOnlyPaymentAction(t *testing.T) {
	var form url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Write([]byte("ACK=Success"))
	}))
	defer server.Close()

	client := nvp.NewClient(sandboxConfig(server.URL))

	req := sampleRequest()
	req.RunCapture = false

	_, err := client.RunTransaction(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Authorization", form.Get("PAYMENTACTION"))
}

func TestRunTransaction_FailureInterpreted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ACK=Failure&L_SHORTMESSAGE0=Foo&L_ERRORCODE0=1"))
	}))
	defer server.Close()

	client := nvp.NewClient(sandboxConfig(server.URL))

	raw, err := client.RunTransaction(context.Background(), sampleRequest())
	require.NoError(t, err)

	outcome := application.Interpret(raw)
	assert.Equal(t, domain.DecisionDeclined, outcome.Decision)
	assert.Equal(t, "Foo (Error Code #1)", outcome.UserMessage)
}

func TestRunTransaction_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := nvp.NewClient(sandboxConfig(server.URL))

	_, err := client.RunTransaction(context.Background(), sampleRequest())
	require.Error(t, err)

	transportErr, ok := application.IsTransportError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, transportErr.StatusCode)
}

func TestRunTransaction_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := nvp.NewClient(sandboxConfig(server.URL))

	_, err := client.RunTransaction(context.Background(), sampleRequest())
	require.Error(t, err)

	_, ok := application.IsTransportError(err)
	assert.True(t, ok)
}
