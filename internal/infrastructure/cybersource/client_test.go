package cybersource_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheusdigital/exchange-addon-cybersource/internal/application"
	"github.com/prometheusdigital/exchange-addon-cybersource/internal/config"
	"github.com/prometheusdigital/exchange-addon-cybersource/internal/domain"
	"github.com/prometheusdigital/exchange-addon-cybersource/internal/infrastructure/cybersource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const acceptReply = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <c:replyMessage xmlns:c="urn:schemas-cybersource-com:transaction-data-1.26">
      <c:merchantReferenceCode>4200123</c:merchantReferenceCode>
      <c:requestID>6789</c:requestID>
      <c:decision>ACCEPT</c:decision>
      <c:reasonCode>100</c:reasonCode>
      <c:requestToken>token</c:requestToken>
    </c:replyMessage>
  </soap:Body>
</soap:Envelope>`

const faultReply = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <soap:Fault>
      <faultcode>soap:Client</faultcode>
      <faultstring>Security processing failed</faultstring>
    </soap:Fault>
  </soap:Body>
</soap:Envelope>`

func sandboxConfig(endpoint string) config.GatewayConfig {
	return config.GatewayConfig{
		MerchantID:      "acme_store",
		TestSecurityKey: "test-key",
		LiveSecurityKey: "live-key",
		TestEndpoint:    endpoint,
		LiveEndpoint:    "https://live.invalid",
		SandboxMode:     true,
		SaleMethod:      "sale",
		Protocol:        "soap",
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
				FirstName: "Ada",
				LastName:  "Lovelace",
				Email:     "ada@example.com",
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
			{ID: 0, UnitPrice: "19.99", Quantity: 1},
		},
	}
}

func TestRunTransaction_Accept(t *testing.T) {
	var requestBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requestBody = string(body)
		w.Write([]byte(acceptReply))
	}))
	defer server.Close()

	client := cybersource.NewClient(sandboxConfig(server.URL))

	raw, err := client.RunTransaction(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, application.ProtocolSOAP, raw.Protocol)
	assert.Equal(t, "ACCEPT", raw.Decision)
	assert.Equal(t, 100, raw.ReasonCode)
	assert.Equal(t, "6789", raw.RequestID)

	// Sandbox credentials ride in the injected security header.
	assert.Contains(t, requestBody, "<wsse:Username>acme_store</wsse:Username>")
	assert.Contains(t, requestBody, "test-key")
	assert.NotContains(t, requestBody, "live-key")

	assert.Contains(t, requestBody, "<ns1:merchantID>acme_store</ns1:merchantID>")
	assert.Contains(t, requestBody, "<ns1:merchantReferenceCode>4200123</ns1:merchantReferenceCode>")
	assert.Contains(t, requestBody, `<ns1:ccAuthService run="true">`)
	assert.Contains(t, requestBody, `<ns1:ccCaptureService run="true">`)
	assert.Contains(t, requestBody, "<ns1:accountNumber>4111111111111111</ns1:accountNumber>")
	assert.Contains(t, requestBody, "<ns1:expirationMonth>07</ns1:expirationMonth>")
	assert.Contains(t, requestBody, "<ns1:expirationYear>2023</ns1:expirationYear>")
	assert.Contains(t, requestBody, "<ns1:grandTotalAmount>19.99</ns1:grandTotalAmount>")
	assert.Contains(t, requestBody, `<ns1:item id="0">`)
	assert.Contains(t, requestBody, "<ns1:unitPrice>19.99</ns1:unitPrice>")
}

func TestRunTransaction_AuthOnlyOmitsCapture(t *testing.T) {
	var requestBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requestBody = string(body)
		w.Write([]byte(acceptReply))
	}))
	defer server.Close()

	client := cybersource.NewClient(sandboxConfig(server.URL))

	req := sampleRequest()
	req.RunCapture = false

	_, err := client.RunTransaction(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, requestBody, "ccAuthService")
	assert.NotContains(t, requestBody, "ccCaptureService")
}

func TestRunTransaction_SOAPFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(faultReply))
	}))
	defer server.Close()

	client := cybersource.NewClient(sandboxConfig(server.URL))

	_, err := client.RunTransaction(context.Background(), sampleRequest())
	require.Error(t, err)

	transportErr, ok := application.IsTransportError(err)
	require.True(t, ok)
	assert.Contains(t, transportErr.Error(), "Security processing failed")
}

func TestRunTransaction_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := cybersource.NewClient(sandboxConfig(server.URL))

	_, err := client.RunTransaction(context.Background(), sampleRequest())
	require.Error(t, err)

	transportErr, ok := application.IsTransportError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, transportErr.StatusCode)
}

func TestRunTransaction_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := cybersource.NewClient(sandboxConfig(server.URL))

	_, err := client.RunTransaction(context.Background(), sampleRequest())
	require.Error(t, err)

	_, ok := application.IsTransportError(err)
	assert.True(t, ok)
}
