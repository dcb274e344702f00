// Package nvp implements the form-POST binding of the gateway transport:
// flat name/value pairs out, flat name/value pairs back.
package nvp

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/prometheusdigital/exchange-addon-cybersource/internal/application"
	"github.com/prometheusdigital/exchange-addon-cybersource/internal/config"
)

// Client submits transaction requests as urlencoded form posts. Credentials
// ride as form fields, chosen once at construction from the sandbox/live
// mode.
type Client struct {
	endpoint   string
	username   string
	password   string
	httpClient *http.Client
}

func NewClient(cfg config.GatewayConfig) *Client {
	username, password := cfg.Credentials()

	return &Client{
		endpoint: cfg.Endpoint(),
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

func (c *Client) RunTransaction(ctx context.Context, req application.TransactionRequest) (*application.RawResponse, error) {
	form := encodeRequest(req, c.username, c.password)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &application.TransportError{
			Protocol: application.ProtocolNVP,
			Op:       "create request",
			Err:      err,
		}
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &application.TransportError{
			Protocol: application.ProtocolNVP,
			Op:       "post form",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &application.TransportError{
			Protocol:   application.ProtocolNVP,
			Op:         "post form",
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &application.TransportError{
			Protocol:   application.ProtocolNVP,
			Op:         "read response",
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, &application.TransportError{
			Protocol: application.ProtocolNVP,
			Op:       "decode response",
			Err:      err,
		}
	}

	fields := make(map[string]string, len(values))
	for key := range values {
		fields[key] = values.Get(key)
	}

	return &application.RawResponse{
		Protocol: application.ProtocolNVP,
		Fields:   fields,
	}, nil
}

func encodeRequest(req application.TransactionRequest, username, password string) url.Values {
	form := url.Values{}

	form.Set("USER", username)
	form.Set("PWD", password)
	form.Set("METHOD", "DoDirectPayment")

	action := "Authorization"
	if req.RunCapture {
		action = "Sale"
	}
	form.Set("PAYMENTACTION", action)

	form.Set("INVNUM", req.ReferenceCode)
	form.Set("AMT", req.Totals.GrandTotalAmount)
	form.Set("CURRENCYCODE", req.Totals.Currency)

	form.Set("ACCT", req.Card.AccountNumber)
	form.Set("EXPDATE", req.Card.ExpirationMonth+req.Card.ExpirationYear)
	form.Set("CVV2", req.Card.CVNumber)

	form.Set("FIRSTNAME", req.BillTo.FirstName)
	form.Set("LASTNAME", req.BillTo.LastName)
	form.Set("STREET", req.BillTo.Street1)
	form.Set("STREET2", req.BillTo.Street2)
	form.Set("CITY", req.BillTo.City)
	form.Set("STATE", req.BillTo.State)
	form.Set("ZIP", req.BillTo.PostalCode)
	form.Set("COUNTRYCODE", req.BillTo.Country)
	form.Set("EMAIL", req.BillTo.Email)
	form.Set("PHONENUM", req.BillTo.Phone)

	for _, item := range req.Items {
		n := strconv.Itoa(item.ID)
		form.Set("L_NAME"+n, item.Name)
		form.Set("L_AMT"+n, item.UnitPrice)
		form.Set("L_QTY"+n, strconv.Itoa(item.Quantity))
	}

	return form
}
