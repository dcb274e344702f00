// Package cybersource implements the SOAP binding of the gateway transport.
package cybersource

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheusdigital/exchange-addon-cybersource/internal/application"
	"github.com/prometheusdigital/exchange-addon-cybersource/internal/config"
)

// Client submits transaction requests to the Simple Order API. The endpoint
// and credentials are fixed at construction from the sandbox/live mode in
// the configuration.
type Client struct {
	send DocumentSender
}

func NewClient(cfg config.GatewayConfig) *Client {
	httpClient := &http.Client{
		Timeout: cfg.ConnTimeout,
	}

	username, password := cfg.Credentials()

	return &Client{
		send: WithUsernameToken(username, password, postDocument(httpClient, cfg.Endpoint())),
	}
}

// RunTransaction serializes the request, submits it and returns the raw
// decision fields. Network failures and SOAP faults come back as a
// *application.TransportError; no retry happens here.
func (c *Client) RunTransaction(ctx context.Context, req application.TransactionRequest) (*application.RawResponse, error) {
	envelope := buildEnvelope(req)

	doc, err := xml.Marshal(envelope)
	if err != nil {
		return nil, &application.TransportError{
			Protocol: application.ProtocolSOAP,
			Op:       "marshal request",
			Err:      err,
		}
	}
	doc = append([]byte(xml.Header), doc...)

	body, err := c.send(ctx, doc)
	if err != nil {
		if _, ok := application.IsTransportError(err); ok {
			return nil, err
		}
		return nil, &application.TransportError{
			Protocol: application.ProtocolSOAP,
			Op:       "send request",
			Err:      err,
		}
	}

	var reply soapResponseEnvelope
	if err := xml.Unmarshal(body, &reply); err != nil {
		return nil, &application.TransportError{
			Protocol: application.ProtocolSOAP,
			Op:       "decode response",
			Err:      err,
		}
	}

	if reply.Body.Fault != nil {
		return nil, &application.TransportError{
			Protocol: application.ProtocolSOAP,
			Op:       "run transaction",
			Err:      fmt.Errorf("soap fault %s: %s", reply.Body.Fault.FaultCode, reply.Body.Fault.FaultString),
		}
	}

	msg := reply.Body.ReplyMessage
	if msg.Decision == "" {
		return nil, &application.TransportError{
			Protocol: application.ProtocolSOAP,
			Op:       "decode response",
			Err:      fmt.Errorf("reply carries no decision"),
		}
	}

	return &application.RawResponse{
		Protocol:   application.ProtocolSOAP,
		Decision:   msg.Decision,
		ReasonCode: msg.ReasonCode,
		RequestID:  msg.RequestID,
	}, nil
}

// postDocument is the bare "send document" capability the security
// decorator wraps. The gateway answers SOAP faults with a 500, so that
// status still returns the body for fault extraction.
func postDocument(client *http.Client, endpoint string) DocumentSender {
	return func(ctx context.Context, doc []byte) ([]byte, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(doc))
		if err != nil {
			return nil, &application.TransportError{
				Protocol: application.ProtocolSOAP,
				Op:       "create request",
				Err:      err,
			}
		}
		httpReq.Header.Set("Content-Type", "text/xml; charset=utf-8")
		httpReq.Header.Set("SOAPAction", "runTransaction")

		resp, err := client.Do(httpReq)
		if err != nil {
			return nil, &application.TransportError{
				Protocol: application.ProtocolSOAP,
				Op:       "post document",
				Err:      err,
			}
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &application.TransportError{
				Protocol:   application.ProtocolSOAP,
				Op:         "read response",
				StatusCode: resp.StatusCode,
				Err:        err,
			}
		}

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusInternalServerError {
			return nil, &application.TransportError{
				Protocol:   application.ProtocolSOAP,
				Op:         "post document",
				StatusCode: resp.StatusCode,
			}
		}

		return body, nil
	}
}
