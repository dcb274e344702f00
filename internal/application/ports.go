package application

import "context"

// Protocol identifies which wire binding produced a raw response.
type Protocol string

const (
	ProtocolSOAP Protocol = "soap"
	ProtocolNVP  Protocol = "nvp"
)

// RawResponse is the gateway's reply before interpretation. SOAP replies
// populate the structured fields; form-POST replies populate Fields with the
// flat key/value pairs from the response body.
type RawResponse struct {
	Protocol   Protocol
	Decision   string
	ReasonCode int
	RequestID  string
	Fields     map[string]string
}

// GatewayClient submits a built transaction request over one wire protocol.
// Implementations return a *TransportError for network or protocol-level
// failures and never retry on their own.
type GatewayClient interface {
	RunTransaction(ctx context.Context, req TransactionRequest) (*RawResponse, error)
}
