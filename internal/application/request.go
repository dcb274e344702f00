package application

import "github.com/prometheusdigital/exchange-addon-cybersource/internal/domain"

// TransactionRequest is the gateway-specific request for one payment
// attempt. It is built once, treated as immutable, and passed by value to
// the transport.
type TransactionRequest struct {
	MerchantID    string
	ReferenceCode string
	RunAuth       bool
	RunCapture    bool
	BillTo        BillTo
	Card          Card
	Totals        PurchaseTotals
	Items         []LineItem
	Client        ClientMetadata
}

// BillTo is the billing record sent to the gateway, with the host's
// customer ID attached.
type BillTo struct {
	domain.NormalizedAddress
	CustomerID string
}

// Card carries the normalized card fields. ExpirationMonth is always two
// digits and ExpirationYear four.
type Card struct {
	AccountNumber   string
	ExpirationMonth string
	ExpirationYear  string
	CVNumber        string

	// Network is the matched card network slug. Used for logging only,
	// never serialized onto the wire.
	Network string
}

// PurchaseTotals carries the grand total formatted to the gateway's
// expected two-decimal precision.
type PurchaseTotals struct {
	GrandTotalAmount string
	Currency         string
}

// LineItem is one cart line priced per unit. ID is the zero-based running
// count of items added to the request, not the cart's product index.
type LineItem struct {
	ID        int
	Name      string
	UnitPrice string
	Quantity  int
}

// ClientMetadata identifies the integration to the gateway.
type ClientMetadata struct {
	Library        string
	LibraryVersion string
	Environment    string
}
