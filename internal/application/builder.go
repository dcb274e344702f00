package application

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/prometheusdigital/exchange-addon-cybersource/internal/config"
	"github.com/prometheusdigital/exchange-addon-cybersource/internal/domain"
)

// BuildRequest assembles the transaction request for one payment attempt
// from the normalized checkout data and the merchant settings. It returns a
// *domain.InvalidCardError when the card number matches no accepted network
// or the expiry fields do not parse; nothing is sent to the gateway in that
// case.
func BuildRequest(
	customer domain.Customer,
	cart domain.Cart,
	card domain.CardInput,
	billing domain.NormalizedAddress,
	cfg config.GatewayConfig,
) (TransactionRequest, error) {
	cardType, ok := domain.ClassifyCard(card.Number)
	if !ok {
		return TransactionRequest{}, &domain.InvalidCardError{}
	}

	month, year, err := normalizeExpiry(card.ExpirationMonth, card.ExpirationYear)
	if err != nil {
		return TransactionRequest{}, &domain.InvalidCardError{Reason: err.Error()}
	}

	req := TransactionRequest{
		MerchantID:    cfg.MerchantID,
		ReferenceCode: referenceCode(customer.ID),
		RunAuth:       true,
		RunCapture:    cfg.CaptureOnSale(),
		BillTo: BillTo{
			NormalizedAddress: billing,
			CustomerID:        customer.ID,
		},
		Card: Card{
			AccountNumber:   domain.NormalizeCardNumber(card.Number),
			ExpirationMonth: month,
			ExpirationYear:  year,
			CVNumber:        card.CVV,
			Network:         cardType.Slug,
		},
		Totals: PurchaseTotals{
			GrandTotalAmount: formatAmount(cart.Total),
			Currency:         cart.Currency,
		},
		Items: buildLineItems(cart.Products),
		Client: ClientMetadata{
			Library:        "Go",
			LibraryVersion: runtime.Version(),
			Environment:    runtime.GOOS + "/" + runtime.GOARCH,
		},
	}

	return req, nil
}

// referenceCode generates a reference unique per attempt. The gateway
// deduplicates on this field, so a collision risks a silently dropped or
// doubled request.
func referenceCode(customerID string) string {
	return customerID + "00" + strconv.FormatInt(time.Now().UnixNano(), 10)
}

// normalizeExpiry zero-pads the month to two digits and expands a two-digit
// year into the 2000s. A year of 100 or more is used as given.
func normalizeExpiry(rawMonth, rawYear string) (string, string, error) {
	month, err := strconv.Atoi(strings.TrimSpace(rawMonth))
	if err != nil {
		return "", "", fmt.Errorf("bad expiration month %q", rawMonth)
	}

	year, err := strconv.Atoi(strings.TrimSpace(rawYear))
	if err != nil {
		return "", "", fmt.Errorf("bad expiration year %q", rawYear)
	}

	monthStr := strconv.Itoa(month)
	if month < 10 {
		monthStr = "0" + monthStr
	}

	yearStr := strconv.Itoa(year)
	if year < 100 {
		yearStr = fmt.Sprintf("20%02d", year)
	}

	return monthStr, yearStr, nil
}

// buildLineItems recovers the per-unit price of each cart line from its
// subtotal. Per-item discount proration is intentionally not applied; the
// grand total already reflects cart-level discounts.
func buildLineItems(products []domain.CartProduct) []LineItem {
	var items []LineItem

	itemCount := 0
	for _, product := range products {
		if product.Quantity < 1 {
			continue
		}

		price := product.Subtotal / float64(product.Quantity)

		items = append(items, LineItem{
			ID:        itemCount,
			Name:      product.Name,
			UnitPrice: formatAmount(price),
			Quantity:  product.Quantity,
		})

		itemCount++
	}

	return items
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
