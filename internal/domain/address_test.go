package domain_test

import (
	"testing"

	"github.com/prometheusdigital/exchange-addon-cybersource/internal/domain"
	"github.com/stretchr/testify/assert"
)

var testCustomer = domain.Customer{
	ID:        "42",
	FirstName: "Ada",
	LastName:  "Lovelace",
	Email:     "ada@example.com",
}

func TestNormalizeAddresses_Defaults(t *testing.T) {
	billing, shipping := domain.NormalizeAddresses(testCustomer, nil, nil)

	want := domain.NormalizedAddress{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}
	assert.Equal(t, want, billing)
	assert.Equal(t, want, shipping)
}

func TestNormalizeAddresses_SuppliedKeysWin(t *testing.T) {
	billing, _ := domain.NormalizeAddresses(testCustomer, map[string]string{
		"first-name": "Augusta",
		"address1":   "12 St James Square",
		"city":       "London",
		"country":    "GB",
	}, nil)

	assert.Equal(t, "Augusta", billing.FirstName)
	assert.Equal(t, "Lovelace", billing.LastName)
	assert.Equal(t, "12 St James Square", billing.Street1)
	assert.Equal(t, "London", billing.City)
	assert.Equal(t, "GB", billing.Country)
	assert.Equal(t, "ada@example.com", billing.Email)
}

func TestNormalizeAddresses_EmailBackfill(t *testing.T) {
	billing, _ := domain.NormalizeAddresses(testCustomer, map[string]string{
		"email": "",
	}, nil)

	assert.Equal(t, "ada@example.com", billing.Email)
}

func TestNormalizeAddresses_UnknownKeysIgnored(t *testing.T) {
	billing, _ := domain.NormalizeAddresses(testCustomer, map[string]string{
		"favorite-color": "mauve",
	}, nil)

	assert.Equal(t, "Ada", billing.FirstName)
	assert.Equal(t, "", billing.Street1)
}

func TestNormalizeAddresses_Idempotent(t *testing.T) {
	full := map[string]string{
		"first-name":   "Ada",
		"last-name":    "Lovelace",
		"company-name": "Analytical Engines Ltd",
		"address1":     "12 St James Square",
		"address2":     "Floor 2",
		"city":         "London",
		"state":        "LDN",
		"zip":          "SW1Y 4LB",
		"country":      "GB",
		"email":        "ada@example.com",
		"phone":        "020 7946 0000",
	}

	first, _ := domain.NormalizeAddresses(testCustomer, full, full)
	second, _ := domain.NormalizeAddresses(testCustomer, full, full)

	assert.Equal(t, first, second)
	assert.Equal(t, "Analytical Engines Ltd", first.Company)
	assert.Equal(t, "SW1Y 4LB", first.PostalCode)
	assert.Equal(t, "020 7946 0000", first.Phone)
}

func TestNormalizeAddresses_NoEmptyFieldsBecomeDefaults(t *testing.T) {
	// A key present with an empty value keeps the empty value, except the
	// email backfill.
	billing, _ := domain.NormalizeAddresses(testCustomer, map[string]string{
		"first-name": "",
	}, nil)

	assert.Equal(t, "", billing.FirstName)
}
