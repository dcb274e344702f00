package domain

// Customer is the host application's account record for the buyer.
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// NormalizedAddress is a fully populated billing or shipping record. Fields
// that were absent upstream hold empty strings, never anything else.
type NormalizedAddress struct {
	FirstName  string
	LastName   string
	Company    string
	Street1    string
	Street2    string
	City       string
	State      string
	PostalCode string
	Country    string
	Email      string
	Phone      string
}

// Address field keys as the host application supplies them.
const (
	addrFirstName = "first-name"
	addrLastName  = "last-name"
	addrCompany   = "company-name"
	addrStreet1   = "address1"
	addrStreet2   = "address2"
	addrCity      = "city"
	addrState     = "state"
	addrZip       = "zip"
	addrCountry   = "country"
	addrEmail     = "email"
	addrPhone     = "phone"
)

// NormalizeAddresses merges the customer's possibly-partial billing and
// shipping records into complete ones. Keys present in the supplied record
// win; missing keys fall back to a default seeded with the customer's name
// and email. An email left empty after the merge is filled from the
// customer's account email.
func NormalizeAddresses(customer Customer, billing, shipping map[string]string) (NormalizedAddress, NormalizedAddress) {
	return normalizeAddress(customer, billing), normalizeAddress(customer, shipping)
}

func normalizeAddress(customer Customer, supplied map[string]string) NormalizedAddress {
	merged := map[string]string{
		addrFirstName: customer.FirstName,
		addrLastName:  customer.LastName,
		addrCompany:   "",
		addrStreet1:   "",
		addrStreet2:   "",
		addrCity:      "",
		addrState:     "",
		addrZip:       "",
		addrCountry:   "",
		addrEmail:     customer.Email,
		addrPhone:     "",
	}

	for key, value := range supplied {
		if _, known := merged[key]; known {
			merged[key] = value
		}
	}

	if merged[addrEmail] == "" {
		merged[addrEmail] = customer.Email
	}

	return NormalizedAddress{
		FirstName:  merged[addrFirstName],
		LastName:   merged[addrLastName],
		Company:    merged[addrCompany],
		Street1:    merged[addrStreet1],
		Street2:    merged[addrStreet2],
		City:       merged[addrCity],
		State:      merged[addrState],
		PostalCode: merged[addrZip],
		Country:    merged[addrCountry],
		Email:      merged[addrEmail],
		Phone:      merged[addrPhone],
	}
}
