package domain

import "strings"

// CardType describes one accepted card network. Lengths and Prefixes come
// from the gateway's acceptance rules and are matched exactly as given.
type CardType struct {
	Name     string
	Slug     string
	Lengths  []int
	Prefixes []string
	Checksum bool
}

// cardTypes is checked in order; the first full match wins.
var cardTypes = []CardType{
	{
		Name:     "Amex",
		Slug:     "amex",
		Lengths:  []int{15},
		Prefixes: []string{"34", "37"},
		Checksum: true,
	},
	{
		Name:     "Discover",
		Slug:     "discover",
		Lengths:  []int{16},
		Prefixes: []string{"6011", "622", "64", "65"},
		Checksum: true,
	},
	{
		Name:     "MasterCard",
		Slug:     "mastercard",
		Lengths:  []int{16},
		Prefixes: []string{"51", "52", "53", "54", "55"},
		Checksum: true,
	},
	{
		Name:     "Visa",
		Slug:     "visa",
		Lengths:  []int{13, 16},
		Prefixes: []string{"4", "417500", "4917", "4913", "4508", "4844"},
		Checksum: true,
	},
	{
		Name:     "JCB",
		Slug:     "jcb",
		Lengths:  []int{16},
		Prefixes: []string{"35"},
		Checksum: true,
	},
	{
		Name:     "Maestro",
		Slug:     "maestro",
		Lengths:  []int{12, 13, 14, 15, 16, 18, 19},
		Prefixes: []string{"5018", "5020", "5038", "6304", "6759", "6761"},
		Checksum: true,
	},
}

// CardTypes returns the accepted card networks in match priority order.
func CardTypes() []CardType {
	out := make([]CardType, len(cardTypes))
	copy(out, cardTypes)
	return out
}

// NormalizeCardNumber strips spaces and dashes from a raw card number.
func NormalizeCardNumber(number string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-':
			return -1
		default:
			return r
		}
	}, number)
}

// ClassifyCard identifies the card network for a raw card number. The number
// is normalized first; an empty or non-numeric result never matches. A type
// that matches on prefix and length but fails its checksum does not fall
// through to later types: the whole classification fails.
func ClassifyCard(number string) (CardType, bool) {
	number = NormalizeCardNumber(number)

	if number == "" || !isDigits(number) {
		return CardType{}, false
	}

	for _, ct := range cardTypes {
		if !matchesCardType(number, ct) {
			continue
		}
		if ct.Checksum && !ValidChecksum(number) {
			return CardType{}, false
		}
		return ct, true
	}

	return CardType{}, false
}

func matchesCardType(number string, ct CardType) bool {
	matchesPrefix := false
	for _, prefix := range ct.Prefixes {
		if strings.HasPrefix(number, prefix) {
			matchesPrefix = true
			break
		}
	}

	matchesLength := false
	for _, length := range ct.Lengths {
		if len(number) == length {
			matchesLength = true
			break
		}
	}

	return matchesPrefix && matchesLength
}

// ValidChecksum reports whether a digit string passes the Luhn mod-10 check.
func ValidChecksum(number string) bool {
	checksum := 0
	multiplier := 1

	for i := len(number) - 1; i >= 0; i-- {
		num := int(number[i]-'0') * multiplier

		if num >= 10 {
			checksum++
			num -= 10
		}

		checksum += num

		if multiplier == 1 {
			multiplier = 2
		} else {
			multiplier = 1
		}
	}

	return checksum%10 == 0
}

// MaskCardNumber keeps the first six and last four digits for logging.
func MaskCardNumber(number string) string {
	number = NormalizeCardNumber(number)
	n := len(number)
	if n <= 4 {
		return strings.Repeat("*", n)
	}
	if n < 10 {
		return strings.Repeat("*", n-4) + number[n-4:]
	}
	return number[:6] + strings.Repeat("*", n-10) + number[n-4:]
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
