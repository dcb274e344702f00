package domain

// CartProduct is one purchasable line in the cart as the host reports it.
// Subtotal is the line total (base price times quantity, after any host-side
// adjustments), not the per-unit price.
type CartProduct struct {
	Name     string
	Subtotal float64
	Quantity int
}

// Cart is the order snapshot handed over at checkout submission.
type Cart struct {
	Total    float64
	Currency string
	Products []CartProduct
}

// CardInput is the untrusted card data from the checkout form. Expiration
// month and year arrive as form strings and are parsed during request
// construction.
type CardInput struct {
	Number          string
	ExpirationMonth string
	ExpirationYear  string
	CVV             string
}
