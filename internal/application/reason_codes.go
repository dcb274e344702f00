package application

// User-facing messages for gateway verdicts that carry no usable reason
// code. These strings are shown to the customer as-is.
const (
	msgAccepted = "Thank you, your payment has been accepted."

	msgReviewHold = "This order is being placed on hold for review. You may contact the store to complete the transaction."

	msgReviewCVN = "The authorization request was approved by the issuing bank but declined by our merchant because it did not pass the CVN check."

	msgGatewayError = "An error occurred, please try again or try an alternate form of payment"

	msgGenericFailure = "We cannot process your order with the payment information that you provided. Please use a different payment account or an alternate payment method."
)

// declineMessages maps the gateway's numeric reason codes on a failed
// decision to customer-safe messages. The codes and wording are the
// gateway's contract; do not edit them to taste.
var declineMessages = map[int]string{
	202: "The provided card is expired, please use an alternate card or other form of payment.",
	203: "The provided card was declined, please use an alternate card or other form of payment.",
	204: "Insufficient funds in account, please use an alternate card or other form of payment.",
	208: "The card is inactivate or not authorized for card-not-present transactions, please use an alternate card or other form of payment.",
	210: "The credit limit for the card has been reached, please use an alternate card or other form of payment.",
	211: "The card verification number is invalid, please try again.",
	231: "The provided card number was invalid, or card type was incorrect. Please try again.",
	232: "That card type is not accepted, please use an alternate card or other form of payment.",
	240: "The card type is invalid or does not correlate with the credit card number. Please try again or use an alternate card or other form of payment.",
}

// reasonCodeCVNReview is the "issuer approved, merchant declined on CVN"
// code. On a REVIEW decision it selects the CVN-specific message.
const reasonCodeCVNReview = 230

func declineMessage(reasonCode int) string {
	if msg, ok := declineMessages[reasonCode]; ok {
		return msg
	}
	return msgGenericFailure
}

func reviewMessage(reasonCode int) string {
	if reasonCode == reasonCodeCVNReview {
		return msgReviewCVN
	}
	return msgReviewHold
}
