package application

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/prometheusdigital/exchange-addon-cybersource/internal/domain"
)

// Interpret maps a raw gateway response to a normalized outcome. Every
// response yields an outcome; declines and gateway errors are outcome
// variants here, not Go errors.
func Interpret(raw *RawResponse) domain.TransactionOutcome {
	if raw.Protocol == ProtocolNVP {
		return interpretNVP(raw)
	}
	return interpretSOAP(raw)
}

// interpretSOAP handles the structured reply. Decisions compare
// case-insensitively; ERROR always yields the generic error message no
// matter the reason code.
func interpretSOAP(raw *RawResponse) domain.TransactionOutcome {
	outcome := domain.TransactionOutcome{
		ReasonCode:    raw.ReasonCode,
		TransactionID: raw.RequestID,
		AdminMessage: fmt.Sprintf(
			"cybersource decision=%s reason_code=%d request_id=%s",
			raw.Decision, raw.ReasonCode, raw.RequestID,
		),
	}

	switch strings.ToLower(raw.Decision) {
	case "accept":
		outcome.Decision = domain.DecisionAccepted
		outcome.UserMessage = msgAccepted

	case "review":
		outcome.Decision = domain.DecisionReview
		outcome.UserMessage = reviewMessage(raw.ReasonCode)

	case "error":
		outcome.Decision = domain.DecisionError
		outcome.UserMessage = msgGatewayError

	default:
		// FAILURE and anything unrecognized.
		outcome.Decision = domain.DecisionDeclined
		outcome.UserMessage = declineMessage(raw.ReasonCode)
	}

	return outcome
}

// interpretNVP handles the flat form-POST reply. A non-success ACK scans the
// indexed message fields, longest form first, pairing each with its error
// code.
func interpretNVP(raw *RawResponse) domain.TransactionOutcome {
	ack := strings.ToUpper(raw.Fields["ACK"])

	outcome := domain.TransactionOutcome{
		TransactionID: raw.Fields["TRANSACTIONID"],
		AdminMessage: fmt.Sprintf(
			"gateway ack=%s transaction_id=%s correlation_id=%s",
			raw.Fields["ACK"], raw.Fields["TRANSACTIONID"], raw.Fields["CORRELATIONID"],
		),
	}

	if ack == "SUCCESS" || ack == "SUCCESSWITHWARNING" {
		outcome.Decision = domain.DecisionAccepted
		outcome.UserMessage = msgAccepted
		if warnings := errorMessages(raw.Fields); len(warnings) > 0 {
			outcome.AdminMessage += " warnings: " + strings.Join(warnings, "; ")
		}
		return outcome
	}

	outcome.Decision = domain.DecisionDeclined

	messages := errorMessages(raw.Fields)
	if len(messages) == 0 {
		outcome.UserMessage = msgGenericFailure
		return outcome
	}

	outcome.UserMessage = strings.Join(messages, "; ")
	outcome.AdminMessage += " errors: " + strings.Join(messages, "; ")
	return outcome
}

func errorMessages(fields map[string]string) []string {
	scanned := ScanIndexed(fields, "L_LONGMESSAGE", "L_SHORTMESSAGE", "L_SEVERITYCODE")

	messages := make([]string, 0, len(scanned))
	for n, msg := range scanned {
		code := fields["L_ERRORCODE"+strconv.Itoa(n)]
		messages = append(messages, fmt.Sprintf("%s (Error Code #%s)", msg, code))
	}

	return messages
}
