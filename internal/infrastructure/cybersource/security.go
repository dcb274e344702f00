package cybersource

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strings"
)

// DocumentSender transmits a serialized SOAP document and returns the raw
// response body.
type DocumentSender func(ctx context.Context, doc []byte) ([]byte, error)

// wsseHeaderTemplate is the WS-Security UsernameToken header the gateway
// expects. Credentials travel as plaintext inside the envelope and must
// never be logged.
const wsseHeaderTemplate = `<SOAP-ENV:Header xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/" xmlns:wsse="http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd">` +
	`<wsse:Security SOAP-ENV:mustUnderstand="1">` +
	`<wsse:UsernameToken>` +
	`<wsse:Username>%s</wsse:Username>` +
	`<wsse:Password Type="http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordText">%s</wsse:Password>` +
	`</wsse:UsernameToken>` +
	`</wsse:Security>` +
	`</SOAP-ENV:Header>`

// WithUsernameToken wraps a DocumentSender so that the security header is
// injected into each outbound envelope, between the envelope open tag and
// the body, before delegating.
func WithUsernameToken(username, password string, next DocumentSender) DocumentSender {
	header := fmt.Sprintf(wsseHeaderTemplate, xmlEscape(username), xmlEscape(password))

	return func(ctx context.Context, doc []byte) ([]byte, error) {
		injected, err := injectHeader(doc, header)
		if err != nil {
			return nil, err
		}
		return next(ctx, injected)
	}
}

func injectHeader(doc []byte, header string) ([]byte, error) {
	bodyStart := bytes.Index(doc, []byte("<SOAP-ENV:Body"))
	if bodyStart < 0 {
		return nil, fmt.Errorf("envelope has no body element")
	}

	out := make([]byte, 0, len(doc)+len(header))
	out = append(out, doc[:bodyStart]...)
	out = append(out, header...)
	out = append(out, doc[bodyStart:]...)
	return out, nil
}

func xmlEscape(s string) string {
	var sb strings.Builder
	xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
