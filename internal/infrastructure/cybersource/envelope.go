package cybersource

import (
	"encoding/xml"

	"github.com/prometheusdigital/exchange-addon-cybersource/internal/application"
)

const (
	soapEnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	cybsNS         = "urn:schemas-cybersource-com:transaction-data-1.26"
)

type soapEnvelope struct {
	XMLName xml.Name `xml:"SOAP-ENV:Envelope"`
	SoapNS  string   `xml:"xmlns:SOAP-ENV,attr"`
	CybsNS  string   `xml:"xmlns:ns1,attr"`
	Body    soapBody `xml:"SOAP-ENV:Body"`
}

type soapBody struct {
	RequestMessage requestMessage `xml:"ns1:requestMessage"`
}

type requestMessage struct {
	MerchantID            string        `xml:"ns1:merchantID"`
	MerchantReferenceCode string        `xml:"ns1:merchantReferenceCode"`
	ClientLibrary         string        `xml:"ns1:clientLibrary"`
	ClientLibraryVersion  string        `xml:"ns1:clientLibraryVersion"`
	ClientEnvironment     string        `xml:"ns1:clientEnvironment,omitempty"`
	BillTo                *soapBillTo   `xml:"ns1:billTo,omitempty"`
	Items                 []soapItem    `xml:"ns1:item,omitempty"`
	PurchaseTotals        *soapPurchase `xml:"ns1:purchaseTotals,omitempty"`
	Card                  *soapCard     `xml:"ns1:card,omitempty"`
	CCAuthService         *soapService  `xml:"ns1:ccAuthService,omitempty"`
	CCCaptureService      *soapService  `xml:"ns1:ccCaptureService,omitempty"`
}

type soapService struct {
	Run string `xml:"run,attr"`
}

type soapBillTo struct {
	FirstName   string `xml:"ns1:firstName"`
	LastName    string `xml:"ns1:lastName"`
	Company     string `xml:"ns1:company,omitempty"`
	Street1     string `xml:"ns1:street1,omitempty"`
	Street2     string `xml:"ns1:street2,omitempty"`
	City        string `xml:"ns1:city,omitempty"`
	State       string `xml:"ns1:state,omitempty"`
	PostalCode  string `xml:"ns1:postalCode,omitempty"`
	Country     string `xml:"ns1:country,omitempty"`
	PhoneNumber string `xml:"ns1:phoneNumber,omitempty"`
	Email       string `xml:"ns1:email,omitempty"`
	CustomerID  string `xml:"ns1:customerID,omitempty"`
}

type soapCard struct {
	AccountNumber   string `xml:"ns1:accountNumber"`
	ExpirationMonth string `xml:"ns1:expirationMonth"`
	ExpirationYear  string `xml:"ns1:expirationYear"`
	CVNumber        string `xml:"ns1:cvNumber,omitempty"`
}

type soapItem struct {
	XMLName   xml.Name `xml:"ns1:item"`
	ID        int      `xml:"id,attr"`
	UnitPrice string   `xml:"ns1:unitPrice"`
	Quantity  int      `xml:"ns1:quantity"`
}

type soapPurchase struct {
	Currency         string `xml:"ns1:currency"`
	GrandTotalAmount string `xml:"ns1:grandTotalAmount"`
}

func buildEnvelope(req application.TransactionRequest) soapEnvelope {
	msg := requestMessage{
		MerchantID:            req.MerchantID,
		MerchantReferenceCode: req.ReferenceCode,
		ClientLibrary:         req.Client.Library,
		ClientLibraryVersion:  req.Client.LibraryVersion,
		ClientEnvironment:     req.Client.Environment,
		BillTo: &soapBillTo{
			FirstName:   req.BillTo.FirstName,
			LastName:    req.BillTo.LastName,
			Company:     req.BillTo.Company,
			Street1:     req.BillTo.Street1,
			Street2:     req.BillTo.Street2,
			City:        req.BillTo.City,
			State:       req.BillTo.State,
			PostalCode:  req.BillTo.PostalCode,
			Country:     req.BillTo.Country,
			PhoneNumber: req.BillTo.Phone,
			Email:       req.BillTo.Email,
			CustomerID:  req.BillTo.CustomerID,
		},
		PurchaseTotals: &soapPurchase{
			Currency:         req.Totals.Currency,
			GrandTotalAmount: req.Totals.GrandTotalAmount,
		},
		Card: &soapCard{
			AccountNumber:   req.Card.AccountNumber,
			ExpirationMonth: req.Card.ExpirationMonth,
			ExpirationYear:  req.Card.ExpirationYear,
			CVNumber:        req.Card.CVNumber,
		},
	}

	if req.RunAuth {
		msg.CCAuthService = &soapService{Run: "true"}
	}
	if req.RunCapture {
		msg.CCCaptureService = &soapService{Run: "true"}
	}

	for _, item := range req.Items {
		msg.Items = append(msg.Items, soapItem{
			ID:        item.ID,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	return soapEnvelope{
		SoapNS: soapEnvelopeNS,
		CybsNS: cybsNS,
		Body:   soapBody{RequestMessage: msg},
	}
}

// Response side.

type soapResponseEnvelope struct {
	XMLName xml.Name         `xml:"Envelope"`
	Body    soapResponseBody `xml:"Body"`
}

type soapResponseBody struct {
	ReplyMessage soapReplyMessage `xml:"replyMessage"`
	Fault        *soapFaultBody   `xml:"Fault"`
}

type soapReplyMessage struct {
	MerchantReferenceCode string `xml:"merchantReferenceCode"`
	RequestID             string `xml:"requestID"`
	Decision              string `xml:"decision"`
	ReasonCode            int    `xml:"reasonCode"`
	RequestToken          string `xml:"requestToken"`
}

type soapFaultBody struct {
	FaultCode   string `xml:"faultcode"`
	FaultString string `xml:"faultstring"`
}
