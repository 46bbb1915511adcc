package xero

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/skipflow/skipflow-go/internal/domain/model"
)

// Wire shapes for the accounting API. The API uses PascalCase envelopes that
// wrap every collection, on writes as well as reads.

type wireContact struct {
	ContactID     string `json:"ContactID,omitempty"`
	Name          string `json:"Name,omitempty"`
	AccountNumber string `json:"AccountNumber,omitempty"`
	EmailAddress  string `json:"EmailAddress,omitempty"`
}

type contactsEnvelope struct {
	Contacts []wireContact `json:"Contacts"`
}

type wireLineItem struct {
	Description string          `json:"Description"`
	Quantity    decimal.Decimal `json:"Quantity"`
	UnitAmount  decimal.Decimal `json:"UnitAmount"`
	AccountCode string          `json:"AccountCode,omitempty"`
}

type wireInvoice struct {
	InvoiceID       string          `json:"InvoiceID,omitempty"`
	InvoiceNumber   string          `json:"InvoiceNumber,omitempty"`
	Type            string          `json:"Type,omitempty"`
	Status          string          `json:"Status,omitempty"`
	Reference       string          `json:"Reference,omitempty"`
	Contact         *wireContact    `json:"Contact,omitempty"`
	DateString      string          `json:"DateString,omitempty"`
	DueDateString   string          `json:"DueDateString,omitempty"`
	LineAmountTypes string          `json:"LineAmountTypes,omitempty"`
	Total           decimal.Decimal `json:"Total"`
	AmountDue       decimal.Decimal `json:"AmountDue"`
	LineItems       []wireLineItem  `json:"LineItems,omitempty"`
}

type invoicesEnvelope struct {
	Invoices []wireInvoice `json:"Invoices"`
}

type wirePaymentInvoice struct {
	InvoiceID string `json:"InvoiceID"`
}

type wirePaymentAccount struct {
	Code string `json:"Code"`
}

type wirePayment struct {
	PaymentID string              `json:"PaymentID,omitempty"`
	Invoice   *wirePaymentInvoice `json:"Invoice,omitempty"`
	Account   *wirePaymentAccount `json:"Account,omitempty"`
	Amount    decimal.Decimal     `json:"Amount"`
	Date      string              `json:"Date,omitempty"`
	Status    string              `json:"Status,omitempty"`
}

type paymentsEnvelope struct {
	Payments []wirePayment `json:"Payments"`
}

type wireAccount struct {
	AccountID string `json:"AccountID,omitempty"`
	Code      string `json:"Code,omitempty"`
	Name      string `json:"Name,omitempty"`
	Type      string `json:"Type,omitempty"`
	Status    string `json:"Status,omitempty"`
}

type accountsEnvelope struct {
	Accounts []wireAccount `json:"Accounts"`
}

// apiError is the error payload shape: a top-level message plus per-element
// validation messages on 400 responses.
type apiError struct {
	Type     string `json:"Type"`
	Message  string `json:"Message"`
	Elements []struct {
		ValidationErrors []struct {
			Message string `json:"Message"`
		} `json:"ValidationErrors"`
	} `json:"Elements"`
}

// validationMessages flattens every remote validation message into one string.
func (e apiError) validationMessages() string {
	var msgs []string
	for _, el := range e.Elements {
		for _, ve := range el.ValidationErrors {
			if ve.Message != "" {
				msgs = append(msgs, ve.Message)
			}
		}
	}
	if len(msgs) == 0 && e.Message != "" {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

func (c wireContact) toModel() model.Contact {
	out := model.Contact{ID: c.ContactID, Name: c.Name}
	if c.AccountNumber != "" {
		v := c.AccountNumber
		out.AccountNumber = &v
	}
	if c.EmailAddress != "" {
		v := c.EmailAddress
		out.Email = &v
	}
	return out
}

func (i wireInvoice) toModel() model.Invoice {
	out := model.Invoice{
		ID:        i.InvoiceID,
		Number:    i.InvoiceNumber,
		Type:      i.Type,
		Status:    i.Status,
		Reference: i.Reference,
		Total:     i.Total,
		AmountDue: i.AmountDue,
	}
	if i.Contact != nil {
		out.ContactID = i.Contact.ContactID
	}
	if d, err := model.ParseDate(strings.SplitN(i.DateString, "T", 2)[0]); err == nil {
		out.Date = d
	}
	if i.DueDateString != "" {
		if d, err := model.ParseDate(strings.SplitN(i.DueDateString, "T", 2)[0]); err == nil {
			out.DueDate = &d
		}
	}
	for _, li := range i.LineItems {
		out.Lines = append(out.Lines, model.InvoiceLine{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitAmount:  li.UnitAmount,
			AccountCode: li.AccountCode,
		})
	}
	return out
}

func (p wirePayment) toModel() model.ExternalPayment {
	out := model.ExternalPayment{ID: p.PaymentID, Amount: p.Amount}
	if p.Invoice != nil {
		out.InvoiceID = p.Invoice.InvoiceID
	}
	if p.Account != nil {
		out.AccountCode = p.Account.Code
	}
	if d, err := model.ParseDate(strings.SplitN(p.Date, "T", 2)[0]); err == nil {
		out.Date = d
	}
	return out
}

func (a wireAccount) toModel() model.Account {
	return model.Account{ID: a.AccountID, Code: a.Code, Name: a.Name, Type: a.Type}
}

func toWireLine(line model.InvoiceLine) wireLineItem {
	return wireLineItem{
		Description: line.Description,
		Quantity:    line.Quantity,
		UnitAmount:  line.UnitAmount,
		AccountCode: line.AccountCode,
	}
}
