// Package xero implements the outbound accounting port against a Xero-style
// HTTP API: OAuth2 bearer auth with per-tenant organization headers, PascalCase
// envelope payloads, and where-clause exact-match queries.
package xero

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/skipflow/skipflow-go/internal/domain/model"
	apperrors "github.com/skipflow/skipflow-go/internal/errors"
)

const (
	defaultBaseURL = "https://api.xero.com/api.xro/2.0"
	// maxErrorBody bounds how much of an error response is read for diagnostics.
	maxErrorBody = 64 * 1024
)

// Options groups constructor parameters for Client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     *TokenManager
}

// Client talks to the external accounting system. It implements
// core.AccountingClient; every method resolves the tenant's credentials via the
// token manager.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  *TokenManager
	logger  *slog.Logger
}

// NewClient creates a Client.
func NewClient(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   httpc,
		tokens:  opts.Tokens,
		logger:  slog.Default().With("component", "xero_client"),
	}
}

// FindContactsByAccountNumber returns contacts whose account number matches exactly.
func (c *Client) FindContactsByAccountNumber(
	ctx context.Context,
	tenantID, accountNumber string,
) ([]model.Contact, error) {
	query := url.Values{}
	query.Set("where", fmt.Sprintf(`AccountNumber==%s`, quoteWhereValue(accountNumber)))

	var env contactsEnvelope
	if err := c.do(ctx, tenantID, http.MethodGet, "/Contacts", query, nil, &env); err != nil {
		return nil, err
	}
	out := make([]model.Contact, 0, len(env.Contacts))
	for _, wc := range env.Contacts {
		out = append(out, wc.toModel())
	}
	return out, nil
}

// CreateContact creates a contact.
func (c *Client) CreateContact(
	ctx context.Context,
	tenantID string,
	params model.CreateContactParams,
) (*model.Contact, error) {
	body := contactsEnvelope{Contacts: []wireContact{{
		Name:         params.Name,
		EmailAddress: params.Email,
	}}}
	if params.AccountNumber != nil {
		body.Contacts[0].AccountNumber = *params.AccountNumber
	}

	var env contactsEnvelope
	if err := c.do(ctx, tenantID, http.MethodPut, "/Contacts", nil, body, &env); err != nil {
		return nil, err
	}
	if len(env.Contacts) == 0 {
		return nil, apperrors.External("accounting returned no contact after create", nil)
	}
	contact := env.Contacts[0].toModel()
	return &contact, nil
}

// CreateInvoice creates an accounts-receivable invoice with VAT-inclusive lines.
func (c *Client) CreateInvoice(
	ctx context.Context,
	tenantID string,
	params model.CreateInvoiceParams,
) (*model.Invoice, error) {
	inv := wireInvoice{
		Type:            model.InvoiceTypeReceivable,
		Status:          params.Status,
		Reference:       params.Reference,
		Contact:         &wireContact{ContactID: params.ContactID},
		DateString:      params.Date.String(),
		LineAmountTypes: "Inclusive",
	}
	for _, line := range params.Lines {
		inv.LineItems = append(inv.LineItems, toWireLine(line))
	}

	var env invoicesEnvelope
	if err := c.do(ctx, tenantID, http.MethodPut, "/Invoices", nil,
		invoicesEnvelope{Invoices: []wireInvoice{inv}}, &env); err != nil {
		return nil, err
	}
	if len(env.Invoices) == 0 {
		return nil, apperrors.External("accounting returned no invoice after create", nil)
	}
	out := env.Invoices[0].toModel()
	return &out, nil
}

// GetInvoice fetches one invoice by id.
func (c *Client) GetInvoice(ctx context.Context, tenantID, invoiceID string) (*model.Invoice, error) {
	var env invoicesEnvelope
	if err := c.do(ctx, tenantID, http.MethodGet, "/Invoices/"+url.PathEscape(invoiceID), nil, nil, &env); err != nil {
		return nil, err
	}
	if len(env.Invoices) == 0 {
		return nil, apperrors.NotFoundf("invoice %s not found in accounting", invoiceID)
	}
	out := env.Invoices[0].toModel()
	return &out, nil
}

// FindInvoicesByReference returns accounts-receivable invoices whose reference
// matches exactly. Other invoice types never match.
func (c *Client) FindInvoicesByReference(
	ctx context.Context,
	tenantID, reference string,
) ([]model.Invoice, error) {
	query := url.Values{}
	query.Set("where", fmt.Sprintf(
		`Type=="%s" AND Reference==%s`,
		model.InvoiceTypeReceivable, quoteWhereValue(reference),
	))

	var env invoicesEnvelope
	if err := c.do(ctx, tenantID, http.MethodGet, "/Invoices", query, nil, &env); err != nil {
		return nil, err
	}
	out := make([]model.Invoice, 0, len(env.Invoices))
	for _, wi := range env.Invoices {
		out = append(out, wi.toModel())
	}
	return out, nil
}

// AddInvoiceLine appends a line item to an existing invoice. The API replaces
// the line collection wholesale, so the current lines are fetched and resent
// with the new one added.
func (c *Client) AddInvoiceLine(
	ctx context.Context,
	tenantID, invoiceID string,
	line model.InvoiceLine,
) (*model.Invoice, error) {
	current, err := c.GetInvoice(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	update := wireInvoice{InvoiceID: invoiceID, LineAmountTypes: "Inclusive"}
	for _, existing := range current.Lines {
		update.LineItems = append(update.LineItems, toWireLine(existing))
	}
	update.LineItems = append(update.LineItems, toWireLine(line))

	var env invoicesEnvelope
	if err := c.do(ctx, tenantID, http.MethodPost, "/Invoices/"+url.PathEscape(invoiceID), nil,
		invoicesEnvelope{Invoices: []wireInvoice{update}}, &env); err != nil {
		return nil, err
	}
	if len(env.Invoices) == 0 {
		return nil, apperrors.External("accounting returned no invoice after update", nil)
	}
	out := env.Invoices[0].toModel()
	return &out, nil
}

// EmailInvoice asks the accounting system to email the invoice to its contact.
func (c *Client) EmailInvoice(ctx context.Context, tenantID, invoiceID string) error {
	return c.do(ctx, tenantID, http.MethodPost, "/Invoices/"+url.PathEscape(invoiceID)+"/Email", nil,
		struct{}{}, nil)
}

// CreatePayment records a payment against an invoice into the given account.
func (c *Client) CreatePayment(
	ctx context.Context,
	tenantID string,
	params model.CreatePaymentParams,
) (*model.ExternalPayment, error) {
	body := paymentsEnvelope{Payments: []wirePayment{{
		Invoice: &wirePaymentInvoice{InvoiceID: params.InvoiceID},
		Account: &wirePaymentAccount{Code: params.AccountCode},
		Amount:  params.Amount,
		Date:    params.Date.String(),
	}}}

	var env paymentsEnvelope
	if err := c.do(ctx, tenantID, http.MethodPut, "/Payments", nil, body, &env); err != nil {
		return nil, err
	}
	if len(env.Payments) == 0 {
		return nil, apperrors.External("accounting returned no payment after create", nil)
	}
	out := env.Payments[0].toModel()
	return &out, nil
}

// GetAccountByCode looks up one chart-of-accounts entry by its code.
func (c *Client) GetAccountByCode(ctx context.Context, tenantID, code string) (*model.Account, error) {
	query := url.Values{}
	query.Set("where", fmt.Sprintf(`Code==%s`, quoteWhereValue(code)))

	var env accountsEnvelope
	if err := c.do(ctx, tenantID, http.MethodGet, "/Accounts", query, nil, &env); err != nil {
		return nil, err
	}
	if len(env.Accounts) == 0 {
		return nil, apperrors.NotFoundf("account code %s not found in chart of accounts", code)
	}
	out := env.Accounts[0].toModel()
	return &out, nil
}

// do executes one authenticated API call and decodes the response into out.
func (c *Client) do(
	ctx context.Context,
	tenantID, method, path string,
	query url.Values,
	body, out any,
) error {
	creds, err := c.tokens.Credentials(ctx, tenantID)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return fmt.Errorf("marshal request body: %w", marshalErr)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	req.Header.Set("Xero-Tenant-Id", creds.OrgID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return apperrors.External("accounting request failed", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
			return apperrors.External("decode accounting response", decodeErr)
		}
		return nil
	}

	return c.mapErrorResponse(ctx, resp, method, path)
}

// mapErrorResponse translates a non-2xx response into the error taxonomy.
// Remote validation failures surface their concatenated messages; everything
// else is an external error.
func (c *Client) mapErrorResponse(ctx context.Context, resp *http.Response, method, path string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	switch resp.StatusCode {
	case http.StatusBadRequest:
		var ae apiError
		if json.Unmarshal(raw, &ae) == nil {
			if msg := ae.validationMessages(); msg != "" {
				return apperrors.Validationf("accounting rejected the request: %s", msg)
			}
		}
		return apperrors.Validation("accounting rejected the request")
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.External("accounting authorization failed", nil)
	case http.StatusNotFound:
		return apperrors.NotFound("accounting resource not found")
	case http.StatusTooManyRequests:
		return apperrors.External("accounting rate limit exceeded", nil)
	default:
		c.logger.ErrorContext(ctx, "unexpected accounting response",
			"method", method, "path", path, "status", resp.StatusCode, "body", string(raw))
		return apperrors.Externalf("accounting returned status %d", resp.StatusCode)
	}
}

// quoteWhereValue quotes a literal for a where-clause exact match, escaping
// embedded quotes so caller data cannot break out of the expression.
func quoteWhereValue(v string) string {
	escaped := strings.ReplaceAll(v, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}
