// Package eurofaktura is a minimal client for the EuroFaktura web API.
//
// The API exposes a single RPC-over-POST surface: every call is a JSON
// envelope {username, secretKey, token, method, parameters} and every reply
// is {response: {status, description?, result?}}. The client performs no
// retries; a scheduled batch run either succeeds or fails whole, and the
// next scheduled invocation is the retry mechanism.
package eurofaktura

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"efarchive/internal/logger"
	"efarchive/internal/storage"
)

const (
	// methodSalesInvoiceList lists sales invoices issued after a timestamp.
	methodSalesInvoiceList = "SalesInvoiceList"

	// statusIssued filters the listing to issued documents only.
	statusIssued = "IssuedInvoice"

	// noDocumentsSentinel marks the error-shaped response the API returns
	// when the query simply matched nothing. It is success, not failure.
	noDocumentsSentinel = "no documents found"

	rawResponseFile = "last_response.txt"
	errorFile       = "error.json"
)

// Invoice is a single invoice record as returned by the API. The schema is
// externally defined and loosely structured, so records stay generic maps
// and field access goes through the fieldmap package.
type Invoice = map[string]any

// envelope is the request body for every API call.
type envelope struct {
	Username string `json:"username"`
	// SecretKey may be empty, but the remote schema requires the field to
	// be present, so it is never omitted.
	SecretKey  string `json:"secretKey"`
	Token      string `json:"token"`
	Method     string `json:"method"`
	Parameters any    `json:"parameters"`
}

// response is the outer shape of every API reply.
type response struct {
	Response struct {
		Status      string `json:"status"`
		Description string `json:"description"`
		Result      any    `json:"result"`
	} `json:"response"`
}

// listParameters are the recognized parameters of SalesInvoiceList.
type listParameters struct {
	IssuedTimestampFrom string `json:"issuedTimestampFrom"`
	Status              string `json:"status"`
}

// Client calls the EuroFaktura API and persists raw responses for diagnosis.
type Client struct {
	endpoint   string
	username   string
	secretKey  string
	token      string
	httpClient *http.Client
	store      storage.Store
	log        zerolog.Logger
}

// NewClient creates a client. store receives a snapshot of every raw
// response body; pass nil to disable snapshotting (tests).
func NewClient(endpoint, username, secretKey, token string, store storage.Store) *Client {
	return &Client{
		endpoint:   endpoint,
		username:   username,
		secretKey:  secretKey,
		token:      token,
		httpClient: http.DefaultClient,
		store:      store,
		log:        logger.WithComponent("eurofaktura"),
	}
}

// ListIssuedInvoices returns all issued invoices with issuedTimestamp at or
// after issuedFrom ("2006-01-02 15:04:05", API-side semantics inclusive).
// The remote's "no documents found" rejection is returned as an empty slice.
func (c *Client) ListIssuedInvoices(ctx context.Context, issuedFrom string) ([]Invoice, error) {
	result, err := c.call(ctx, methodSalesInvoiceList, listParameters{
		IssuedTimestampFrom: issuedFrom,
		Status:              statusIssued,
	})
	if err != nil {
		return nil, err
	}

	list, ok := result.([]any)
	if !ok {
		// A successful reply without a list result means nothing matched.
		return nil, nil
	}

	invoices := make([]Invoice, 0, len(list))
	for _, entry := range list {
		if inv, ok := entry.(map[string]any); ok {
			invoices = append(invoices, inv)
		}
	}
	return invoices, nil
}

// call posts one envelope and returns the response result on status "ok".
func (c *Client) call(ctx context.Context, method string, parameters any) (any, error) {
	payload, err := json.Marshal(envelope{
		Username:   c.username,
		SecretKey:  c.secretKey,
		Token:      c.token,
		Method:     method,
		Parameters: parameters,
	})
	if err != nil {
		return nil, &CallError{Method: method, Err: fmt.Errorf("%w: marshal request: %v", ErrTransport, err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &CallError{Method: method, Err: fmt.Errorf("%w: %v", ErrTransport, err)}
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().
		Str("method", method).
		Str("endpoint", c.endpoint).
		Msg("Calling EuroFaktura API")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &CallError{Method: method, Err: fmt.Errorf("%w: %v", ErrTransport, err)}
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			c.log.Warn().Err(closeErr).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &CallError{Method: method, Err: fmt.Errorf("%w: read body: %v", ErrTransport, err)}
	}

	// Persist the raw body before any parsing so a malformed reply can
	// still be inspected after the run fails.
	c.snapshot(rawResponseFile, body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &CallError{Method: method, Err: fmt.Errorf("%w: HTTP %d", ErrTransport, res.StatusCode)}
	}

	var reply response
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, &CallError{Method: method, Err: fmt.Errorf("%w: non-JSON body: %v", ErrTransport, err)}
	}

	if reply.Response.Status != "ok" {
		description := reply.Response.Description
		if strings.Contains(strings.ToLower(description), noDocumentsSentinel) {
			c.log.Info().
				Str("method", method).
				Str("description", description).
				Msg("Remote reported no documents; treating as empty result")
			return nil, nil
		}

		if pretty, err := json.MarshalIndent(json.RawMessage(body), "", "  "); err == nil {
			c.snapshot(errorFile, pretty)
		}

		c.log.Error().
			Str("method", method).
			Str("status", reply.Response.Status).
			Str("description", description).
			Msg("EuroFaktura API rejected the request")
		return nil, &CallError{Method: method, Description: description, Err: ErrAPIRejected}
	}

	return reply.Response.Result, nil
}

func (c *Client) snapshot(name string, data []byte) {
	if c.store == nil {
		return
	}
	if err := c.store.WriteFile(name, data); err != nil {
		c.log.Warn().Err(err).Str("file", name).Msg("Failed to persist raw response snapshot")
	}
}
