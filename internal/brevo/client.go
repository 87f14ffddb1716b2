package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"brevo-connector/internal/config"

	"go.uber.org/zap"
)

// Client talks to the Brevo v3 REST API. All calls go through a
// check-and-sleep gate that keeps at least MinInterval between
// requests, since the remote API rate-limits aggressively.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	minInterval time.Duration
	log         *zap.Logger

	mu          sync.Mutex
	lastRequest time.Time
}

func NewClient(cfg *config.Config, log *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     cfg.BrevoBaseURL,
		apiKey:      cfg.BrevoAPIKey,
		minInterval: cfg.BrevoMinInterval,
		log:         log,
	}
}

// throttle blocks until at least minInterval has passed since the
// previous request left.
func (c *Client) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lastRequest.IsZero() {
		if wait := c.minInterval - time.Since(c.lastRequest); wait > 0 {
			time.Sleep(wait)
		}
	}
	c.lastRequest = time.Now()
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	c.throttle()

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewBuffer(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("brevo request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Reason: http.StatusText(resp.StatusCode)}
		var remote struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &remote) == nil && remote.Message != "" {
			apiErr.Code = remote.Code
			apiErr.Reason = remote.Message
		}
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// FetchContacts returns one page of contacts. Pass a zero modifiedSince
// to fetch without a time filter. Callers stop paging when a page comes
// back smaller than the requested limit.
func (c *Client) FetchContacts(ctx context.Context, limit, offset int, modifiedSince time.Time) ([]Contact, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	if !modifiedSince.IsZero() {
		q.Set("modifiedSince", modifiedSince.UTC().Format(time.RFC3339))
	}

	var out struct {
		Contacts []Contact `json:"contacts"`
		Count    int64     `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/contacts?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Contacts, nil
}

// GetContact fetches a single contact by remote id or email.
func (c *Client) GetContact(ctx context.Context, idOrEmail string) (*Contact, error) {
	var out Contact
	if err := c.do(ctx, http.MethodGet, "/contacts/"+url.PathEscape(idOrEmail), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PushContact creates or updates a contact remotely and returns its
// remote id. With a known remoteID the contact is updated in place;
// otherwise it is created with updateEnabled so an existing address is
// merged instead of rejected.
func (c *Client) PushContact(ctx context.Context, email string, attributes map[string]interface{}, listIDs []int64, remoteID string) (string, error) {
	payload := map[string]interface{}{
		"email":      email,
		"attributes": attributes,
	}
	if len(listIDs) > 0 {
		payload["listIds"] = listIDs
	}

	if remoteID != "" {
		if err := c.do(ctx, http.MethodPut, "/contacts/"+url.PathEscape(remoteID), payload, nil); err != nil {
			return "", err
		}
		return remoteID, nil
	}

	payload["updateEnabled"] = true
	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/contacts", payload, &out); err != nil {
		return "", err
	}
	if out.ID != 0 {
		return strconv.FormatInt(out.ID, 10), nil
	}

	// A merged update returns no body; look the id up by address.
	existing, err := c.GetContact(ctx, email)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(existing.ID, 10), nil
}

// DeleteContact removes a contact remotely.
func (c *Client) DeleteContact(ctx context.Context, remoteID string) error {
	return c.do(ctx, http.MethodDelete, "/contacts/"+url.PathEscape(remoteID), nil, nil)
}

// FetchLists returns one page of contact lists.
func (c *Client) FetchLists(ctx context.Context, limit, offset int) ([]List, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var out struct {
		Lists []List `json:"lists"`
		Count int64  `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/contacts/lists?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Lists, nil
}

// FetchAttributes returns the contact attributes defined on the remote
// account. Used by field discovery.
func (c *Client) FetchAttributes(ctx context.Context) ([]Attribute, error) {
	var out struct {
		Attributes []Attribute `json:"attributes"`
	}
	if err := c.do(ctx, http.MethodGet, "/contacts/attributes", nil, &out); err != nil {
		return nil, err
	}
	return out.Attributes, nil
}

// TestConnection verifies the API key by reading the account profile.
func (c *Client) TestConnection(ctx context.Context) (string, error) {
	var out struct {
		Email       string `json:"email"`
		CompanyName string `json:"companyName"`
	}
	if err := c.do(ctx, http.MethodGet, "/account", nil, &out); err != nil {
		return "", err
	}
	if out.CompanyName != "" {
		return out.CompanyName, nil
	}
	return out.Email, nil
}
