package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// SessionHeader carries the opaque session identifier on every
// authenticated request.
const SessionHeader = "X-Session-ID"

// Client talks to the invoice assistant backend. It owns the session
// store and the async job tracker.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Sessions   *SessionStore
	Tracker    *Tracker
}

// New constructs a Client whose persisted state lives in kv.
func New(baseURL string, kv *KV) (*Client, error) {
	sessions, err := NewSessionStore(kv)
	if err != nil {
		return nil, err
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: http.DefaultClient,
		Sessions:   sessions,
		Tracker:    NewTracker(NewRegistry(nil)),
	}, nil
}

// APIError is a non-2xx backend response, carrying the standardized
// error envelope when one was present.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Login authenticates and stores the returned identity durably.
func (c *Client) Login(ctx context.Context, username, password string) (Identity, error) {
	var result struct {
		SessionID string `json:"sessionId"`
		Username  string `json:"username"`
		Role      string `json:"userRole"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", body, &result); err != nil {
		return Identity{}, err
	}
	id := Identity{Username: result.Username, Role: result.Role, SessionID: result.SessionID}
	if err := c.Sessions.set(id); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// Logout revokes the session server-side and clears persisted identity.
// Local state is cleared even if the revoke call fails.
func (c *Client) Logout(ctx context.Context) error {
	reqErr := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if err := c.Sessions.clear(); err != nil {
		return err
	}
	return reqErr
}

// RegionsCountries fetches the region/country hierarchy for dependent
// dropdowns.
func (c *Client) RegionsCountries(ctx context.Context) (RegionLookup, error) {
	var lookup RegionLookup
	err := c.doJSON(ctx, http.MethodGet, "/regions-management/regions-countries", nil, &lookup)
	return lookup, err
}

// Dashboard posts the filter selection to the invoice dashboard endpoint
// and returns the summary payload.
func (c *Client) Dashboard(ctx context.Context, filter FilterState) (json.RawMessage, error) {
	body := map[string]string{}
	for _, p := range filter.Query() {
		body[p.Key] = p.Value
	}
	var raw json.RawMessage
	err := c.doJSON(ctx, http.MethodPost, "/invoice-management/dashboard/filter", body, &raw)
	return raw, err
}

// IncidentAnalytics fetches incident analytics with the given ordered
// query parameters.
func (c *Client) IncidentAnalytics(ctx context.Context, params Params) (json.RawMessage, error) {
	path := "/live-incidents/analytics"
	if q := params.Encode(); q != "" {
		path += "?" + q
	}
	var raw json.RawMessage
	err := c.doJSON(ctx, http.MethodGet, path, nil, &raw)
	return raw, err
}

// Ask sends a question to one of the agent endpoints
// ("/invoice-management/sql-agent" or "/incident-analytics-agent/query").
func (c *Client) Ask(ctx context.Context, endpoint, question string) (string, error) {
	body := map[string]string{
		"question":   question,
		"session_id": c.Sessions.Current().SessionID,
	}
	var result struct {
		Answer   string `json:"answer"`
		Response string `json:"response"`
	}
	if err := c.doJSON(ctx, http.MethodPost, endpoint, body, &result); err != nil {
		return "", err
	}
	if result.Answer != "" {
		return result.Answer, nil
	}
	return result.Response, nil
}

// ChannelURL converts a backend websocket path into a dialable URL.
func (c *Client) ChannelURL(path string) string {
	if strings.HasPrefix(path, "ws://") || strings.HasPrefix(path, "wss://") {
		return path
	}
	base := c.BaseURL
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + path
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) authorize(req *http.Request) {
	if id := c.Sessions.Current(); id.SessionID != "" {
		req.Header.Set(SessionHeader, id.SessionID)
	}
}

func apiError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}
