// Package kite is a thin client for the Zerodha Kite Connect v3 REST API.
// It does exactly one HTTP call per method, maps upstream failures onto
// AuthError/GatewayError and leaves retries and interpretation to callers.
package kite

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultBaseURL = "https://api.kite.trade"
	loginBaseURL   = "https://kite.zerodha.com/connect/login"
	kiteVersion    = "3"
)

// Client talks to the Kite Connect API for a single API key.
type Client struct {
	apiKey     string
	apiSecret  string
	baseURL    string
	httpClient *http.Client

	mu          sync.RWMutex
	accessToken string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Kite Connect client. The client is usable for
// LoginURL and GenerateSession immediately; all other calls need an access
// token first.
func NewClient(apiKey, apiSecret string, opts ...Option) *Client {
	c := &Client{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoginURL returns the Kite login URL the user opens to obtain a request
// token. No network call.
func (c *Client) LoginURL() string {
	return loginBaseURL + "?v=" + kiteVersion + "&api_key=" + url.QueryEscape(c.apiKey)
}

// SetAccessToken replaces the token used for authenticated calls.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

// AccessToken returns the current token, empty if none is set.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// GenerateSession exchanges a request token for an access token. On success
// the returned token is stored on the client, so subsequent calls are
// authenticated.
func (c *Client) GenerateSession(ctx context.Context, requestToken string) (UserSession, error) {
	checksum := sha256.Sum256([]byte(c.apiKey + requestToken + c.apiSecret))

	form := url.Values{}
	form.Set("api_key", c.apiKey)
	form.Set("request_token", requestToken)
	form.Set("checksum", hex.EncodeToString(checksum[:]))

	var session UserSession
	if err := c.doForm(ctx, http.MethodPost, "/session/token", form, &session); err != nil {
		return UserSession{}, err
	}

	c.SetAccessToken(session.AccessToken)
	log.Info().Str("user_id", session.UserID).Msg("Kite session established")
	return session, nil
}

// Profile fetches the account identity.
func (c *Client) Profile(ctx context.Context) (UserProfile, error) {
	var profile UserProfile
	err := c.doGet(ctx, "/user/profile", nil, &profile)
	return profile, err
}

// Holdings fetches the demat holdings.
func (c *Client) Holdings(ctx context.Context) ([]Holding, error) {
	var holdings []Holding
	err := c.doGet(ctx, "/portfolio/holdings", nil, &holdings)
	return holdings, err
}

// Positions fetches the day and net position books.
func (c *Client) Positions(ctx context.Context) (Positions, error) {
	var positions Positions
	err := c.doGet(ctx, "/portfolio/positions", nil, &positions)
	return positions, err
}

// Orders fetches today's order book.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	err := c.doGet(ctx, "/orders", nil, &orders)
	return orders, err
}

// OrderHistory fetches the state trail of a single order.
func (c *Client) OrderHistory(ctx context.Context, orderID string) ([]Order, error) {
	var history []Order
	err := c.doGet(ctx, "/orders/"+url.PathEscape(orderID), nil, &history)
	return history, err
}

// Quote fetches full quotes for instruments like "NSE:HDFCBANK".
func (c *Client) Quote(ctx context.Context, instruments []string) (map[string]Quote, error) {
	query := url.Values{}
	for _, inst := range instruments {
		query.Add("i", inst)
	}

	quotes := map[string]Quote{}
	err := c.doGet(ctx, "/quote", query, &quotes)
	return quotes, err
}

// LTP fetches last traded prices for instruments like "NSE:HDFCBANK".
func (c *Client) LTP(ctx context.Context, instruments []string) (map[string]LTP, error) {
	query := url.Values{}
	for _, inst := range instruments {
		query.Add("i", inst)
	}

	ltps := map[string]LTP{}
	err := c.doGet(ctx, "/quote/ltp", query, &ltps)
	return ltps, err
}

// Margins fetches available funds for all segments.
func (c *Client) Margins(ctx context.Context) (Margins, error) {
	var margins Margins
	err := c.doGet(ctx, "/user/margins", nil, &margins)
	return margins, err
}

// PlaceOrder submits an order under the given variety and returns the
// exchange-assigned order id.
func (c *Client) PlaceOrder(ctx context.Context, variety string, params OrderParams) (string, error) {
	form := url.Values{}
	form.Set("exchange", params.Exchange)
	form.Set("tradingsymbol", params.TradingSymbol)
	form.Set("transaction_type", params.TransactionType)
	form.Set("quantity", strconv.Itoa(params.Quantity))
	form.Set("product", params.Product)
	form.Set("order_type", params.OrderType)
	form.Set("validity", params.Validity)
	if params.Price > 0 {
		form.Set("price", strconv.FormatFloat(params.Price, 'f', -1, 64))
	}
	if params.Tag != "" {
		form.Set("tag", params.Tag)
	}

	var resp struct {
		OrderID string `json:"order_id"`
	}
	if err := c.doForm(ctx, http.MethodPost, "/orders/"+url.PathEscape(variety), form, &resp); err != nil {
		return "", err
	}

	log.Info().
		Str("order_id", resp.OrderID).
		Str("symbol", params.TradingSymbol).
		Str("side", params.TransactionType).
		Str("variety", variety).
		Msg("Order placed")

	return resp.OrderID, nil
}

// CancelOrder cancels a pending order under the given variety.
func (c *Client) CancelOrder(ctx context.Context, variety, orderID string) (string, error) {
	var resp struct {
		OrderID string `json:"order_id"`
	}
	path := "/orders/" + url.PathEscape(variety) + "/" + url.PathEscape(orderID)
	if err := c.doForm(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return "", err
	}

	log.Info().Str("order_id", resp.OrderID).Msg("Order cancelled")
	return resp.OrderID, nil
}

func (c *Client) doGet(ctx context.Context, path string, query url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.send(req, true, out)
}

func (c *Client) doForm(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	// The session exchange is the one form call that authenticates itself.
	needsToken := path != "/session/token"
	return c.send(req, needsToken, out)
}

func (c *Client) send(req *http.Request, needsToken bool, out interface{}) error {
	token := c.AccessToken()
	if needsToken && token == "" {
		return &AuthError{Message: "no access token set"}
	}

	req.Header.Set("X-Kite-Version", kiteVersion)
	if needsToken {
		req.Header.Set("Authorization", "token "+c.apiKey+":"+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &GatewayError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &GatewayError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	var envelope struct {
		Status    string          `json:"status"`
		Message   string          `json:"message"`
		ErrorType string          `json:"error_type"`
		Data      json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &GatewayError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("malformed response: %s", strings.TrimSpace(string(raw)))}
	}

	if envelope.Status != "success" {
		if envelope.ErrorType == "TokenException" || resp.StatusCode == http.StatusForbidden {
			return &AuthError{Message: envelope.Message}
		}
		return &GatewayError{
			StatusCode: resp.StatusCode,
			ErrorType:  envelope.ErrorType,
			Message:    envelope.Message,
		}
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return &GatewayError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to decode response: %v", err)}
		}
	}

	return nil
}
