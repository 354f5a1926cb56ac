// Package api implements the authenticated MoneyLover gateway: the token
// lifecycle (login, restore, silent refresh) and the POST-only resource
// calls layered on it. All I/O is sequential and blocking; the only state
// is the Session value callers pass into each call.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"moneylover/internal/core"
)

const (
	defaultAPIBaseURL   = "https://web.moneylover.me/api"
	defaultOAuthBaseURL = "https://oauth.moneylover.me"
	defaultUserAgent    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.14; rv:66.0) Gecko/20100101 Firefox/66.0"
	defaultTimeout      = 30 * time.Second

	dateLayout = "2006-01-02"
)

// Options configures a Client. Zero values fall back to the production
// endpoints and a bounded default timeout.
type Options struct {
	APIBaseURL   string
	OAuthBaseURL string
	UserAgent    string
	Timeout      time.Duration

	// HTTPClient overrides the underlying HTTP client, mainly for tests.
	HTTPClient *http.Client
}

func (o Options) withDefaults() Options {
	if o.APIBaseURL == "" {
		o.APIBaseURL = defaultAPIBaseURL
	}
	if o.OAuthBaseURL == "" {
		o.OAuthBaseURL = defaultOAuthBaseURL
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return o
}

// Client talks to the MoneyLover service. It holds no credential state;
// a Session is passed into every authenticated call.
type Client struct {
	transport    *transport
	apiBaseURL   string
	oauthBaseURL string
}

func NewClient(opts Options) *Client {
	opts = opts.withDefaults()
	return &Client{
		transport:    newTransport(opts.HTTPClient, opts.UserAgent, opts.Timeout),
		apiBaseURL:   opts.APIBaseURL,
		oauthBaseURL: opts.OAuthBaseURL,
	}
}

// tokenResponse is the shape both the token and refresh-token endpoints
// reply with.
type tokenResponse struct {
	Status       bool   `json:"status"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Expire       int64  `json:"expire"`
}

// Login authenticates with email and password. It first requests the
// login-intent resource to obtain a short-lived request token and the
// client id embedded in the login URL's query string, then exchanges the
// credentials plus request token for an access/refresh pair.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	s := &Session{state: StateAuthenticating}

	raw, err := c.transport.postForm(ctx, c.apiBaseURL+"/user/login-url", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("login intent: %w", err)
	}
	data, err := decodeEnvelope(raw)
	if err != nil {
		return nil, fmt.Errorf("login intent: %w", err)
	}

	var intent struct {
		RequestToken string `json:"request_token"`
		LoginURL     string `json:"login_url"`
	}
	if err := json.Unmarshal(data, &intent); err != nil {
		return nil, &AuthError{Message: "malformed login intent response: " + err.Error()}
	}
	if intent.RequestToken == "" {
		return nil, &AuthError{Message: "login intent carried no request token"}
	}

	loginURL, err := url.Parse(intent.LoginURL)
	if err != nil {
		return nil, &AuthError{Message: "malformed login url: " + err.Error()}
	}
	clientID := loginURL.Query().Get("client")
	if clientID == "" {
		return nil, &AuthError{Message: "login url carried no client id"}
	}

	body := map[string]string{"email": email, "password": password}
	headers := map[string]string{
		"Authorization": "Bearer " + intent.RequestToken,
		"Client":        clientID,
	}
	raw, err = c.transport.postJSON(ctx, c.oauthBaseURL+"/token", body, headers)
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}

	var tok tokenResponse
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, &AuthError{Message: "malformed token response: " + err.Error()}
	}
	if !tok.Status || tok.AccessToken == "" || tok.RefreshToken == "" {
		return nil, &AuthError{Code: tok.Code, Message: tok.Message}
	}

	s.AccessToken = tok.AccessToken
	s.RefreshToken = tok.RefreshToken
	s.ClientID = clientID
	if tok.Expire > 0 {
		s.ExpiresAt = time.Unix(tok.Expire, 0)
	}
	s.state = StateActive

	slog.InfoContext(ctx, "logged in", "client_id", clientID, "expires_at", s.ExpiresAt)
	return s, nil
}

// Refresh exchanges the refresh token for a new access/refresh pair and
// expiry. A structured rejection of the refresh token marks the session
// Invalid and returns an AuthError; only a fresh login recovers from that.
// Transport failures pass through unchanged and may be retried by the
// caller.
func (c *Client) Refresh(ctx context.Context, s *Session) error {
	headers := map[string]string{
		"Authorization": "Bearer " + s.RefreshToken,
		"Client":        s.ClientID,
	}
	raw, err := c.transport.postJSON(ctx, c.oauthBaseURL+"/refresh-token", map[string]string{}, headers)
	if err != nil {
		return fmt.Errorf("refresh token: %w", err)
	}

	var tok tokenResponse
	if err := json.Unmarshal(raw, &tok); err != nil {
		return &AuthError{Message: "malformed refresh response: " + err.Error()}
	}
	if !tok.Status || tok.AccessToken == "" {
		s.state = StateInvalid
		return &AuthError{Code: tok.Code, Message: tok.Message}
	}

	s.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		s.RefreshToken = tok.RefreshToken
	}
	if tok.Expire > 0 {
		s.ExpiresAt = time.Unix(tok.Expire, 0)
	}
	s.state = StateActive

	slog.InfoContext(ctx, "access token refreshed", "client_id", s.ClientID, "expires_at", s.ExpiresAt)
	return nil
}

// Call issues an authenticated POST to the given resource path and returns
// the envelope's data field. The session flips to Expired when the service
// reports the device/token-not-found condition.
func (c *Client) Call(ctx context.Context, s *Session, path string, form url.Values) (json.RawMessage, error) {
	headers := map[string]string{"Authorization": "AuthJWT " + s.AccessToken}
	raw, err := c.transport.postForm(ctx, c.apiBaseURL+path, form, headers)
	if err != nil {
		return nil, err
	}
	data, err := decodeEnvelope(raw)
	if errors.Is(err, ErrSessionExpired) {
		s.markExpired()
	}
	return data, err
}

// GetUserInfo retrieves the logged in user.
func (c *Client) GetUserInfo(ctx context.Context, s *Session) (core.UserInfo, error) {
	data, err := c.Call(ctx, s, "/user/info", nil)
	if err != nil {
		return core.UserInfo{}, err
	}
	m, err := core.ParseObject(data)
	if err != nil {
		return core.UserInfo{}, err
	}
	return core.DecodeUserInfo(m), nil
}

// GetWallets retrieves every wallet visible to the session.
func (c *Client) GetWallets(ctx context.Context, s *Session) ([]core.Wallet, error) {
	data, err := c.Call(ctx, s, "/wallet/list", nil)
	if err != nil {
		return nil, err
	}
	items, err := core.ParseArray(data)
	if err != nil {
		return nil, err
	}
	wallets := make([]core.Wallet, 0, len(items))
	for _, m := range items {
		wallets = append(wallets, core.DecodeWallet(m))
	}
	return wallets, nil
}

// GetCategories retrieves the categories of one wallet.
func (c *Client) GetCategories(ctx context.Context, s *Session, walletID string) ([]core.Category, error) {
	form := url.Values{}
	form.Set("walletId", walletID)
	data, err := c.Call(ctx, s, "/category/list", form)
	if err != nil {
		return nil, err
	}
	items, err := core.ParseArray(data)
	if err != nil {
		return nil, err
	}
	categories := make([]core.Category, 0, len(items))
	for _, m := range items {
		cat, err := core.DecodeCategory(m)
		if err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, nil
}

// GetTransactions retrieves the transactions of one wallet within the
// inclusive date range, formatted as YYYY-MM-DD on the wire. The service
// wraps the result under a transactions key; anything but a list there is
// a DecodeError.
func (c *Client) GetTransactions(ctx context.Context, s *Session, walletID string, startDate, endDate time.Time) ([]core.Transaction, error) {
	form := url.Values{}
	form.Set("walletId", walletID)
	form.Set("startDate", startDate.Format(dateLayout))
	form.Set("endDate", endDate.Format(dateLayout))
	data, err := c.Call(ctx, s, "/transaction/list", form)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Transactions json.RawMessage `json:"transactions"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, &core.DecodeError{Entity: "transaction list", Reason: err.Error()}
	}
	items, err := core.ParseArray(wrapper.Transactions)
	if err != nil {
		return nil, &core.DecodeError{Entity: "transaction list", Key: "transactions", Reason: "not a list of objects"}
	}

	txs := make([]core.Transaction, 0, len(items))
	for _, m := range items {
		tx, err := core.DecodeTransaction(m)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// AddTransaction submits a new transaction using the transInfo dialect:
// the input is JSON-encoded into a single form field.
func (c *Client) AddTransaction(ctx context.Context, s *Session, t core.TransactionInput) (map[string]any, error) {
	encoded, err := t.EncodeJSON()
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}
	form := url.Values{}
	form.Set("transInfo", encoded)
	return c.addTransaction(ctx, s, form)
}

// AddTransactionForm submits a new transaction using the flat form dialect
// some deployments of the add endpoint expect instead of transInfo.
func (c *Client) AddTransactionForm(ctx context.Context, s *Session, t core.TransactionInput) (map[string]any, error) {
	return c.addTransaction(ctx, s, t.EncodeForm())
}

func (c *Client) addTransaction(ctx context.Context, s *Session, form url.Values) (map[string]any, error) {
	data, err := c.Call(ctx, s, "/transaction/add", form)
	if err != nil {
		return nil, err
	}
	return core.ParseObject(data)
}
