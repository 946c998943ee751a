// Package client is a typed API client for the sweet shop service. Session
// state is injected through the constructor rather than held in package
// globals, and the bearer token is attached to outgoing requests in exactly
// one place.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Sweet mirrors the server's catalog item JSON.
type Sweet struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SweetDraft is the create payload; Price is required by the server.
type SweetDraft struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity,omitempty"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// SweetPatch carries only the fields to change.
type SweetPatch struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

// SearchFilter holds the catalog search parameters; zero values are omitted.
type SearchFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

// APIError is a non-2xx server response. Available is set on insufficient
// stock responses.
type APIError struct {
	Status    int
	Message   string
	Available *int
}

func (e *APIError) Error() string {
	if e.Available != nil {
		return fmt.Sprintf("server returned %d: %s (available: %d)", e.Status, e.Message, *e.Available)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client talks to the sweet shop API.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenStore
	session *Session
}

// New builds a client. A token left behind in the store resumes a session
// with an unknown account view until the next register/login fills it in.
func New(baseURL string, tokens TokenStore) (*Client, error) {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		tokens:  tokens,
	}
	token, err := tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load stored token: %w", err)
	}
	if token != "" {
		c.session = &Session{Token: token}
	}
	return c, nil
}

// Session returns the current session; nil means guest.
func (c *Client) Session() *Session {
	return c.session
}

// do builds and executes one request. Every outgoing request passes through
// here, so the Authorization header is attached in a single place.
func (c *Client) do(method, path string, query url.Values, body any, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequest(method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error     string `json:"error"`
			Available *int   `json:"available"`
		}
		apiErr := &APIError{Status: resp.StatusCode, Message: "Something went wrong"}
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
			apiErr.Available = errBody.Available
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

type authResponse struct {
	Token string  `json:"token"`
	User  Account `json:"user"`
}

func (c *Client) startSession(resp authResponse) (*Session, error) {
	c.session = &Session{Token: resp.Token, User: resp.User}
	if err := c.tokens.Save(resp.Token); err != nil {
		return nil, fmt.Errorf("failed to persist token: %w", err)
	}
	return c.session, nil
}

// Register creates an account and signs in.
func (c *Client) Register(input RegisterInput) (*Session, error) {
	var resp authResponse
	if err := c.do(http.MethodPost, "/api/auth/register", nil, input, &resp); err != nil {
		return nil, err
	}
	return c.startSession(resp)
}

// Login signs in with email and password.
func (c *Client) Login(email, password string) (*Session, error) {
	var resp authResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(http.MethodPost, "/api/auth/login", nil, body, &resp); err != nil {
		return nil, err
	}
	return c.startSession(resp)
}

// Logout drops the session and the stored token.
func (c *Client) Logout() error {
	c.session = nil
	return c.tokens.Clear()
}

// Health checks that the server is up.
func (c *Client) Health() error {
	return c.do(http.MethodGet, "/api/health", nil, nil, nil)
}

func (c *Client) GetAllSweets() ([]Sweet, error) {
	var sweets []Sweet
	if err := c.do(http.MethodGet, "/api/sweets", nil, nil, &sweets); err != nil {
		return nil, err
	}
	return sweets, nil
}

func (c *Client) SearchSweets(filter SearchFilter) ([]Sweet, error) {
	query := url.Values{}
	if filter.Name != "" {
		query.Set("name", filter.Name)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.MinPrice != nil {
		query.Set("minPrice", strconv.FormatFloat(*filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice != nil {
		query.Set("maxPrice", strconv.FormatFloat(*filter.MaxPrice, 'f', -1, 64))
	}

	var sweets []Sweet
	if err := c.do(http.MethodGet, "/api/sweets/search", query, nil, &sweets); err != nil {
		return nil, err
	}
	return sweets, nil
}

func (c *Client) CreateSweet(draft SweetDraft) (Sweet, error) {
	var sweet Sweet
	if err := c.do(http.MethodPost, "/api/sweets", nil, draft, &sweet); err != nil {
		return Sweet{}, err
	}
	return sweet, nil
}

func (c *Client) UpdateSweet(id int, patch SweetPatch) (Sweet, error) {
	var sweet Sweet
	if err := c.do(http.MethodPut, fmt.Sprintf("/api/sweets/%d", id), nil, patch, &sweet); err != nil {
		return Sweet{}, err
	}
	return sweet, nil
}

func (c *Client) DeleteSweet(id int) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/sweets/%d", id), nil, nil, nil)
}

type stockResponse struct {
	Message string `json:"message"`
	Sweet   Sweet  `json:"sweet"`
}

// PurchaseSweet buys quantity units. The server treats an absent quantity
// as 1, so callers wanting the default pass 1 explicitly; anything below
// that is a caller bug and is rejected before a request goes out.
func (c *Client) PurchaseSweet(id, quantity int) (Sweet, error) {
	if quantity < 1 {
		return Sweet{}, fmt.Errorf("purchase quantity must be at least 1, got %d", quantity)
	}
	var resp stockResponse
	body := map[string]int{"quantity": quantity}
	if err := c.do(http.MethodPost, fmt.Sprintf("/api/sweets/%d/purchase", id), nil, body, &resp); err != nil {
		return Sweet{}, err
	}
	return resp.Sweet, nil
}

func (c *Client) RestockSweet(id, quantity int) (Sweet, error) {
	var resp stockResponse
	body := map[string]int{"quantity": quantity}
	if err := c.do(http.MethodPost, fmt.Sprintf("/api/sweets/%d/restock", id), nil, body, &resp); err != nil {
		return Sweet{}, err
	}
	return resp.Sweet, nil
}
