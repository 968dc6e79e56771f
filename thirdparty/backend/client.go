package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadheryan/pos-terminal/cmd/config"
	"github.com/muhammadheryan/pos-terminal/model"
	utilsContext "github.com/muhammadheryan/pos-terminal/utils/context"
	"golang.org/x/time/rate"
)

const (
	productsPath    = "/barang"
	transactionPath = "/transaction"
	loginPath       = "/login"

	headerRequestID = "X-Request-ID"
)

// APIError is a non-2xx answer from the backend. Message is empty when the body
// carried no readable message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the POS REST backend. Catalog reads go through a rate limiter so a
// burst of search keystrokes from many terminals cannot flood the backend.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(cfg *config.Config) (*Client, error) {
	limiter := rate.NewLimiter(rate.Limit(cfg.Backend.FetchRate), cfg.Backend.FetchBurst)
	return New(cfg.Backend.BaseURL, &http.Client{Timeout: cfg.Backend.Timeout}, limiter)
}

// New builds a client; a nil limiter disables rate limiting.
func New(baseURL string, httpClient *http.Client, limiter *rate.Limiter) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend base url %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: u, http: httpClient, limiter: limiter}, nil
}

// FetchProducts calls GET /barang?page=&limit=&search=.
func (c *Client) FetchProducts(ctx context.Context, token string, page, limit int, search string) (*model.ProductPage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	q.Set("search", search)

	var out model.ProductPage
	if err := c.do(ctx, http.MethodGet, productsPath, q.Encode(), token, nil, &out); err != nil {
		return nil, err
	}
	if out.Products == nil {
		out.Products = []model.Product{}
	}
	return &out, nil
}

type transactionEnvelope struct {
	Data struct {
		Transaction model.TransactionReceipt `json:"transaction"`
		Items       []model.ReceiptItem      `json:"items"`
	} `json:"data"`
}

// CreateTransaction calls POST /transaction with one checkout request.
func (c *Client) CreateTransaction(ctx context.Context, token string, req *model.CheckoutRequest) (*model.TransactionReceipt, error) {
	var env transactionEnvelope
	if err := c.do(ctx, http.MethodPost, transactionPath, "", token, req, &env); err != nil {
		return nil, err
	}
	receipt := env.Data.Transaction
	receipt.Items = env.Data.Items
	return &receipt, nil
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login calls POST /login and returns the backend token with its user.
func (c *Client) Login(ctx context.Context, username, password string) (*model.BackendLogin, error) {
	var out model.BackendLogin
	if err := c.do(ctx, http.MethodPost, loginPath, "", "", loginBody{Username: username, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path, rawQuery, token string, body, out interface{}) error {
	u := c.baseURL.JoinPath(path)
	u.RawQuery = rawQuery

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	requestID, ok := utilsContext.GetRequestID(ctx)
	if !ok || requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(headerRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// errorMessage pulls a human message from {"message": ...} or {"error": "..."}.
// Structured validation errors under "error" are not a message.
func errorMessage(raw []byte) string {
	var body struct {
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	for _, field := range []json.RawMessage{body.Message, body.Error} {
		var s string
		if len(field) > 0 && json.Unmarshal(field, &s) == nil && s != "" {
			return s
		}
	}
	return ""
}
