package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenSource menyediakan bearer token saat ini, bila ada.
type TokenSource interface {
	Get() (string, error)
}

// Client mengenkapsulasi pemanggilan ke backend kurikulum.
// Tidak ada retry, tidak ada cache: setiap panggilan adalah satu round-trip.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
}

// Config mendeskripsikan kebutuhan dasar klien.
type Config struct {
	BaseURL string
	Tokens  TokenSource
	Timeout time.Duration
}

// New membuat klien baru terhadap base URL yang diberikan.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("api: base url wajib diisi")
	}
	if cfg.Tokens == nil {
		return nil, errors.New("api: token source wajib diisi")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    base,
		tokens:     cfg.Tokens,
	}, nil
}

// Get mengirim GET dan mendekode body sukses ke out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// Post mengirim POST dengan body JSON.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// Patch mengirim PATCH dengan body JSON parsial.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	req, err := c.newRequest(ctx, http.MethodPatch, path, body)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// Delete mengirim DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	endpoint := c.baseURL + path

	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		req, err = http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
	} else {
		var err error
		req, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
		if err != nil {
			return nil, err
		}
	}

	// Tanpa token, header dihilangkan begitu saja; server yang memutuskan.
	tok, err := c.tokens.Get()
	if err == nil && tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindServerFault, Status: resp.StatusCode, Detail: "body respons tidak dapat didekode", err: err}
	}
	return nil
}

func errorFromResponse(resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		apiErr.Kind = KindUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case resp.StatusCode >= 500:
		apiErr.Kind = KindServerFault
	default:
		apiErr.Kind = KindValidation
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(body) == 0 {
		apiErr.Detail = resp.Status
		return apiErr
	}

	// Backend memakai bentuk {"detail": "..."}; body lain diteruskan mentah.
	var payload struct {
		Detail string `json:"detail"`
	}
	if jsonErr := json.Unmarshal(body, &payload); jsonErr == nil && payload.Detail != "" {
		apiErr.Detail = payload.Detail
	} else {
		apiErr.Detail = strings.TrimSpace(string(body))
	}
	return apiErr
}
