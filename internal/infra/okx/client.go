package okx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"okx_go/internal/domain"
	"okx_go/internal/infra"
)

// Client is the OKX v5 REST API client. It speaks the exchange's uniform
// {code, msg, data} envelope and returns it as-is: business rejections stay
// inside the envelope, only transport and decoding problems become errors.
type Client struct {
	baseURL    string
	httpClient *http.Client
	signer     *Signer
	logger     *slog.Logger
}

// NewClient creates an OKX API client from the application config.
func NewClient(cfg *infra.Config) *Client {
	baseURL := cfg.API.OKX.RestURL
	if baseURL == "" {
		baseURL = BaseURLLive
	}

	signer := NewSigner(
		cfg.API.OKX.APIKey,
		cfg.API.OKX.SecretKey,
		cfg.API.OKX.Passphrase,
		cfg.API.OKX.DemoMode,
	)

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		signer: signer,
		logger: slog.Default().With("module", "okx_client"),
	}
}

// doRequest signs and executes one REST call and decodes the envelope.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any) (*domain.Envelope, error) {
	var bodyReader io.Reader
	var bodyStr string

	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBytes)
		bodyStr = string(jsonBytes)
	}

	queryStr := query.Encode()
	reqURL := c.baseURL + path
	if queryStr != "" {
		reqURL += "?" + queryStr
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, err
	}

	for k, v := range c.signer.SignedHeaders(method, path, queryStr, bodyStr) {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", infra.DefaultUserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		infra.GlobalMetrics.RecordGatewayError()
		return nil, fmt.Errorf("okx request failed: %w", err)
	}
	defer resp.Body.Close()
	infra.GlobalMetrics.RecordGatewayCall(time.Since(start))

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		infra.GlobalMetrics.RecordGatewayError()
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env domain.Envelope
	if err := json.Unmarshal(respBytes, &env); err != nil {
		infra.GlobalMetrics.RecordGatewayError()
		return nil, fmt.Errorf("okx api error: status=%d body=%s", resp.StatusCode, truncate(respBytes, 256))
	}

	if !env.IsOK() {
		c.logger.Warn("OKX rejected request",
			slog.String("path", path),
			slog.String("code", env.Code),
			slog.String("msg", env.Msg),
		)
	}

	return &env, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*domain.Envelope, error) {
	return c.doRequest(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) post(ctx context.Context, path string, body any) (*domain.Envelope, error) {
	return c.doRequest(ctx, http.MethodPost, path, nil, body)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
