package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/periodize/internal/api"
	"github.com/claude/periodize/internal/engine"
	"github.com/claude/periodize/internal/microcycle"
	"github.com/claude/periodize/internal/models"
	"github.com/claude/periodize/internal/registry"
)

// HTTPClient implements Planner by calling the periodize REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the engine runs on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies Planner.
var _ Planner = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. An empty
// apiKey sends no X-API-Key header.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, in, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return remoteError(path, resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

// remoteError rebuilds the server's domain error from the code in its error
// body so callers can match it the same way as a local failure.
func remoteError(path string, status int, body []byte) error {
	var e api.ErrorResponse
	if json.Unmarshal(body, &e) != nil || e.Error == "" {
		return fmt.Errorf("httpclient: %s returned %d: %s", path, status, bytes.TrimSpace(body))
	}

	switch e.Code {
	case api.CodeUnknownIdentifier:
		return fmt.Errorf("httpclient: %s returned %d: %w", path, status,
			&registry.ConfigurationError{Kind: "block kind", Identifier: e.Identifier})
	case api.CodeProgramTooLarge:
		return fmt.Errorf("httpclient: %s returned %d: %w (%s)", path, status, engine.ErrProgramTooLarge, e.Error)
	case api.CodeInvalidTrainingDays:
		return fmt.Errorf("httpclient: %s returned %d: %w (%s)", path, status, microcycle.ErrInvalidTrainingDays, e.Error)
	}
	return fmt.Errorf("httpclient: %s returned %d: %s", path, status, e.Error)
}

func (c *HTTPClient) Simulate(ctx context.Context, blocks []string, trainingDays int) (*api.SimulationResponse, error) {
	var resp api.SimulationResponse
	req := api.ProgramRequest{Blocks: blocks, TrainingDaysPerWeek: trainingDays}
	if err := c.do(ctx, http.MethodPost, "/api/v1/simulate", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Compare(ctx context.Context, programs [][]string) (*api.CompareResponse, error) {
	var resp api.CompareResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/simulate/compare", nil, api.CompareRequest{Programs: programs}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Schedule(ctx context.Context, blocks []string) (*api.ScheduleResponse, error) {
	var resp api.ScheduleResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/schedule", nil, api.ProgramRequest{Blocks: blocks}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Registry(ctx context.Context) (*api.RegistryResponse, error) {
	var resp api.RegistryResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/abilities", nil, nil, &resp.Abilities); err != nil {
		return nil, err
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/blocks", nil, nil, &resp.Blocks); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Microcycle(ctx context.Context, trainingDays int) ([]models.DaySession, error) {
	params := url.Values{}
	params.Set("days", strconv.Itoa(trainingDays))

	var sessions []models.DaySession
	if err := c.do(ctx, http.MethodGet, "/api/v1/microcycle", params, nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
