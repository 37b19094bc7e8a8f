// Package cloud talks to the shared spreadsheet-backed endpoint.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

const (
	tracerName = "github.com/osse101/Pokemonkey_Go/internal/cloud"

	// authFailedLiteral is the JSON string the endpoint returns for bad credentials.
	authFailedLiteral = "AUTH_FAILED"

	maxResponseBytes = 4 << 20
	defaultTimeout   = 15 * time.Second
)

// GET actions understood by the endpoint.
const (
	actionLogin             = "login"
	actionGetGlobalMissions = "getGlobalMissions"
	actionGetActiveUsers    = "getActiveUsers"
	actionGetTeamData       = "getTeamData"
)

// Client calls the remote endpoint. It never retries; callers re-send on
// their next scheduled tick.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTracerProvider sets the provider spans are created from.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer(tracerName) }
}

// NewClient creates a client for the endpoint at baseURL. A zero timeout uses
// the default.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimSpace(baseURL),
		httpClient: &http.Client{Timeout: timeout},
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether an endpoint is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// Login verifies credentials and returns the stored profile.
func (c *Client) Login(ctx context.Context, userID, password string) (domain.Profile, error) {
	userID = NormalizeUserID(userID)
	body, err := c.get(ctx, actionLogin, url.Values{"userId": {userID}, "password": {password}})
	if err != nil {
		return domain.Profile{}, err
	}

	var literal string
	if json.Unmarshal(body, &literal) == nil {
		if literal == authFailedLiteral {
			return domain.Profile{}, domain.ErrAuthFailed
		}
		return domain.Profile{}, fmt.Errorf("%w: unexpected string response", domain.ErrMalformedResponse)
	}

	var wire profileWire
	if err := json.Unmarshal(body, &wire); err != nil || wire.UserID == "" {
		return domain.Profile{}, fmt.Errorf("%w: login response has no userId", domain.ErrMalformedResponse)
	}
	return wire.toDomain(), nil
}

// GlobalMissions returns team-wide mission progress keyed by mission id.
func (c *Client) GlobalMissions(ctx context.Context) (map[string]domain.RemoteMission, error) {
	body, err := c.get(ctx, actionGetGlobalMissions, nil)
	if err != nil {
		return nil, err
	}

	var wire map[string]remoteMissionWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	out := make(map[string]domain.RemoteMission, len(wire))
	for id, m := range wire {
		out[id] = domain.RemoteMission{Status: domain.MissionStatus(strings.ToUpper(m.Status)), Current: float64(m.Current)}
	}
	return out, nil
}

// ActiveUsers returns the foresters currently online.
func (c *Client) ActiveUsers(ctx context.Context) ([]domain.ActiveUser, error) {
	body, err := c.get(ctx, actionGetActiveUsers, nil)
	if err != nil {
		return nil, err
	}

	var wire []activeUserWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	out := make([]domain.ActiveUser, 0, len(wire))
	for _, u := range wire {
		out = append(out, u.toDomain())
	}
	return out, nil
}

// TeamData returns the team leaderboard rows.
func (c *Client) TeamData(ctx context.Context) ([]domain.TeamMember, error) {
	body, err := c.get(ctx, actionGetTeamData, nil)
	if err != nil {
		return nil, err
	}

	var wire []teamMemberWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	out := make([]domain.TeamMember, 0, len(wire))
	for _, m := range wire {
		out = append(out, m.toDomain())
	}
	return out, nil
}

// Post sends a write action. The response body is ignored; only transport
// failures and non-2xx statuses are reported.
func (c *Client) Post(ctx context.Context, payload Payload) error {
	action := payload.ActionName()
	ctx, span := c.tracer.Start(ctx, "cloud.post",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("cloud.action", action)))
	defer span.End()

	if !c.Enabled() {
		return c.fail(span, fmt.Errorf("%w: no endpoint configured", domain.ErrUnavailable))
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return c.fail(span, fmt.Errorf("failed to encode %s payload: %w", action, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return c.fail(span, fmt.Errorf("%w: %v", domain.ErrUnavailable, err))
	}
	// The endpoint reads the raw body as text.
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(span, fmt.Errorf("%w: %v", domain.ErrUnavailable, err))
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(span, fmt.Errorf("%w: %s returned %d", domain.ErrUnavailable, action, resp.StatusCode))
	}
	return nil
}

func (c *Client) get(ctx context.Context, action string, params url.Values) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "cloud.get",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("cloud.action", action)))
	defer span.End()

	if !c.Enabled() {
		return nil, c.fail(span, fmt.Errorf("%w: no endpoint configured", domain.ErrUnavailable))
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, c.fail(span, fmt.Errorf("%w: invalid endpoint url: %v", domain.ErrUnavailable, err))
	}
	q := u.Query()
	q.Set("action", action)
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, c.fail(span, fmt.Errorf("%w: %v", domain.ErrUnavailable, err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(span, fmt.Errorf("%w: %v", domain.ErrUnavailable, err))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(span, fmt.Errorf("%w: %s returned %d", domain.ErrUnavailable, action, resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, c.fail(span, fmt.Errorf("%w: %v", domain.ErrUnavailable, err))
	}
	return body, nil
}

func (c *Client) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// NormalizeUserID applies the endpoint's id convention: trimmed, lower case.
func NormalizeUserID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
