// Package relayer is the HTTP client for the off-chain relayer that executes
// state-changing transactions on behalf of signed payloads. It distinguishes
// transport failures (returned as errs.NetworkError) from API-level
// rejections (normalized into model.Result with Success=false, relayer error
// body preserved verbatim) and never panics or throws for the latter.
package relayer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/unifiedid/unifiedid-sdk-go/pkg/errs"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/model"
)

// Relayer action discriminators, one per operation. Each doubles as the POST
// path segment.
const (
	ActionRegister        = "register"
	ActionAddSecondary    = "addSecondary"
	ActionRemoveSecondary = "removeSecondary"
	ActionChangePrimary   = "changePrimary"
	ActionUpdateUnifiedID = "updateUnifiedId"
)

// Client posts assembled payloads to the relayer and normalizes responses.
type Client struct {
	baseURL   string
	authToken string
	http      *http.Client
}

// New builds a relayer client for the given base URL and bearer token.
// timeout bounds each round trip; zero means 30 seconds.
func New(baseURL, authToken string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		authToken: authToken,
		http:      &http.Client{Timeout: timeout},
	}
}

// Submit posts a payload to the action's endpoint. payload must already carry
// the action discriminator; it is marshaled verbatim. A non-2xx response is
// not an error: the relayer's body is preserved in the returned Result.
func (c *Client) Submit(ctx context.Context, action string, payload any) (model.Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return model.Result{}, errs.NewValidation("payload", err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+action, bytes.NewReader(body))
	if err != nil {
		return model.Result{}, errs.NewValidation("request", err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return model.Result{}, &errs.NetworkError{Op: action, Err: err}
	}
	defer func(Body io.ReadCloser) {
		if cerr := Body.Close(); cerr != nil {
			zap.L().Error("failed to close relayer response body", zap.Error(cerr))
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Result{}, &errs.NetworkError{Op: action, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &errs.APIError{Endpoint: action, Status: resp.StatusCode, Body: raw}
		zap.L().Debug("relayer rejected operation", zap.String("action", action),
			zap.Int("status", resp.StatusCode))
		return normalizeFailure(apiErr, raw), nil
	}

	return normalizeAccepted(raw), nil
}

// normalizeAccepted folds a 2xx body into a Result. A success field must be
// tri-state here: absent means the relayer accepted the operation, an explicit
// false is a reported failure even with no error message attached.
func normalizeAccepted(raw []byte) model.Result {
	var envelope struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
		Details string          `json:"details"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		// 2xx with a non-JSON body still means the relayer accepted it. Quote
		// the body so the Result stays marshalable.
		quoted, _ := json.Marshal(string(raw))
		return model.Result{Success: true, Data: quoted}
	}

	result := model.Result{
		Success: true,
		Data:    envelope.Data,
		Error:   envelope.Error,
		Details: envelope.Details,
	}
	if envelope.Success != nil {
		result.Success = *envelope.Success
	} else if result.Data == nil && result.Error == "" {
		// JSON without the envelope shape is kept verbatim as data.
		result.Data = raw
	}
	return result
}

// normalizeFailure folds a relayer rejection into the {success:false, error,
// details} shape, keeping the structured body verbatim in Details.
func normalizeFailure(apiErr *errs.APIError, raw []byte) model.Result {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := apiErr.Error()
	if json.Unmarshal(raw, &parsed) == nil {
		switch {
		case parsed.Error != "":
			msg = parsed.Error
		case parsed.Message != "":
			msg = parsed.Message
		}
	}
	return model.Result{Success: false, Error: msg, Details: string(raw)}
}

// Health performs GET /health and returns the decoded JSON payload.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	return c.get(ctx, "health")
}

// Ping performs GET /ping and returns the decoded JSON payload.
func (c *Client) Ping(ctx context.Context) (map[string]any, error) {
	return c.get(ctx, "ping")
}

func (c *Client) get(ctx context.Context, path string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path, nil)
	if err != nil {
		return nil, errs.NewValidation("request", err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errs.NetworkError{Op: path, Err: err}
	}
	defer func(Body io.ReadCloser) {
		if cerr := Body.Close(); cerr != nil {
			zap.L().Error("failed to close relayer response body", zap.Error(cerr))
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, &errs.APIError{Endpoint: path, Status: resp.StatusCode, Body: raw}
	}

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return result, nil
}
