// Package analyzer talks to the linguistic analysis sidecar, the service
// that computes readability scores, part-of-speech distributions and the
// other numeric features the rating engine consumes.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"io"
	"net/http"
	"time"

	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
	"github.com/feliperussi/medwrite-server/internal/logger"
)

const defaultTimeout = 30 * time.Second

// FeatureProvider computes linguistic feature values for a text.
type FeatureProvider interface {
	Analyze(ctx context.Context, text string) (map[string]float64, error)
	AnalyzeBatch(ctx context.Context, texts []string, textIDs []string) ([]Analysis, error)
}

// Analysis is one batch result keyed by the caller-supplied text ID.
type Analysis struct {
	TextID   string             `json:"text_id"`
	Features map[string]float64 `json:"features"`
}

// Client is the HTTP FeatureProvider implementation.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  log,
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Features map[string]float64 `json:"features"`
}

type batchRequest struct {
	Texts   []string `json:"texts"`
	TextIDs []string `json:"text_ids,omitempty"`
}

type batchResponse struct {
	Analyses []Analysis `json:"analyses"`
}

// Analyze computes the feature map for a single text.
func (c *Client) Analyze(ctx context.Context, text string) (map[string]float64, error) {
	var out analyzeResponse
	if err := c.post(ctx, "/analyze", analyzeRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	return out.Features, nil
}

// AnalyzeBatch computes feature maps for several texts in one round trip.
// textIDs, when provided, must match texts in length; results come back
// in input order.
func (c *Client) AnalyzeBatch(ctx context.Context, texts []string, textIDs []string) ([]Analysis, error) {
	if len(textIDs) > 0 && len(textIDs) != len(texts) {
		return nil, domainerrors.Validation("text_ids length must match texts length")
	}

	var out batchResponse
	if err := c.post(ctx, "/analyze/batch", batchRequest{Texts: texts, TextIDs: textIDs}, &out); err != nil {
		return nil, err
	}
	return out.Analyses, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	if c == nil || c.baseURL == "" {
		return domainerrors.Unavailable("analyzer not configured")
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "encoding analyzer request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "creating analyzer request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("analyzer request", "path", path, "bytes", len(payload))

	resp, err := c.http.Do(req)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeUnavailable, "analyzer unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeUpstream, "reading analyzer response")
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnprocessableEntity, resp.StatusCode == http.StatusBadRequest:
		return domainerrors.Validationf("analyzer rejected input: %s", string(body))
	default:
		return domainerrors.Upstream("analyzer error").WithDetails(map[string]any{
			"status": resp.StatusCode,
			"body":   string(body),
		})
	}

	if err := json.Unmarshal(body, out); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeUpstream, "decoding analyzer response")
	}
	return nil
}
