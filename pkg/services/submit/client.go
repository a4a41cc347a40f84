// Package submit posts score reports to a remote scoreboard.
package submit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/kothscore/helios/pkg/adapters"
	"github.com/kothscore/helios/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	DefaultRetryMax = 3
	DefaultTimeout  = 10 * time.Second
)

type Options struct {
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Timeout      time.Duration
}

type Client struct {
	http *retryablehttp.Client
}

func NewClient(log *zerolog.Logger, opts Options) *Client {
	c := retryablehttp.NewClient()
	c.RetryMax = DefaultRetryMax
	if opts.RetryMax > 0 {
		c.RetryMax = opts.RetryMax
	}
	if opts.RetryWaitMin > 0 {
		c.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		c.RetryWaitMax = opts.RetryWaitMax
	}
	c.HTTPClient.Timeout = DefaultTimeout
	if opts.Timeout > 0 {
		c.HTTPClient.Timeout = opts.Timeout
	}
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	c.Logger = leveledLogger{log: log}

	return &Client{http: c}
}

// Submit sends the report's identifiers and total for team to url
func (c *Client) Submit(ctx context.Context, url, team string, report *domain.Report) error {
	payload := adapters.MapDomainReportToSubmissionRequest(team, report)
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("failed to build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit report to %s: %w", url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("scoreboard rejected submission: %s", resp.Status)
	}

	zerolog.Ctx(ctx).Info().
		Str("url", url).
		Str("team", team).
		Int("points", report.Total).
		Msg("report submitted")
	return nil
}
