// Package openmeteo talks to the Open-Meteo geocoding and forecast APIs.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/Captain-T2004/Ongaku-Backend/pkg/errors"
	"github.com/Captain-T2004/Ongaku-Backend/pkg/metrics"
)

const defaultTimeout = 10 * time.Second

type endpoint struct {
	name       string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

func newEndpoint(name, baseURL, fallback string, timeout time.Duration) endpoint {
	u := strings.TrimSpace(baseURL)
	if u == "" {
		u = fallback
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return endpoint{
		name:    name,
		baseURL: strings.TrimRight(u, "/"),
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// getJSON issues a bounded GET and decodes the JSON body into out.
func (e endpoint) getJSON(ctx context.Context, query url.Values, out any) (err error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	started := time.Now()
	defer func() {
		metrics.RecordUpstream(e.name, metrics.Outcome(err, apperrors.IsTimeout(err)), time.Since(started))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", e.name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", e.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("%s request error: status=%d body=%s", e.name, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", e.name, err)
	}
	return nil
}
