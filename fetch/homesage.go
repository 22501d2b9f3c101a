package fetch

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"comp-valuation/config"
	"comp-valuation/ingest"
	"comp-valuation/utils"
)

// PropertyRequest names one property to pull from the API. Type is either
// "subject" or "comp".
type PropertyRequest struct {
	Address string `json:"address"`
	Type    string `json:"type"`
}

// LoadRequests reads a {"properties": [{"address", "type"}, ...]} document.
func LoadRequests(path string) ([]PropertyRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fetch: read requests %q: %w", path, err)
	}
	var doc struct {
		Properties []PropertyRequest `json:"properties"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fetch: parse requests %q: %w", path, err)
	}
	return doc.Properties, nil
}

// Client fetches subject and comparable payloads from the property-info API
// in parallel, merging each property's condition report into its payload.
type Client struct {
	cfg     *config.Config
	logger  *utils.Logger
	pool    *utils.WorkerPool
	fetched *utils.AddressSet
	retry   *utils.RetryConfig
	http    *http.Client

	mu      sync.Mutex
	results []map[string]any
}

// New creates a ready-to-use Client.
func New(cfg *config.Config, logger *utils.Logger) *Client {
	return &Client{
		cfg:     cfg,
		logger:  logger,
		pool:    utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		fetched: utils.NewAddressSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchAll pulls every requested property concurrently and assembles the
// raw subject/comparables payload. Result order follows request order
// regardless of which fetch finishes first. Failed or duplicate properties
// are logged and skipped; the first "subject"-typed property wins.
func (c *Client) FetchAll(requests []PropertyRequest) (*ingest.Payload, error) {
	c.logger.Info("[fetch] Fetching %d properties — concurrency: %d", len(requests), c.cfg.MaxConcurrency)

	c.mu.Lock()
	c.results = make([]map[string]any, len(requests))
	c.mu.Unlock()

	for i, req := range requests {
		if req.Address == "" {
			c.logger.Warn("[fetch] Skipping request %d with empty address", i)
			continue
		}
		if !c.fetched.Add(req.Address) {
			c.logger.Debug("[fetch] Duplicate address skipped: %s", req.Address)
			continue
		}

		i, req := i, req
		c.pool.Submit(func() {
			payload, err := c.fetchProperty(req.Address)
			if err != nil {
				c.logger.Error("[fetch] %s failed: %v", req.Address, err)
				return
			}

			c.mu.Lock()
			c.results[i] = payload
			c.mu.Unlock()
		})
	}
	c.pool.Wait()

	payload := &ingest.Payload{}
	for i, res := range c.results {
		if res == nil {
			continue
		}
		if requests[i].Type == "subject" && payload.Subject == nil {
			payload.Subject = res
		} else {
			payload.Comparables = append(payload.Comparables, res)
		}
	}

	if payload.Subject == nil {
		return nil, fmt.Errorf("fetch: no subject property could be fetched")
	}

	c.logger.Info("[fetch] Done — subject + %d comparables", len(payload.Comparables))
	return payload, nil
}

// fetchProperty pulls the property-info payload and attaches the condition
// report under "property_condition". The info call retries; the condition
// call is best-effort and recorded even on failure.
func (c *Client) fetchProperty(address string) (map[string]any, error) {
	var payload map[string]any

	err := c.retry.Do("fetch "+address, func() error {
		var err error
		payload, err = c.getJSON(c.cfg.PropertyAPIURL, address)
		return err
	})
	if err != nil {
		return nil, err
	}

	condition := map[string]any{"ok": false}
	if cond, err := c.getJSON(c.cfg.ConditionAPIURL, address); err == nil {
		condition = map[string]any{"ok": true, "data": cond}
	} else {
		condition["error"] = err.Error()
	}
	payload["property_condition"] = condition

	return payload, nil
}

func (c *Client) getJSON(endpoint, address string) (map[string]any, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch: bad endpoint %q: %w", endpoint, err)
	}
	q := u.Query()
	q.Set("property_address", address)
	u.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}
	if c.cfg.APIToken != "" {
		req.Header.Set("Authorization", c.cfg.APIToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch: %s returned %d", u.Path, resp.StatusCode)
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("fetch: decode response: %w", err)
	}
	return payload, nil
}
