package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/IannnnnW/ambso-site/pkg/content"
	"golang.org/x/oauth2"
)

const maxResponseBytes = 8 << 20

// SanityOptions configures a SanityClient.
type SanityOptions struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
	Timeout    time.Duration
	// BaseURL overrides the API host, e.g. for tests.
	BaseURL    string
	HTTPClient *http.Client
}

// SanityClient runs GROQ queries against the Sanity HTTP query API.
type SanityClient struct {
	endpoint string
	http     *http.Client
}

// SanityError is a non-2xx answer from the query API.
type SanityError struct {
	Status      int
	Type        string
	Description string
}

func (e *SanityError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("sanity: %s (status %d)", e.Description, e.Status)
	}
	return fmt.Sprintf("sanity: status %d", e.Status)
}

func NewSanityClient(opts SanityOptions) (*SanityClient, error) {
	if opts.ProjectID == "" && opts.BaseURL == "" {
		return nil, errors.New("sanity: project id required")
	}
	if opts.Dataset == "" {
		opts.Dataset = "production"
	}
	if opts.APIVersion == "" {
		opts.APIVersion = "2024-01-01"
	}

	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		host := "api.sanity.io"
		// the CDN never serves authenticated requests
		if opts.UseCDN && opts.Token == "" {
			host = "apicdn.sanity.io"
		}
		base = fmt.Sprintf("https://%s.%s", opts.ProjectID, host)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, hc)
		authed := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: opts.Token,
			TokenType:   "Bearer",
		}))
		authed.Timeout = hc.Timeout
		hc = authed
	}

	return &SanityClient{
		endpoint: fmt.Sprintf("%s/v%s/data/query/%s", base, strings.TrimPrefix(opts.APIVersion, "v"), url.PathEscape(opts.Dataset)),
		http:     hc,
	}, nil
}

// Query runs a GROQ query. Parameters are JSON encoded and sent as $name.
// A query without a matching document yields content.Null; a collection
// query without matches yields an empty sequence.
func (c *SanityClient) Query(ctx context.Context, query string, params map[string]any) (content.Value, error) {
	q := url.Values{}
	q.Set("query", query)
	for name, v := range params {
		raw, err := json.Marshal(v)
		if err != nil {
			return content.Null(), fmt.Errorf("sanity: encode param %s: %w", name, err)
		}
		q.Set("$"+name, string(raw))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return content.Null(), err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return content.Null(), fmt.Errorf("sanity: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return content.Null(), fmt.Errorf("sanity: read response: %w", err)
	}
	if len(body) > maxResponseBytes {
		return content.Null(), fmt.Errorf("sanity: response exceeds %d bytes", maxResponseBytes)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Type        string `json:"type"`
			Description string `json:"description"`
		} `json:"error"`
	}
	decodeErr := json.Unmarshal(body, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &SanityError{Status: resp.StatusCode}
		if decodeErr == nil && envelope.Error != nil {
			serr.Type = envelope.Error.Type
			serr.Description = envelope.Error.Description
		}
		return content.Null(), serr
	}
	if decodeErr != nil {
		return content.Null(), fmt.Errorf("sanity: malformed response: %w", decodeErr)
	}

	v, err := content.ParseJSON(envelope.Result)
	if err != nil {
		return content.Null(), fmt.Errorf("sanity: malformed result: %w", err)
	}
	return v, nil
}
