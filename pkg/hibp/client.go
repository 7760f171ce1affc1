// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package hibp looks up passwords in the Pwned Passwords range API. Only the
// first five characters of the SHA-1 hash ever leave the process.
package hibp

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"github.com/dgraph-io/ristretto"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.pwnedpasswords.com"
	prefixLen      = 5
)

type Options struct {
	// BaseURL of the range API, DefaultBaseURL when empty.
	BaseURL string
	// RetryMax retries on protocol errors and 5xx responses.
	RetryMax int
	// CacheSize is the max number of range responses kept in memory. Zero
	// disables caching.
	CacheSize int64
	// HTTPClient replaces the default transport, mostly for tests.
	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	http    *retryablehttp.Client
	cache   *ristretto.Cache
	stat    *status
}

func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		http:    initHttpClient(opts),
		stat:    newStatus(),
	}

	if opts.CacheSize > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config{
			// 10x the number of items expected, as recommended by ristretto.
			NumCounters: opts.CacheSize * 10,
			MaxCost:     opts.CacheSize,
			BufferItems: 64,
		})
		if err != nil {
			return nil, fmt.Errorf("error creating range cache: %w", err)
		}
		c.cache = cache
	}

	return c, nil
}

func initHttpClient(opts Options) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	// retryablehttp logs every attempt, too noisy for per request lookups.
	client.Logger = nil
	client.RetryMax = opts.RetryMax
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second

	if opts.HTTPClient != nil {
		client.HTTPClient = opts.HTTPClient
		return client
	}

	client.HTTPClient = &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          20,
			IdleConnTimeout:       30 * time.Second,
			TLSHandshakeTimeout:   5 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	return client
}

// HashPrefix returns the upper case SHA-1 hex of password split into the
// range prefix and the suffix to look for.
func HashPrefix(password string) (prefix string, suffix string) {
	sum := sha1.Sum([]byte(password))
	h := strings.ToUpper(hex.EncodeToString(sum[:]))
	return h[:prefixLen], h[prefixLen:]
}

// Count returns how many times password appears in the breach corpus. Zero
// means it was not found.
func (c *Client) Count(ctx context.Context, password string) (uint64, error) {
	prefix, suffix := HashPrefix(password)
	counts, err := c.lookupRange(ctx, prefix)
	if err != nil {
		return 0, err
	}

	return counts[suffix], nil
}

// Pwned reports whether password appears at least once in the breach corpus.
func (c *Client) Pwned(ctx context.Context, password string) (bool, error) {
	n, err := c.Count(ctx, password)
	return n > 0, err
}

func (c *Client) Stats() Stats {
	return c.stat.snapshot()
}

func (c *Client) lookupRange(ctx context.Context, prefix string) (map[string]uint64, error) {
	if c.cache != nil {
		if v, ok := c.cache.Get(prefix); ok {
			c.stat.CacheHit()
			return v.(map[string]uint64), nil
		}
	}

	body, err := c.downloadRange(ctx, prefix)
	if err != nil {
		return nil, err
	}

	counts, err := parseRange(body)
	if err != nil {
		return nil, fmt.Errorf("error parsing range %s: %w", prefix, err)
	}

	if c.cache != nil {
		c.cache.Set(prefix, counts, 1)
	}
	return counts, nil
}

func (c *Client) rangeHttpRequest(ctx context.Context, prefix string) (*retryablehttp.Request, error) {
	req, err := retryablehttp.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/range/%s", c.baseURL, prefix),
		nil,
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "golang-pwd-strength/1.0")
	// Padding hides the real number of suffixes in the response size.
	req.Header.Set("Add-Padding", "true")
	return req, nil
}

func (c *Client) downloadRange(ctx context.Context, prefix string) ([]byte, error) {
	timer := time.Now()
	req, err := c.rangeHttpRequest(ctx, prefix)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.stat.RequestFailed()
		return nil, err
	}

	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Warn().Err(err).Msgf("error closing body for range %s", prefix)
		}
	}(res.Body)

	if res.StatusCode >= 300 {
		c.stat.RequestFailed()
		return nil, fmt.Errorf("range request [%s] failed with status %s", prefix, res.Status)
	}

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		c.stat.RequestFailed()
		return nil, err
	}

	c.stat.RequestComplete(res, time.Since(timer).Milliseconds())
	log.Debug().Msgf("range %s downloaded in %v", prefix, time.Since(timer))
	return resBody, nil
}

// parseRange reads SUFFIX:COUNT lines. Padding entries have a zero count and
// are dropped.
func parseRange(body []byte) (map[string]uint64, error) {
	counts := make(map[string]uint64)
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		suffix, count, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("malformed line %q", line)
		}

		n, err := strconv.ParseUint(strings.TrimSpace(count), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed count in line %q: %w", line, err)
		}
		if n == 0 {
			continue
		}
		counts[strings.ToUpper(suffix)] = n
	}

	return counts, scanner.Err()
}
