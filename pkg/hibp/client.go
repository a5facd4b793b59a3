// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package hibp looks up how many times a password appears in the Pwned Passwords (haveibeenpwned.com) breach
// corpus, using the k-anonymity range API: only the first 5 characters of the SHA1 hash leave the process.
package hibp

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"crypto/tls"
	"encoding/hex"
	"errors"
	"fmt"
	"github.com/dgraph-io/ristretto"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
	"io"
	"net"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.pwnedpasswords.com"
	prefixLength   = 5
	userAgent      = "golang-pwd-analyst/1.0"
)

var ErrBadResponse = errors.New("bad range response")

type Options struct {
	// BaseURL of the range API, DefaultBaseURL if empty.
	BaseURL string
	// CacheMB is the size of the range response cache. No caching when 0.
	CacheMB int64
	// RetryMax for failed requests, 3 if 0.
	RetryMax int
}

type Client struct {
	baseURL string
	http    *retryablehttp.Client
	cache   *ristretto.Cache
	stat    *status
}

func NewClient(opts Options) (*Client, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    initHttpClient(opts.RetryMax),
		stat:    newStatus(),
	}

	if opts.CacheMB > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config{
			// About 800 hashes per range, ~35 bytes each
			NumCounters: opts.CacheMB * 1024 * 1024 / (28 * 1024) * 10,
			MaxCost:     opts.CacheMB * 1024 * 1024,
			BufferItems: 64,
		})
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}

	return c, nil
}

func initHttpClient(retryMax int) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	// Too much garbage in the logs.
	client.Logger = nil

	if retryMax <= 0 {
		retryMax = 3
	}
	client.RetryMax = retryMax
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second

	client.HTTPClient = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       10 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			MaxIdleConnsPerHost:   runtime.GOMAXPROCS(0) + 1,
		},
	}

	return client
}

// Hash is the uppercase hexadecimal SHA1 of password, the format used by the range API.
func Hash(password string) string {
	sum := sha1.Sum([]byte(password))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// Count returns the number of times password appears in the breach corpus, 0 if it does not appear.
func (c *Client) Count(ctx context.Context, password string) (int, error) {
	return c.CountHash(ctx, Hash(password))
}

// CountHash is Count for an already hashed password.
func (c *Client) CountHash(ctx context.Context, hash string) (int, error) {
	hash = strings.ToUpper(hash)
	if len(hash) != sha1.Size*2 {
		return 0, fmt.Errorf("%q is not a SHA1 hexadecimal hash", hash)
	}

	prefix, suffix := hash[:prefixLength], hash[prefixLength:]
	counts, err := c.rangeCounts(ctx, prefix)
	if err != nil {
		return 0, err
	}

	return counts[suffix], nil
}

// Close releases the cache and logs the lookup statistics.
func (c *Client) Close() {
	c.stat.Done()
	if c.cache != nil {
		c.cache.Close()
	}
}

func (c *Client) rangeCounts(ctx context.Context, prefix string) (map[string]int, error) {
	if c.cache != nil {
		if v, ok := c.cache.Get(prefix); ok {
			c.stat.CacheHit()
			return v.(map[string]int), nil
		}
	}

	data, err := c.downloadRange(ctx, prefix)
	if err != nil {
		return nil, err
	}

	counts, err := parseRange(data)
	if err != nil {
		return nil, fmt.Errorf("range %s: %w", prefix, err)
	}

	if c.cache != nil {
		c.cache.Set(prefix, counts, int64(len(data)))
		// Sets are buffered, make the range visible to the next lookup
		c.cache.Wait()
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
	req.Header.Set("User-Agent", userAgent)
	// Pads responses so their size does not reveal the prefix
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
		return nil, err
	}

	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Warn().Err(err).Msgf("error closing body for range %s", prefix)
		}
	}(res.Body)

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: range %s failed with status %s", ErrBadResponse, prefix, res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	c.stat.RequestComplete(res, time.Since(timer).Milliseconds())
	return body, nil
}

// parseRange reads SUFFIX:COUNT lines. Padding entries have a count of 0 and are skipped.
func parseRange(data []byte) (map[string]int, error) {
	counts := make(map[string]int, 1024)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		suffix, count, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: malformed line %q", ErrBadResponse, line)
		}

		n, err := strconv.Atoi(count)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed count in line %q", ErrBadResponse, line)
		}
		if n > 0 {
			counts[strings.ToUpper(suffix)] = n
		}
	}

	return counts, scanner.Err()
}
