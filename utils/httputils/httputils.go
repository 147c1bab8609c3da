// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

// Package httputils provides round trippers for outbound HTTP clients.
package httputils

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"
)

const redacted = "REDACTED"

// LoggingRoundTripper dumps outbound requests and their responses to Writer.
// Query parameters listed in RedactParams (API keys and the like) never reach
// the dump.
type LoggingRoundTripper struct {
	Transport    http.RoundTripper
	Writer       io.Writer
	DumpBody     bool
	RedactParams []string
}

// reduce the content the lines.
func abbreviate(lines []string, prefix rune) []string {
	const maxLines, maxChars = 2048, 512

	for i, line := range lines {
		if i >= maxLines {
			break
		}

		lines[i] = fmt.Sprintf("%c %s", prefix, line)
	}

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines = append(lines, "…")
	}

	for i, line := range lines {
		if len(line) > maxChars {
			lines[i] = line[0:maxChars] + "…"
		}
	}

	return lines
}

// RedactURL returns a copy of u where the values of the given query
// parameters are replaced.
func RedactURL(u *url.URL, params []string) *url.URL {
	ret := *u
	if len(params) == 0 || u.RawQuery == "" {
		return &ret
	}

	q := ret.Query()
	for _, p := range params {
		if q.Has(p) {
			q.Set(p, redacted)
		}
	}

	ret.RawQuery = q.Encode()

	return &ret
}

func (t *LoggingRoundTripper) dumpRequest(req *http.Request) error {
	out := req.Clone(req.Context())
	out.URL = RedactURL(req.URL, t.RedactParams)

	dump, err := httputil.DumpRequestOut(out, t.DumpBody)
	if err != nil {
		return fmt.Errorf("tracing HTTP request: %w", err)
	}

	// the clone shares the body, which the dump just drained and replaced
	req.Body = out.Body

	lines := abbreviate(strings.Split(string(dump), "\n"), '>')
	lines = append(lines, "")
	_, err = fmt.Fprint(t.Writer, strings.Join(lines, "\n"))

	return err
}

func (t *LoggingRoundTripper) dumpResponse(resp *http.Response, duration time.Duration) error {
	dump, err := httputil.DumpResponse(resp, t.DumpBody)
	if err != nil {
		return fmt.Errorf("tracing HTTP response: %w", err)
	}

	lines := abbreviate(strings.Split(string(dump), "\n"), '<')

	_, err = fmt.Fprintf(t.Writer, "< RESPONSE: [%v]\n", duration)
	if err != nil {
		return fmt.Errorf("tracing HTTP response: %w", err)
	}

	lines = append(lines, "")
	_, err = fmt.Fprint(t.Writer, strings.Join(lines, "\n"))

	return err
}

// RoundTrip implements the http.RoundTripper interface.
func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Writer == nil {
		return t.Transport.RoundTrip(req)
	}

	if err := t.dumpRequest(req); err != nil {
		return nil, err
	}

	start := time.Now()

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		fmt.Fprintf(t.Writer, "< ERROR: [%v] %v\n", time.Since(start), err)

		return nil, err
	}

	if err := t.dumpResponse(resp, time.Since(start)); err != nil {
		return nil, err
	}

	return resp, nil
}

// AppendRequestHeadersRoundTripper adds headers to the request. The caller's
// request is left untouched.
type AppendRequestHeadersRoundTripper struct {
	Transport http.RoundTripper
	Headers   map[string]string
}

// RoundTrip implements the http.RoundTripper interface.
func (t *AppendRequestHeadersRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	for k, v := range t.Headers {
		out.Header.Set(k, v)
	}

	return t.Transport.RoundTrip(out)
}
